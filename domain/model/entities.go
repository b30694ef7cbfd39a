// Package model holds the persistent entities of the restaurant tracker and
// the value types (cuisine enum, field patches, filters) shared between the
// service layer and the storage layer.
package model

import "fmt"

const (
	// RatingMin and RatingMax bound the star rating a restaurant can carry.
	RatingMin = 0
	RatingMax = 5
)

// User is the account record, one per registered email. Users are provisioned
// on first authentication attempt and never deleted in the normal flow.
type User struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Restaurant is owned by exactly one user; the owner is the sole mutator.
// RestaurantID, UserID and CreatedAt are fixed at creation.
type Restaurant struct {
	RestaurantID string      `json:"restaurantId"`
	UserID       string      `json:"userId"`
	Name         string      `json:"name"`
	Location     string      `json:"location,omitempty"`
	CuisineType  CuisineType `json:"cuisineType,omitempty"`
	Description  string      `json:"description,omitempty"`
	Visited      bool        `json:"visited"`
	Rating       *float64    `json:"rating,omitempty"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

// ReviewNote is a free-text note attached to a restaurant. Notes are immutable
// once created; there is no update or delete path.
type ReviewNote struct {
	ReviewID     string `json:"reviewId"`
	RestaurantID string `json:"restaurantId"`
	UserID       string `json:"userId"`
	Text         string `json:"text"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// NewRestaurant carries the caller-supplied fields for a create operation.
// Optional fields are pointers so "not provided" survives into storage.
type NewRestaurant struct {
	Name        string
	Location    *string
	CuisineType *CuisineType
	Description *string
}

// RestaurantFilters selects which index a list query runs against. Index
// selection is mutually exclusive and prioritized: cuisine, then visited,
// then the plain owner prefix. SearchTerm is a post-index substring filter
// on the name, applied after the page is fetched.
type RestaurantFilters struct {
	CuisineType *CuisineType
	Visited     *bool
	SearchTerm  string
}

// PageRequest bounds a list query. Cursor is the opaque token returned by a
// previous page; callers pass back exactly what they received.
type PageRequest struct {
	Limit  int32
	Cursor string
}

// RestaurantPage is one page of list results. NextCursor is empty when the
// selected index has been exhausted.
type RestaurantPage struct {
	Restaurants []Restaurant
	NextCursor  string
}

// ValidateRating enforces the [RatingMin, RatingMax] bound. Every write path
// that sets a rating calls this before touching storage.
func ValidateRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return fmt.Errorf("rating must be between %d and %d, got %g", RatingMin, RatingMax, rating)
	}
	return nil
}
