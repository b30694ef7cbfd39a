// Package ports declares the interfaces the service layer depends on.
// Implementations live under infrastructure/.
package ports

import (
	"context"

	"tastetrail-backend/domain/model"
)

// RestaurantRepository is the access-pattern layer for restaurant items.
// Absence is a nil result, not an error; storage faults are errors.
type RestaurantRepository interface {
	// CreateRestaurant generates a fresh id, sets visited=false and stamps
	// both timestamps equal.
	CreateRestaurant(ctx context.Context, userID string, in model.NewRestaurant) (*model.Restaurant, error)

	// GetRestaurantByID is a point lookup by composite key. Returns nil when
	// the item does not exist under the caller's owner key.
	GetRestaurantByID(ctx context.Context, userID, restaurantID string) (*model.Restaurant, error)

	// UpdateRestaurant applies a field-level patch, always refreshing
	// updatedAt. Returns nil when the item does not exist at write time.
	UpdateRestaurant(ctx context.Context, userID, restaurantID string, patch model.RestaurantPatch) (*model.Restaurant, error)

	// DeleteRestaurant removes the item. No HTTP handler calls this; it
	// exists for operational tooling.
	DeleteRestaurant(ctx context.Context, userID, restaurantID string) error

	// ListRestaurants selects an index (cuisine > visited > owner prefix),
	// fetches one page and applies the search post-filter.
	ListRestaurants(ctx context.Context, userID string, filters model.RestaurantFilters, page model.PageRequest) (*model.RestaurantPage, error)
}

// ReviewRepository is the access-pattern layer for review notes.
type ReviewRepository interface {
	// AddReviewNote writes a fresh immutable note under the restaurant's
	// partition.
	AddReviewNote(ctx context.Context, userID, restaurantID, text string) (*model.ReviewNote, error)

	// GetReviewNotes returns all notes for a restaurant, newest first.
	GetReviewNotes(ctx context.Context, restaurantID string) ([]model.ReviewNote, error)
}

// UserRepository is the access-pattern layer for user metadata items.
type UserRepository interface {
	CreateUser(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// EventPublisher emits best-effort domain events. Failures must never affect
// the outcome of the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, detailType string, detail interface{}) error
}
