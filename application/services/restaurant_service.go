// Package services holds the application service layer: stateless
// orchestration over the repositories, enforcing the domain invariants that
// sit above any single storage write.
package services

import (
	"context"

	"go.uber.org/zap"

	"tastetrail-backend/application/ports"
	"tastetrail-backend/domain/model"
	apperrors "tastetrail-backend/pkg/errors"
	"tastetrail-backend/pkg/observability"
)

// Event detail types emitted by the service. Publishing is best-effort and
// never affects the request outcome.
const (
	EventRestaurantCreated = "restaurant.created"
	EventRatingUpdated     = "rating.updated"
	EventReviewAdded       = "review.added"
)

// RestaurantService orchestrates restaurant and review operations. All
// dependencies are injected; the service holds no mutable state of its own.
type RestaurantService struct {
	restaurants ports.RestaurantRepository
	reviews     ports.ReviewRepository
	events      ports.EventPublisher
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(
	restaurants ports.RestaurantRepository,
	reviews ports.ReviewRepository,
	events ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		reviews:     reviews,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateRestaurant creates a restaurant for the user. The fresh item starts
// unvisited and unrated.
func (s *RestaurantService) CreateRestaurant(ctx context.Context, userID string, in model.NewRestaurant) (*model.Restaurant, error) {
	if in.Name == "" {
		return nil, apperrors.NewValidationError("restaurant name is required")
	}
	if in.CuisineType != nil && !in.CuisineType.IsValid() {
		return nil, apperrors.NewValidationError("invalid cuisine type")
	}

	restaurant, err := s.restaurants.CreateRestaurant(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	s.metrics.CountOperation(ctx, "CreateRestaurant")
	s.publish(ctx, EventRestaurantCreated, restaurant)
	return restaurant, nil
}

// GetRestaurant fetches one restaurant. Items under another user's owner key
// read as absent, so cross-user probes get the same not-found as a bad id.
func (s *RestaurantService) GetRestaurant(ctx context.Context, userID, restaurantID string) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.GetRestaurantByID(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperrors.NewNotFoundError("restaurant")
	}
	return restaurant, nil
}

// UpdateRestaurant applies a partial update. Identity fields cannot appear in
// the patch; a visited=false write is dropped so the visited flag stays a
// one-way ratchet.
func (s *RestaurantService) UpdateRestaurant(ctx context.Context, userID, restaurantID string, patch model.RestaurantPatch) (*model.Restaurant, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if patch.Visited.IsSet() && !patch.Visited.Value() {
		patch.Visited = model.Field[bool]{}
	}

	restaurant, err := s.restaurants.UpdateRestaurant(ctx, userID, restaurantID, patch)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperrors.NewNotFoundError("restaurant")
	}

	s.metrics.CountOperation(ctx, "UpdateRestaurant")
	return restaurant, nil
}

// ListRestaurants returns one page of the user's restaurants.
func (s *RestaurantService) ListRestaurants(ctx context.Context, userID string, filters model.RestaurantFilters, page model.PageRequest) (*model.RestaurantPage, error) {
	if filters.CuisineType != nil && !filters.CuisineType.IsValid() {
		return nil, apperrors.NewValidationError("invalid cuisine type")
	}

	result, err := s.restaurants.ListRestaurants(ctx, userID, filters, page)
	if err != nil {
		return nil, err
	}

	s.metrics.CountOperation(ctx, "ListRestaurants")
	return result, nil
}

// UpdateRating validates the bound before touching storage, then sets the
// rating and flips visited in a single patch.
func (s *RestaurantService) UpdateRating(ctx context.Context, userID, restaurantID string, rating float64) (*model.Restaurant, error) {
	if err := model.ValidateRating(rating); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	patch := model.RestaurantPatch{
		Visited: model.Set(true),
		Rating:  model.Set(rating),
	}

	restaurant, err := s.restaurants.UpdateRestaurant(ctx, userID, restaurantID, patch)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperrors.NewNotFoundError("restaurant")
	}

	s.metrics.CountOperation(ctx, "UpdateRating")
	s.publish(ctx, EventRatingUpdated, restaurant)
	return restaurant, nil
}

// AddReviewNote attaches an immutable note to a visited-or-about-to-be
// restaurant. The visited flip and the note write are two separate item
// writes; if the second fails the restaurant stays visited with no note,
// which the caller resolves by retrying the whole operation.
func (s *RestaurantService) AddReviewNote(ctx context.Context, userID, restaurantID, text string) (*model.ReviewNote, error) {
	if text == "" {
		return nil, apperrors.NewValidationError("review text is required")
	}

	restaurant, err := s.restaurants.GetRestaurantByID(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperrors.NewNotFoundError("restaurant")
	}

	if !restaurant.Visited {
		patch := model.RestaurantPatch{Visited: model.Set(true)}
		updated, err := s.restaurants.UpdateRestaurant(ctx, userID, restaurantID, patch)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, apperrors.NewNotFoundError("restaurant")
		}
	}

	note, err := s.reviews.AddReviewNote(ctx, userID, restaurantID, text)
	if err != nil {
		return nil, err
	}

	s.metrics.CountOperation(ctx, "AddReviewNote")
	s.publish(ctx, EventReviewAdded, note)
	return note, nil
}

// GetReviewNotes returns a restaurant's notes, newest first. The ownership
// check runs against the restaurant item first so notes under a foreign
// restaurant are unreachable.
func (s *RestaurantService) GetReviewNotes(ctx context.Context, userID, restaurantID string) ([]model.ReviewNote, error) {
	restaurant, err := s.restaurants.GetRestaurantByID(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperrors.NewNotFoundError("restaurant")
	}

	notes, err := s.reviews.GetReviewNotes(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	s.metrics.CountOperation(ctx, "GetReviewNotes")
	return notes, nil
}

func (s *RestaurantService) publish(ctx context.Context, detailType string, detail interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, detailType, detail); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("detailType", detailType),
			zap.Error(err),
		)
	}
}
