package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tastetrail-backend/domain/model"
	apperrors "tastetrail-backend/pkg/errors"
)

func newTestService(restaurants *mockRestaurantRepo, reviews *mockReviewRepo, events *mockEventPublisher) *RestaurantService {
	return NewRestaurantService(restaurants, reviews, events, nil, zap.NewNop())
}

func cuisinePtr(c model.CuisineType) *model.CuisineType {
	return &c
}

func TestCreateRestaurant_RequiresName(t *testing.T) {
	svc := newTestService(new(mockRestaurantRepo), new(mockReviewRepo), nil)

	_, err := svc.CreateRestaurant(context.Background(), "u1", model.NewRestaurant{})

	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateRestaurant_RejectsInvalidCuisine(t *testing.T) {
	svc := newTestService(new(mockRestaurantRepo), new(mockReviewRepo), nil)

	_, err := svc.CreateRestaurant(context.Background(), "u1", model.NewRestaurant{
		Name:        "Nonna",
		CuisineType: cuisinePtr(model.CuisineType("Fusion")),
	})

	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateRestaurant_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	events := new(mockEventPublisher)
	svc := newTestService(restaurants, new(mockReviewRepo), events)

	created := &model.Restaurant{RestaurantID: "r1", UserID: "u1", Name: "Nonna"}
	restaurants.On("CreateRestaurant", ctx, "u1", mock.Anything).Return(created, nil)
	events.On("Publish", ctx, EventRestaurantCreated, created).Return(nil)

	got, err := svc.CreateRestaurant(ctx, "u1", model.NewRestaurant{Name: "Nonna"})
	require.NoError(t, err)

	assert.Equal(t, created, got)
	restaurants.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreateRestaurant_PublishFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	events := new(mockEventPublisher)
	svc := newTestService(restaurants, new(mockReviewRepo), events)

	created := &model.Restaurant{RestaurantID: "r1", Name: "Nonna"}
	restaurants.On("CreateRestaurant", ctx, "u1", mock.Anything).Return(created, nil)
	events.On("Publish", ctx, EventRestaurantCreated, created).Return(errors.New("bus down"))

	_, err := svc.CreateRestaurant(ctx, "u1", model.NewRestaurant{Name: "Nonna"})

	assert.NoError(t, err)
}

func TestGetRestaurant_AbsenceIsNotFound(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	svc := newTestService(restaurants, new(mockReviewRepo), nil)

	restaurants.On("GetRestaurantByID", ctx, "u1", "missing").Return(nil, nil)

	_, err := svc.GetRestaurant(ctx, "u1", "missing")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateRestaurant_DropsUnvisitRequest(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	svc := newTestService(restaurants, new(mockReviewRepo), nil)

	updated := &model.Restaurant{RestaurantID: "r1", Visited: true}
	restaurants.On("UpdateRestaurant", ctx, "u1", "r1", mock.MatchedBy(func(patch model.RestaurantPatch) bool {
		// visited=false must not reach storage; the name change still does.
		return !patch.Visited.IsSet() && patch.Name.IsSet()
	})).Return(updated, nil)

	falseVisited := model.RestaurantPatch{
		Name:    model.Set("Renamed"),
		Visited: model.Set(false),
	}
	got, err := svc.UpdateRestaurant(ctx, "u1", "r1", falseVisited)
	require.NoError(t, err)

	assert.True(t, got.Visited)
	restaurants.AssertExpectations(t)
}

func TestUpdateRestaurant_KeepsVisitedTrue(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	svc := newTestService(restaurants, new(mockReviewRepo), nil)

	updated := &model.Restaurant{RestaurantID: "r1", Visited: true}
	restaurants.On("UpdateRestaurant", ctx, "u1", "r1", mock.MatchedBy(func(patch model.RestaurantPatch) bool {
		return patch.Visited.IsSet() && patch.Visited.Value()
	})).Return(updated, nil)

	_, err := svc.UpdateRestaurant(ctx, "u1", "r1", model.RestaurantPatch{Visited: model.Set(true)})

	assert.NoError(t, err)
	restaurants.AssertExpectations(t)
}

func TestUpdateRestaurant_InvalidPatch(t *testing.T) {
	svc := newTestService(new(mockRestaurantRepo), new(mockReviewRepo), nil)

	_, err := svc.UpdateRestaurant(context.Background(), "u1", "r1", model.RestaurantPatch{
		Rating: model.Set(9.0),
	})

	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateRestaurant_NotFound(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	svc := newTestService(restaurants, new(mockReviewRepo), nil)

	restaurants.On("UpdateRestaurant", ctx, "u1", "r1", mock.Anything).Return(nil, nil)

	_, err := svc.UpdateRestaurant(ctx, "u1", "r1", model.RestaurantPatch{Name: model.Set("x")})

	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateRating_ValidatesBoundBeforeStorage(t *testing.T) {
	restaurants := new(mockRestaurantRepo)
	svc := newTestService(restaurants, new(mockReviewRepo), nil)

	for _, rating := range []float64{-0.5, 5.5} {
		_, err := svc.UpdateRating(context.Background(), "u1", "r1", rating)
		assert.True(t, apperrors.IsValidation(err))
	}

	restaurants.AssertNotCalled(t, "UpdateRestaurant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRating_SetsRatingAndVisitedTogether(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	events := new(mockEventPublisher)
	svc := newTestService(restaurants, new(mockReviewRepo), events)

	rating := 4.5
	updated := &model.Restaurant{RestaurantID: "r1", Visited: true, Rating: &rating}
	restaurants.On("UpdateRestaurant", ctx, "u1", "r1", mock.MatchedBy(func(patch model.RestaurantPatch) bool {
		return patch.Visited.IsSet() && patch.Visited.Value() &&
			patch.Rating.IsSet() && patch.Rating.Value() == 4.5
	})).Return(updated, nil)
	events.On("Publish", ctx, EventRatingUpdated, updated).Return(nil)

	got, err := svc.UpdateRating(ctx, "u1", "r1", 4.5)
	require.NoError(t, err)

	assert.True(t, got.Visited)
	restaurants.AssertExpectations(t)
}

func TestAddReviewNote_RequiresText(t *testing.T) {
	svc := newTestService(new(mockRestaurantRepo), new(mockReviewRepo), nil)

	_, err := svc.AddReviewNote(context.Background(), "u1", "r1", "")

	assert.True(t, apperrors.IsValidation(err))
}

func TestAddReviewNote_UnknownRestaurant(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	svc := newTestService(restaurants, new(mockReviewRepo), nil)

	restaurants.On("GetRestaurantByID", ctx, "u1", "missing").Return(nil, nil)

	_, err := svc.AddReviewNote(ctx, "u1", "missing", "great pasta")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddReviewNote_FlipsUnvisitedRestaurant(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	reviews := new(mockReviewRepo)
	events := new(mockEventPublisher)
	svc := newTestService(restaurants, reviews, events)

	restaurants.On("GetRestaurantByID", ctx, "u1", "r1").
		Return(&model.Restaurant{RestaurantID: "r1", Visited: false}, nil)
	restaurants.On("UpdateRestaurant", ctx, "u1", "r1", mock.MatchedBy(func(patch model.RestaurantPatch) bool {
		return patch.Visited.IsSet() && patch.Visited.Value() && !patch.Rating.IsSet()
	})).Return(&model.Restaurant{RestaurantID: "r1", Visited: true}, nil)

	note := &model.ReviewNote{ReviewID: "rev1", RestaurantID: "r1", Text: "great pasta"}
	reviews.On("AddReviewNote", ctx, "u1", "r1", "great pasta").Return(note, nil)
	events.On("Publish", ctx, EventReviewAdded, note).Return(nil)

	got, err := svc.AddReviewNote(ctx, "u1", "r1", "great pasta")
	require.NoError(t, err)

	assert.Equal(t, note, got)
	restaurants.AssertExpectations(t)
	reviews.AssertExpectations(t)
}

func TestAddReviewNote_VisitedRestaurantSkipsFlip(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	reviews := new(mockReviewRepo)
	events := new(mockEventPublisher)
	svc := newTestService(restaurants, reviews, events)

	restaurants.On("GetRestaurantByID", ctx, "u1", "r1").
		Return(&model.Restaurant{RestaurantID: "r1", Visited: true}, nil)

	note := &model.ReviewNote{ReviewID: "rev1", RestaurantID: "r1"}
	reviews.On("AddReviewNote", ctx, "u1", "r1", "again").Return(note, nil)
	events.On("Publish", ctx, EventReviewAdded, note).Return(nil)

	_, err := svc.AddReviewNote(ctx, "u1", "r1", "again")
	require.NoError(t, err)

	restaurants.AssertNotCalled(t, "UpdateRestaurant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddReviewNote_FlipSucceedsNoteFails(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	reviews := new(mockReviewRepo)
	svc := newTestService(restaurants, reviews, nil)

	restaurants.On("GetRestaurantByID", ctx, "u1", "r1").
		Return(&model.Restaurant{RestaurantID: "r1", Visited: false}, nil)
	restaurants.On("UpdateRestaurant", ctx, "u1", "r1", mock.Anything).
		Return(&model.Restaurant{RestaurantID: "r1", Visited: true}, nil)
	reviews.On("AddReviewNote", ctx, "u1", "r1", "oops").
		Return(nil, apperrors.NewDatabaseError("add review note", errors.New("throttled")))

	// The flip is not rolled back; the caller sees the storage fault and
	// retries the whole operation.
	_, err := svc.AddReviewNote(ctx, "u1", "r1", "oops")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatabase))
}

func TestGetReviewNotes_ChecksOwnershipFirst(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	reviews := new(mockReviewRepo)
	svc := newTestService(restaurants, reviews, nil)

	restaurants.On("GetRestaurantByID", ctx, "u1", "foreign").Return(nil, nil)

	_, err := svc.GetReviewNotes(ctx, "u1", "foreign")

	assert.True(t, apperrors.IsNotFound(err))
	reviews.AssertNotCalled(t, "GetReviewNotes", mock.Anything, mock.Anything)
}

func TestGetReviewNotes_ReturnsNotes(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	reviews := new(mockReviewRepo)
	svc := newTestService(restaurants, reviews, nil)

	restaurants.On("GetRestaurantByID", ctx, "u1", "r1").
		Return(&model.Restaurant{RestaurantID: "r1"}, nil)
	notes := []model.ReviewNote{
		{ReviewID: "rev2", CreatedAt: "2026-08-28T12:00:00Z"},
		{ReviewID: "rev1", CreatedAt: "2026-08-27T12:00:00Z"},
	}
	reviews.On("GetReviewNotes", ctx, "r1").Return(notes, nil)

	got, err := svc.GetReviewNotes(ctx, "u1", "r1")
	require.NoError(t, err)

	assert.Equal(t, notes, got)
}

func TestListRestaurants_RejectsInvalidCuisineFilter(t *testing.T) {
	svc := newTestService(new(mockRestaurantRepo), new(mockReviewRepo), nil)

	_, err := svc.ListRestaurants(context.Background(), "u1", model.RestaurantFilters{
		CuisineType: cuisinePtr(model.CuisineType("Fusion")),
	}, model.PageRequest{})

	assert.True(t, apperrors.IsValidation(err))
}

func TestListRestaurants_PassesFiltersThrough(t *testing.T) {
	ctx := context.Background()
	restaurants := new(mockRestaurantRepo)
	svc := newTestService(restaurants, new(mockReviewRepo), nil)

	filters := model.RestaurantFilters{CuisineType: cuisinePtr(model.CuisineItalian)}
	page := model.PageRequest{Limit: 10, Cursor: "abc"}
	result := &model.RestaurantPage{Restaurants: []model.Restaurant{{RestaurantID: "r1"}}}
	restaurants.On("ListRestaurants", ctx, "u1", filters, page).Return(result, nil)

	got, err := svc.ListRestaurants(ctx, "u1", filters, page)
	require.NoError(t, err)

	assert.Equal(t, result, got)
	restaurants.AssertExpectations(t)
}
