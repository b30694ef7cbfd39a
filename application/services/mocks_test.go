package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tastetrail-backend/domain/model"
)

type mockRestaurantRepo struct {
	mock.Mock
}

func (m *mockRestaurantRepo) CreateRestaurant(ctx context.Context, userID string, in model.NewRestaurant) (*model.Restaurant, error) {
	args := m.Called(ctx, userID, in)
	if r := args.Get(0); r != nil {
		return r.(*model.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRestaurantRepo) GetRestaurantByID(ctx context.Context, userID, restaurantID string) (*model.Restaurant, error) {
	args := m.Called(ctx, userID, restaurantID)
	if r := args.Get(0); r != nil {
		return r.(*model.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRestaurantRepo) UpdateRestaurant(ctx context.Context, userID, restaurantID string, patch model.RestaurantPatch) (*model.Restaurant, error) {
	args := m.Called(ctx, userID, restaurantID, patch)
	if r := args.Get(0); r != nil {
		return r.(*model.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRestaurantRepo) DeleteRestaurant(ctx context.Context, userID, restaurantID string) error {
	args := m.Called(ctx, userID, restaurantID)
	return args.Error(0)
}

func (m *mockRestaurantRepo) ListRestaurants(ctx context.Context, userID string, filters model.RestaurantFilters, page model.PageRequest) (*model.RestaurantPage, error) {
	args := m.Called(ctx, userID, filters, page)
	if r := args.Get(0); r != nil {
		return r.(*model.RestaurantPage), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) AddReviewNote(ctx context.Context, userID, restaurantID, text string) (*model.ReviewNote, error) {
	args := m.Called(ctx, userID, restaurantID, text)
	if r := args.Get(0); r != nil {
		return r.(*model.ReviewNote), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepo) GetReviewNotes(ctx context.Context, restaurantID string) ([]model.ReviewNote, error) {
	args := m.Called(ctx, restaurantID)
	if r := args.Get(0); r != nil {
		return r.([]model.ReviewNote), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, detailType string, detail interface{}) error {
	args := m.Called(ctx, detailType, detail)
	return args.Error(0)
}
