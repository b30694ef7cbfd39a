package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tastetrail-backend/application/services"
	"tastetrail-backend/domain/model"
	"tastetrail-backend/pkg/auth"
	apperrors "tastetrail-backend/pkg/errors"
	"tastetrail-backend/pkg/utils"
)

const defaultPageLimit = 50

// RestaurantHandler handles restaurant CRUD, listing and rating requests.
type RestaurantHandler struct {
	service *services.RestaurantService
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(service *services.RestaurantService, errors *apperrors.ErrorHandler, logger *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		errors:  errors,
		logger:  logger,
	}
}

// CreateRestaurantRequest is the body for POST /restaurants.
type CreateRestaurantRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=500"`
	CuisineType *string `json:"cuisineType,omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// UpdateRestaurantRequest is the body for PUT /restaurants/{restaurantID}.
// Absent fields are left untouched; identity fields are not accepted at all.
type UpdateRestaurantRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=500"`
	CuisineType *string  `json:"cuisineType,omitempty"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Visited     *bool    `json:"visited,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// UpdateRatingRequest is the body for PUT /restaurants/{restaurantID}/rating.
type UpdateRatingRequest struct {
	Rating *float64 `json:"rating" validate:"required"`
}

// ListRestaurantsResponse is one page of restaurants.
type ListRestaurantsResponse struct {
	Restaurants []model.Restaurant `json:"restaurants"`
	NextToken   string             `json:"nextToken,omitempty"`
}

// CreateRestaurant handles POST /restaurants.
func (h *RestaurantHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError("unauthorized"))
		return
	}

	var req CreateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	in := model.NewRestaurant{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	}
	if req.CuisineType != nil {
		cuisine, err := model.ParseCuisineType(*req.CuisineType)
		if err != nil {
			h.errors.Handle(w, r, apperrors.NewValidationError("invalid cuisine type"))
			return
		}
		in.CuisineType = &cuisine
	}

	restaurant, err := h.service.CreateRestaurant(r.Context(), user.UserID, in)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, restaurant)
}

// GetRestaurant handles GET /restaurants/{restaurantID}.
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError("unauthorized"))
		return
	}

	restaurantID := chi.URLParam(r, "restaurantID")
	if restaurantID == "" {
		h.errors.Handle(w, r, apperrors.NewValidationError("restaurant id is required"))
		return
	}

	restaurant, err := h.service.GetRestaurant(r.Context(), user.UserID, restaurantID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, restaurant)
}

// UpdateRestaurant handles PUT /restaurants/{restaurantID}.
func (h *RestaurantHandler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError("unauthorized"))
		return
	}

	restaurantID := chi.URLParam(r, "restaurantID")
	if restaurantID == "" {
		h.errors.Handle(w, r, apperrors.NewValidationError("restaurant id is required"))
		return
	}

	var req UpdateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	var patch model.RestaurantPatch
	if req.Name != nil {
		patch.Name = model.Set(*req.Name)
	}
	if req.Location != nil {
		patch.Location = model.Set(*req.Location)
	}
	if req.CuisineType != nil {
		cuisine, err := model.ParseCuisineType(*req.CuisineType)
		if err != nil {
			h.errors.Handle(w, r, apperrors.NewValidationError("invalid cuisine type"))
			return
		}
		patch.CuisineType = model.Set(cuisine)
	}
	if req.Description != nil {
		patch.Description = model.Set(*req.Description)
	}
	if req.Visited != nil {
		patch.Visited = model.Set(*req.Visited)
	}
	if req.Rating != nil {
		patch.Rating = model.Set(*req.Rating)
	}

	restaurant, err := h.service.UpdateRestaurant(r.Context(), user.UserID, restaurantID, patch)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, restaurant)
}

// UpdateRating handles PUT /restaurants/{restaurantID}/rating. Rating a
// restaurant also marks it visited.
func (h *RestaurantHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError("unauthorized"))
		return
	}

	restaurantID := chi.URLParam(r, "restaurantID")
	if restaurantID == "" {
		h.errors.Handle(w, r, apperrors.NewValidationError("restaurant id is required"))
		return
	}

	var req UpdateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.Rating == nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("rating is required"))
		return
	}

	restaurant, err := h.service.UpdateRating(r.Context(), user.UserID, restaurantID, *req.Rating)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, restaurant)
}

// ListRestaurants handles GET /restaurants with optional cuisineType,
// visited, searchTerm, limit and nextToken query parameters.
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthorizedError("unauthorized"))
		return
	}

	query := r.URL.Query()

	var filters model.RestaurantFilters
	if raw := query.Get("cuisineType"); raw != "" {
		cuisine, err := model.ParseCuisineType(raw)
		if err != nil {
			h.errors.Handle(w, r, apperrors.NewValidationError("invalid cuisine type"))
			return
		}
		filters.CuisineType = &cuisine
	}
	if raw := query.Get("visited"); raw != "" {
		visited, err := strconv.ParseBool(raw)
		if err != nil {
			h.errors.Handle(w, r, apperrors.NewValidationError("visited must be true or false"))
			return
		}
		filters.Visited = &visited
	}
	filters.SearchTerm = query.Get("searchTerm")

	page := model.PageRequest{
		Limit:  defaultPageLimit,
		Cursor: query.Get("nextToken"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || limit <= 0 {
			h.errors.Handle(w, r, apperrors.NewValidationError("limit must be a positive integer"))
			return
		}
		page.Limit = int32(limit)
	}

	result, err := h.service.ListRestaurants(r.Context(), user.UserID, filters, page)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	response := ListRestaurantsResponse{
		Restaurants: result.Restaurants,
		NextToken:   result.NextCursor,
	}
	if response.Restaurants == nil {
		response.Restaurants = []model.Restaurant{}
	}
	respondJSON(w, http.StatusOK, response)
}
