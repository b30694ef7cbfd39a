package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tastetrail-backend/application/services"
	"tastetrail-backend/domain/model"
	"tastetrail-backend/pkg/auth"
	apperrors "tastetrail-backend/pkg/errors"
	"tastetrail-backend/pkg/utils"
)

// ReviewHandler handles review note requests.
type ReviewHandler struct {
	service *services.RestaurantService
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service *services.RestaurantService, errors *apperrors.ErrorHandler, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		errors:  errors,
		logger:  logger,
	}
}

// AddReviewRequest is the body for POST /restaurants/{restaurantID}/reviews.
type AddReviewRequest struct {
	Text string `json:"text" validate:"required,min=1,max=5000"`
}

// ListReviewsResponse wraps a restaurant's notes, newest first.
type ListReviewsResponse struct {
	Reviews []model.ReviewNote `json:"reviews"`
}

// AddReview handles POST /restaurants/{restaurantID}/reviews. Adding a note
// marks the restaurant visited as a side effect.
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
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

	var req AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	note, err := h.service.AddReviewNote(r.Context(), user.UserID, restaurantID, req.Text)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, note)
}

// ListReviews handles GET /restaurants/{restaurantID}/reviews.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
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

	notes, err := h.service.GetReviewNotes(r.Context(), user.UserID, restaurantID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if notes == nil {
		notes = []model.ReviewNote{}
	}
	respondJSON(w, http.StatusOK, ListReviewsResponse{Reviews: notes})
}
