package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"tastetrail-backend/application/authflow"
	apperrors "tastetrail-backend/pkg/errors"
	"tastetrail-backend/pkg/utils"
)

// AuthHandler handles the passwordless login front door.
type AuthHandler struct {
	initiator *authflow.Initiator
	errors    *apperrors.ErrorHandler
	logger    *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(initiator *authflow.Initiator, errors *apperrors.ErrorHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		initiator: initiator,
		errors:    errors,
		logger:    logger,
	}
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Login handles POST /auth/login. It provisions first-time users and starts
// the email-code challenge; the response carries the session handle the
// client echoes back with its answer.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.initiator.Initiate(r.Context(), req.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
