package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse is the JSON body sent for failed requests.
type ErrorResponse struct {
	Error     bool   `json:"error"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler maps errors onto HTTP responses at the handler boundary.
// Internal details are logged, never echoed to the client.
type ErrorHandler struct {
	logger *zap.Logger
	debug  bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
		debug:  debug,
	}
}

// Handle processes an error and sends the matching HTTP response.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	requestID := r.Header.Get("X-Request-ID")

	var status int
	var response ErrorResponse

	if appErr := GetAppError(err); appErr != nil {
		status = appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}

		message := appErr.Message
		// 5xx causes stay in the logs; the client gets a generic message.
		if status >= 500 && !h.debug {
			message = "internal server error"
		}

		response = ErrorResponse{
			Error:     true,
			Type:      string(appErr.Type),
			Message:   message,
			Code:      appErr.Code,
			RequestID: requestID,
		}

		h.logError(r, appErr, status)
	} else {
		status = http.StatusInternalServerError
		response = ErrorResponse{
			Error:     true,
			Type:      string(ErrorTypeInternal),
			Message:   "internal server error",
			RequestID: requestID,
		}

		h.logger.Error("unhandled error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID),
		)

		if h.debug {
			response.Message = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		h.logger.Error("failed to encode error response", zap.Error(encodeErr))
	}
}

func (h *ErrorHandler) logError(r *http.Request, appErr *AppError, status int) {
	fields := []zap.Field{
		zap.String("type", string(appErr.Type)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
	}
	if appErr.Cause != nil {
		fields = append(fields, zap.NamedError("cause", appErr.Cause))
	}

	if status >= 500 {
		h.logger.Error(appErr.Message, fields...)
	} else {
		h.logger.Warn(appErr.Message, fields...)
	}
}
