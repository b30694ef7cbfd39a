package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tastetrail-backend/pkg/auth"
)

// Headers set by the Lambda entrypoint after reading the API Gateway
// authorizer context. The authorizer has already verified the token; the
// middleware only lifts the identity into the request context.
const (
	headerGatewayAuthorized = "X-Api-Gateway-Authorized"
	headerUserID            = "X-User-Id"
	headerUserEmail         = "X-User-Email"
)

// Authenticate builds the identity middleware. In the deployed stack the
// API Gateway JWT authorizer verifies tokens and the Lambda entrypoint
// forwards the claims as headers; trustGatewayHeaders is only set there,
// where the entrypoint has stripped any inbound copies first. The local
// server never trusts these headers — a client could set them — so it
// always validates the bearer token itself.
func Authenticate(validator *auth.JWTValidator, trustGatewayHeaders bool, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trustGatewayHeaders && r.Header.Get(headerGatewayAuthorized) == "true" {
				userID := r.Header.Get(headerUserID)
				if userID == "" {
					respondUnauthorized(w, "missing user context")
					return
				}

				userCtx := &auth.UserContext{
					UserID: userID,
					Email:  r.Header.Get(headerUserEmail),
				}
				next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), userCtx)))
				return
			}

			token := bearerToken(r)
			if token == "" {
				respondUnauthorized(w, "missing authentication token")
				return
			}
			if validator == nil {
				respondUnauthorized(w, "token validation unavailable")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("token rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				switch err {
				case auth.ErrExpiredToken:
					respondUnauthorized(w, "token has expired")
				default:
					respondUnauthorized(w, "invalid token")
				}
				return
			}

			userCtx := &auth.UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
			}
			next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), userCtx)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return header
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"type":    "UNAUTHORIZED",
		"message": message,
	})
}
