package auth

import (
	"context"
	"errors"
)

type contextKey string

const userContextKey contextKey = "user_context"

// UserContext is the authenticated identity attached to a request.
type UserContext struct {
	UserID string
	Email  string
}

// SetUserInContext attaches the authenticated user to the context.
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the authenticated user or an error if the
// request never passed the identity middleware.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("no user in context")
	}
	return user, nil
}
