package authflow

import (
	"context"

	"go.uber.org/zap"

	apperrors "tastetrail-backend/pkg/errors"
)

// IdentityProvider is the slice of the external identity service the front
// door needs. Implementations must swallow "user does not exist" lookups and
// report them as absence, never as an error, so initiation cannot leak
// whether an email is registered.
type IdentityProvider interface {
	UserExists(ctx context.Context, email string) (bool, error)
	// ProvisionUser creates the account with a verified email, a permanent
	// random credential and no welcome notification.
	ProvisionUser(ctx context.Context, email, password string) error
	// StartCustomAuth begins a custom challenge round and returns the opaque
	// session handle.
	StartCustomAuth(ctx context.Context, email string) (string, error)
}

// InitiationResult is returned to the login caller.
type InitiationResult struct {
	Message string `json:"message"`
	Session string `json:"session"`
	Email   string `json:"email"`
}

// Initiator is the front door of the passwordless flow: it provisions
// first-time users and starts the challenge round for the identity.
type Initiator struct {
	provider IdentityProvider
	logger   *zap.Logger
}

// NewInitiator creates a new Initiator.
func NewInitiator(provider IdentityProvider, logger *zap.Logger) *Initiator {
	return &Initiator{
		provider: provider,
		logger:   logger,
	}
}

// Initiate looks up the identity, provisions it on first contact, and starts
// the challenge round. Concurrent initiations for the same fresh email can
// race on provisioning; the loser surfaces the provider's error and the
// caller retries.
func (i *Initiator) Initiate(ctx context.Context, email string) (*InitiationResult, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}

	exists, err := i.provider.UserExists(ctx, email)
	if err != nil {
		return nil, apperrors.NewExternalError("identity provider", err)
	}

	if !exists {
		password, err := GeneratePassword()
		if err != nil {
			return nil, apperrors.NewExternalError("identity provider", err)
		}
		if err := i.provider.ProvisionUser(ctx, email, password); err != nil {
			return nil, apperrors.NewExternalError("identity provider", err)
		}
		i.logger.Info("provisioned passwordless user", zap.String("email", email))
	}

	session, err := i.provider.StartCustomAuth(ctx, email)
	if err != nil {
		return nil, apperrors.NewExternalError("identity provider", err)
	}

	return &InitiationResult{
		Message: "Authentication initiated",
		Session: session,
		Email:   email,
	}, nil
}
