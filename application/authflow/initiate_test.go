package authflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "tastetrail-backend/pkg/errors"
)

type fakeProvider struct {
	existing map[string]bool

	provisionedEmail    string
	provisionedPassword string
	startedEmail        string

	existsErr    error
	provisionErr error
	startErr     error
}

func (p *fakeProvider) UserExists(ctx context.Context, email string) (bool, error) {
	if p.existsErr != nil {
		return false, p.existsErr
	}
	return p.existing[email], nil
}

func (p *fakeProvider) ProvisionUser(ctx context.Context, email, password string) error {
	if p.provisionErr != nil {
		return p.provisionErr
	}
	p.provisionedEmail = email
	p.provisionedPassword = password
	return nil
}

func (p *fakeProvider) StartCustomAuth(ctx context.Context, email string) (string, error) {
	if p.startErr != nil {
		return "", p.startErr
	}
	p.startedEmail = email
	return "session-token", nil
}

func TestInitiate_EmptyEmail(t *testing.T) {
	initiator := NewInitiator(&fakeProvider{}, zap.NewNop())

	_, err := initiator.Initiate(context.Background(), "")

	assert.True(t, apperrors.IsValidation(err))
}

func TestInitiate_ProvisionsFirstTimeUser(t *testing.T) {
	provider := &fakeProvider{existing: map[string]bool{}}
	initiator := NewInitiator(provider, zap.NewNop())

	result, err := initiator.Initiate(context.Background(), "new@example.com")
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", provider.provisionedEmail)
	assert.True(t, PasswordMeetsPolicy(provider.provisionedPassword))
	assert.Equal(t, "new@example.com", provider.startedEmail)

	assert.Equal(t, "Authentication initiated", result.Message)
	assert.Equal(t, "session-token", result.Session)
	assert.Equal(t, "new@example.com", result.Email)
}

func TestInitiate_ExistingUserNotReprovisioned(t *testing.T) {
	provider := &fakeProvider{existing: map[string]bool{"known@example.com": true}}
	initiator := NewInitiator(provider, zap.NewNop())

	result, err := initiator.Initiate(context.Background(), "known@example.com")
	require.NoError(t, err)

	assert.Empty(t, provider.provisionedEmail)
	assert.Equal(t, "session-token", result.Session)
}

func TestInitiate_ProviderFaultsAreExternalErrors(t *testing.T) {
	fault := errors.New("throttled")

	for name, provider := range map[string]*fakeProvider{
		"lookup":    {existsErr: fault},
		"provision": {existing: map[string]bool{}, provisionErr: fault},
		"start":     {existing: map[string]bool{"a@b.c": true}, startErr: fault},
	} {
		t.Run(name, func(t *testing.T) {
			initiator := NewInitiator(provider, zap.NewNop())

			_, err := initiator.Initiate(context.Background(), "a@b.c")

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		})
	}
}
