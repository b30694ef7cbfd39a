// Package identity adapts the Cognito user pool APIs to the authflow ports.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.uber.org/zap"

	"tastetrail-backend/application/authflow"
)

// CognitoProvider implements authflow.IdentityProvider against a Cognito
// user pool configured for the custom authentication flow.
type CognitoProvider struct {
	client     *cognitoidentityprovider.Client
	userPoolID string
	clientID   string
	logger     *zap.Logger
}

// NewCognitoProvider creates a new CognitoProvider.
func NewCognitoProvider(client *cognitoidentityprovider.Client, userPoolID, clientID string, logger *zap.Logger) authflow.IdentityProvider {
	return &CognitoProvider{
		client:     client,
		userPoolID: userPoolID,
		clientID:   clientID,
		logger:     logger,
	}
}

// UserExists reports whether the pool holds an account for the email.
// A not-found lookup is absence, not an error.
func (p *CognitoProvider) UserExists(ctx context.Context, email string) (bool, error) {
	_, err := p.client.AdminGetUser(ctx, &cognitoidentityprovider.AdminGetUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		var notFound *types.UserNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("admin get user: %w", err)
	}
	return true, nil
}

// ProvisionUser creates the account silently: no invitation message, email
// pre-verified, and a permanent password the user never sees. The password
// exists only to satisfy pool policy; sign-in goes through the custom
// challenge.
func (p *CognitoProvider) ProvisionUser(ctx context.Context, email, password string) error {
	_, err := p.client.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:    aws.String(p.userPoolID),
		Username:      aws.String(email),
		MessageAction: types.MessageActionTypeSuppress,
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
	})
	if err != nil {
		return fmt.Errorf("admin create user: %w", err)
	}

	_, err = p.client.AdminSetUserPassword(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  true,
	})
	if err != nil {
		return fmt.Errorf("admin set user password: %w", err)
	}

	p.logger.Info("provisioned user pool account", zap.String("email", email))
	return nil
}

// StartCustomAuth begins a CUSTOM_AUTH round and returns the session handle
// the client must echo back with its answer.
func (p *CognitoProvider) StartCustomAuth(ctx context.Context, email string) (string, error) {
	out, err := p.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeCustomAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
		},
	})
	if err != nil {
		return "", fmt.Errorf("initiate auth: %w", err)
	}
	return aws.ToString(out.Session), nil
}
