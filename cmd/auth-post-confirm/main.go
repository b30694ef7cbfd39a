// Post-confirmation trigger: provisions the user metadata item after the
// identity provider confirms an account. Idempotent on email, so retried
// invocations do not create duplicates.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"tastetrail-backend/application/ports"
	"tastetrail-backend/infrastructure/config"
	"tastetrail-backend/infrastructure/di"
)

var (
	users  ports.UserRepository
	logger *zap.Logger
)

func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	users = container.UserRepo
	logger = container.Logger
}

func handler(ctx context.Context, event events.CognitoEventUserPoolsPostConfirmation) (events.CognitoEventUserPoolsPostConfirmation, error) {
	email := event.Request.UserAttributes["email"]
	if email == "" {
		logger.Warn("post-confirmation event without email attribute")
		return event, nil
	}

	existing, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		return event, err
	}
	if existing != nil {
		return event, nil
	}

	user, err := users.CreateUser(ctx, email)
	if err != nil {
		return event, err
	}

	logger.Info("provisioned user record",
		zap.String("userId", user.UserID),
		zap.String("email", email),
	)
	return event, nil
}

func main() {
	lambda.Start(handler)
}
