// Create-auth-challenge trigger: generates and emails the login code on a
// fresh session, or recovers the code from session metadata so repeated
// invocations within one round stay stable.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"tastetrail-backend/application/authflow"
	"tastetrail-backend/infrastructure/config"
	"tastetrail-backend/infrastructure/di"
)

var sender authflow.CodeSender

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

	sender = container.CodeSender
}

func handler(ctx context.Context, event events.CognitoEventUserPoolsCreateAuthChallenge) (events.CognitoEventUserPoolsCreateAuthChallenge, error) {
	challenge, err := authflow.CreateChallenge(
		ctx,
		authflow.RoundsFromCognito(event.Request.Session),
		event.Request.UserAttributes["email"],
		sender,
	)
	if err != nil {
		return event, err
	}

	event.Response.PublicChallengeParameters = challenge.PublicParameters
	event.Response.PrivateChallengeParameters = challenge.PrivateParameters
	event.Response.ChallengeMetadata = challenge.Metadata
	return event, nil
}

func main() {
	lambda.Start(handler)
}
