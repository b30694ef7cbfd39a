// Define-auth-challenge trigger: decides after each round whether to issue
// tokens, fail, or present the custom challenge. The protocol is strictly
// one round.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"tastetrail-backend/application/authflow"
)

func handler(ctx context.Context, event events.CognitoEventUserPoolsDefineAuthChallenge) (events.CognitoEventUserPoolsDefineAuthChallenge, error) {
	decision := authflow.Define(authflow.RoundsFromCognito(event.Request.Session))

	event.Response.ChallengeName = decision.ChallengeName
	event.Response.IssueTokens = decision.IssueTokens
	event.Response.FailAuthentication = decision.FailAuthentication
	return event, nil
}

func main() {
	lambda.Start(handler)
}
