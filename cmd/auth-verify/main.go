// Verify-auth-challenge trigger: grades the client's answer against the
// code recorded in the private challenge parameters. Exact string match
// only.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"tastetrail-backend/application/authflow"
)

func handler(ctx context.Context, event events.CognitoEventUserPoolsVerifyAuthChallenge) (events.CognitoEventUserPoolsVerifyAuthChallenge, error) {
	answer, _ := event.Request.ChallengeAnswer.(string)
	event.Response.AnswerCorrect = authflow.VerifyAnswer(event.Request.PrivateChallengeParameters, answer)
	return event, nil
}

func main() {
	lambda.Start(handler)
}
