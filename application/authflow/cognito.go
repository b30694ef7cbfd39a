package authflow

import "github.com/aws/aws-lambda-go/events"

// RoundsFromCognito converts the session history of a Cognito custom-auth
// trigger event into challenge rounds.
func RoundsFromCognito(session []*events.CognitoEventUserPoolsChallengeResult) []ChallengeRound {
	rounds := make([]ChallengeRound, 0, len(session))
	for _, result := range session {
		if result == nil {
			continue
		}
		rounds = append(rounds, ChallengeRound{
			ChallengeName: result.ChallengeName,
			Succeeded:     result.ChallengeResult,
			Metadata:      result.ChallengeMetadata,
		})
	}
	return rounds
}
