// Package authflow implements the passwordless email-code authentication
// flow: the three challenge callbacks the identity provider drives during a
// custom authentication round, and the front-door initiation that bootstraps
// it. The callbacks are pure functions over the provider-managed session
// history so they can be exercised without any provider in the loop.
package authflow

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

// ChallengeNameCustom is the provider's name for a custom challenge round.
const ChallengeNameCustom = "CUSTOM_CHALLENGE"

// privateCodeParameter is the key under which the expected answer travels in
// the private challenge parameters, invisible to the client.
const privateCodeParameter = "secretLoginCode"

const codeMetadataPrefix = "CODE-"

var codeMetadataPattern = regexp.MustCompile(`CODE-(\d+)`)

// ChallengeRound is one completed round in the provider's session history.
type ChallengeRound struct {
	ChallengeName string
	Succeeded     bool
	Metadata      string
}

// Decision is the outcome of the define step.
type Decision struct {
	ChallengeName      string
	IssueTokens        bool
	FailAuthentication bool
}

// Define decides whether to keep challenging, succeed, or fail. The protocol
// is strictly one round: an empty history issues the custom challenge, a
// history of exactly one succeeded custom round issues tokens, and every
// other shape fails authentication. There is no "ask again".
func Define(session []ChallengeRound) Decision {
	switch {
	case len(session) == 0:
		return Decision{ChallengeName: ChallengeNameCustom}
	case len(session) == 1 &&
		session[0].ChallengeName == ChallengeNameCustom &&
		session[0].Succeeded:
		return Decision{IssueTokens: true}
	default:
		return Decision{FailAuthentication: true}
	}
}

// CodeSender delivers a login code to an email address.
type CodeSender interface {
	SendLoginCode(ctx context.Context, email, code string) error
}

// Challenge is the payload produced by the create step.
type Challenge struct {
	// PublicParameters are visible to the client.
	PublicParameters map[string]string
	// PrivateParameters hold the expected answer for the verify step.
	PrivateParameters map[string]string
	// Metadata is embedded in the session so a later invocation of the same
	// round can recover the code without re-sending email.
	Metadata string
}

// CreateChallenge produces the challenge payload for the current session. A
// fresh session generates and emails a new code; a session that already
// carries a code marker reuses it, so the code is stable across repeated
// invocations within one round.
func CreateChallenge(ctx context.Context, session []ChallengeRound, email string, sender CodeSender) (Challenge, error) {
	var code string

	if len(session) == 0 {
		generated, err := GenerateLoginCode()
		if err != nil {
			return Challenge{}, fmt.Errorf("generate login code: %w", err)
		}
		if err := sender.SendLoginCode(ctx, email, generated); err != nil {
			return Challenge{}, fmt.Errorf("send login code: %w", err)
		}
		code = generated
	} else {
		previous := session[len(session)-1]
		recovered, ok := codeFromMetadata(previous.Metadata)
		if !ok {
			return Challenge{}, fmt.Errorf("session carries no login code marker")
		}
		code = recovered
	}

	return Challenge{
		PublicParameters:  map[string]string{"email": email},
		PrivateParameters: map[string]string{privateCodeParameter: code},
		Metadata:          codeMetadataPrefix + code,
	}, nil
}

// VerifyAnswer grades the client's answer: correct if and only if it is
// exactly the recorded code. No trimming, no case folding.
func VerifyAnswer(privateParameters map[string]string, answer string) bool {
	expected, ok := privateParameters[privateCodeParameter]
	return ok && expected == answer
}

// GenerateLoginCode draws a 6-digit code uniformly from [100000, 999999].
func GenerateLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func codeFromMetadata(metadata string) (string, bool) {
	match := codeMetadataPattern.FindStringSubmatch(metadata)
	if match == nil {
		return "", false
	}
	return match[1], true
}
