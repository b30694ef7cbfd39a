// Package email delivers transactional mail through Amazon SES.
package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"tastetrail-backend/application/authflow"
)

const loginCodeSubject = "Your TasteTrail sign-in code"

// SESSender implements authflow.CodeSender on SES.
type SESSender struct {
	client      *sesv2.Client
	fromAddress string
	logger      *zap.Logger
}

// NewSESSender creates a new SESSender.
func NewSESSender(client *sesv2.Client, fromAddress string, logger *zap.Logger) authflow.CodeSender {
	return &SESSender{
		client:      client,
		fromAddress: fromAddress,
		logger:      logger,
	}
}

// SendLoginCode emails the one-time code. The code appears in both the HTML
// and the plain-text part so every mail client can show it.
func (s *SESSender) SendLoginCode(ctx context.Context, email, code string) error {
	htmlBody := fmt.Sprintf(
		"<html><body><p>Your sign-in code is:</p><h2>%s</h2><p>Enter it in the app to finish signing in. The code is valid for one attempt.</p></body></html>",
		code,
	)
	textBody := fmt.Sprintf("Your sign-in code is %s. Enter it in the app to finish signing in.", code)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(loginCodeSubject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send login code email: %w", err)
	}

	s.logger.Info("login code email sent", zap.String("email", email))
	return nil
}
