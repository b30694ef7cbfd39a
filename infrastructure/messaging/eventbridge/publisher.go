// Package eventbridge publishes domain events to an AWS EventBridge bus.
// Consumers (digests, exports, analytics) attach through bus rules; the
// publisher knows nothing about them.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"tastetrail-backend/application/ports"
)

// eventSource identifies this service on the bus.
const eventSource = "tastetrail.backend"

// Publisher implements ports.EventPublisher on EventBridge.
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher.
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish sends one event to the bus. The detail payload is serialized to
// JSON; callers treat failures as best-effort and only log them.
func (p *Publisher) Publish(ctx context.Context, detailType string, detail interface{}) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal event detail: %w", err)
	}

	input := &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.eventBusName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(detailType),
				Detail:       aws.String(string(payload)),
			},
		},
	}

	result, err := p.client.PutEvents(ctx, input)
	if err != nil {
		return fmt.Errorf("put events: %w", err)
	}

	if result.FailedEntryCount > 0 {
		entry := result.Entries[0]
		p.logger.Error("event rejected by bus",
			zap.String("detailType", detailType),
			zap.String("errorCode", aws.ToString(entry.ErrorCode)),
			zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
		)
		return fmt.Errorf("event rejected: %s", aws.ToString(entry.ErrorCode))
	}

	p.logger.Debug("event published",
		zap.String("detailType", detailType),
		zap.String("eventBus", p.eventBusName),
	)
	return nil
}
