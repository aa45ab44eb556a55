package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/shared/domain"
)

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, msg Message) error

	// Close closes the publisher connection.
	Close() error
}

// Message is an encoded domain event together with the identity a broker needs to route,
// deduplicate and trace it.
type Message struct {
	RoutingKey    string
	MessageID     string
	CorrelationID string
	AggregateType string
	OccurredAt    time.Time
	Body          []byte
}

// NewMessage encodes event in its envelope.
func NewMessage(event domain.DomainEvent) (Message, error) {
	body, err := json.Marshal(domain.NewEnvelope(event))
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal event %s: %w", event.RoutingKey(), err)
	}
	return Message{
		RoutingKey:    event.RoutingKey(),
		MessageID:     event.EventID().String(),
		CorrelationID: event.Metadata().CorrelationID,
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt(),
		Body:          body,
	}, nil
}

// PublishEvent wraps a domain event in its envelope and publishes it under its routing key.
func PublishEvent(ctx context.Context, publisher Publisher, event domain.DomainEvent) error {
	msg, err := NewMessage(event)
	if err != nil {
		return err
	}
	return publisher.Publish(ctx, msg)
}
