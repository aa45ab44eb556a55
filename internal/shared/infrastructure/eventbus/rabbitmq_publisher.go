package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName is the topic exchange ranked-task events go to.
	ExchangeName = "taskrank.domain.events"

	appID = "taskrank"
)

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpConnection interface {
	Close() error
}

// RabbitMQPublisher publishes event messages to a RabbitMQ topic exchange.
// Events are informational and do not outlive a broker restart.
type RabbitMQPublisher struct {
	conn     amqpConnection
	channel  amqpChannel
	exchange string
	logger   *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewRabbitMQPublisher connects to RabbitMQ and declares the events exchange.
func NewRabbitMQPublisher(url string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// durable topic exchange, not auto-deleted, not internal
	if err := ch.ExchangeDeclare(ExchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", ExchangeName, err)
	}

	p := newRabbitMQPublisher(conn, ch, ExchangeName, logger)
	p.logger.Info("RabbitMQ publisher connected", "exchange", ExchangeName)
	return p, nil
}

func newRabbitMQPublisher(conn amqpConnection, ch amqpChannel, exchange string, logger *slog.Logger) *RabbitMQPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RabbitMQPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger.With("exchange", exchange),
	}
}

// Publish sends msg to the exchange under its routing key. The event id becomes the AMQP
// message id so consumers can drop redeliveries.
func (p *RabbitMQPublisher) Publish(ctx context.Context, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	err := p.channel.PublishWithContext(ctx, p.exchange, msg.RoutingKey, false, false, toPublishing(msg))
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			"routing_key", msg.RoutingKey,
			"message_id", msg.MessageID,
			"error", err,
		)
		return fmt.Errorf("publish %s: %w", msg.RoutingKey, err)
	}

	p.logger.DebugContext(ctx, "event published",
		"routing_key", msg.RoutingKey,
		"message_id", msg.MessageID,
		"size", len(msg.Body),
	)
	return nil
}

func toPublishing(msg Message) amqp.Publishing {
	return amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Transient,
		MessageId:     msg.MessageID,
		CorrelationId: msg.CorrelationID,
		Type:          msg.RoutingKey,
		AppId:         appID,
		Timestamp:     msg.OccurredAt,
		Headers:       amqp.Table{"aggregate_type": msg.AggregateType},
		Body:          msg.Body,
	}
}

// Close closes the channel and connection. Later publishes fail with ErrPublisherClosed.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.channel.Close(); err != nil {
		p.logger.Warn("error closing channel", "error", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("close RabbitMQ connection: %w", err)
	}

	p.logger.Info("RabbitMQ publisher closed")
	return nil
}

// NoopPublisher discards messages; used when no broker is configured.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the message and drops it.
func (p *NoopPublisher) Publish(ctx context.Context, msg Message) error {
	p.logger.DebugContext(ctx, "event dropped, no broker configured",
		"routing_key", msg.RoutingKey,
		"message_id", msg.MessageID,
	)
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error {
	return nil
}
