package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"messagely/internal/events"
	"messagely/internal/logging"
)

// NewPublisher builds a RabbitMQ publisher, or a noop publisher when AMQP is
// disabled or unreachable.
func NewPublisher(ctx context.Context, amqpURL, exchange string, log logging.Logger) events.Publisher {
	if amqpURL == "" {
		log.Info(ctx, "rabbitmq disabled, using noop", "reason", "empty amqp url")
		return noopPublisher{reason: "empty amqp url", log: log}
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		log.Warn(ctx, "rabbitmq disabled, using noop", "reason", err.Error())
		return noopPublisher{reason: err.Error(), log: log}
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Warn(ctx, "rabbitmq disabled, using noop", "reason", err.Error())
		_ = conn.Close()
		return noopPublisher{reason: err.Error(), log: log}
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		log.Warn(ctx, "rabbitmq disabled, using noop", "reason", err.Error())
		_ = ch.Close()
		_ = conn.Close()
		return noopPublisher{reason: err.Error(), log: log}
	}

	log.Info(ctx, "rabbitmq connected", "exchange", exchange)
	return &amqpPublisher{conn: conn, ch: ch, exchange: exchange}
}

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	msg, err := buildPublishing(event)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
}

func (p *amqpPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// buildPublishing encodes event as a persistent JSON message. Envelopes also
// set the AMQP message id, type and request-id header.
func buildPublishing(event any) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	}

	if envelope, ok := event.(events.Envelope); ok {
		msg.MessageId = envelope.EventID
		msg.Type = envelope.EventType
		headers := amqp.Table{}
		if envelope.RequestID != "" {
			headers["x-request-id"] = envelope.RequestID
		}
		if envelope.TraceID != "" {
			headers["trace_id"] = envelope.TraceID
		}
		msg.Headers = headers
	}
	return msg, nil
}

type noopPublisher struct {
	reason string
	log    logging.Logger
}

func (p noopPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	if envelope, ok := event.(events.Envelope); ok {
		p.log.Debug(ctx, "rabbitmq noop publish", "routing_key", routingKey, "event_type", envelope.EventType, "request_id", envelope.RequestID)
		return nil
	}
	p.log.Debug(ctx, "rabbitmq noop publish", "routing_key", routingKey)
	return nil
}

func (noopPublisher) Close() error {
	return nil
}

// PublisherMode reports the publisher mode for logging.
func PublisherMode(p events.Publisher) string {
	switch p.(type) {
	case *amqpPublisher:
		return "amqp"
	case noopPublisher:
		return "noop"
	default:
		return "unknown"
	}
}

func PublisherNoopReason(p events.Publisher) string {
	if publisher, ok := p.(noopPublisher); ok {
		return publisher.reason
	}
	return ""
}
