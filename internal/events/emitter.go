// Package events publishes domain events about accounts and messages.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"messagely/internal/logging"
	"messagely/internal/observability"
)

const (
	UserRegistered = "user.registered"
	MessageCreated = "message.created"
	MessageRead    = "message.read"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

type Emitter struct {
	publisher   Publisher
	service     string
	environment string
	log         logging.Logger
}

type Envelope struct {
	SchemaVersion int    `json:"schema_version"`
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	OccurredAt    string `json:"occurred_at"`
	Service       string `json:"service"`
	Environment   string `json:"environment"`
	RequestID     string `json:"request_id,omitempty"`
	TraceID       string `json:"trace_id,omitempty"`
	Actor         string `json:"actor"`
	Payload       any    `json:"payload"`
}

func NewEmitter(publisher Publisher, service, environment string, log logging.Logger) *Emitter {
	return &Emitter{
		publisher:   publisher,
		service:     service,
		environment: environment,
		log:         log,
	}
}

// Emit publishes eventType with actor as the acting username. Failures are
// logged and counted, never returned.
func (e *Emitter) Emit(ctx context.Context, eventType, actor string, payload any) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := Envelope{
		SchemaVersion: 1,
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     observability.RequestIDFromContext(ctx),
		TraceID:       observability.TraceIDFromContext(ctx),
		Actor:         actor,
		Payload:       payload,
	}

	if err := e.publisher.Publish(ctx, eventType, envelope); err != nil {
		observability.IncEventPublishError()
		if e.log != nil {
			e.log.Warn(ctx, "event publish failed", "event_type", eventType, "error", err)
		}
	}
}
