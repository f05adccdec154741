package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"messagely/internal/apperror"
	"messagely/internal/events"
	"messagely/internal/logging"
	"messagely/internal/models"
	"messagely/internal/observability"
	"messagely/internal/repositories"
)

// MessageService creates, fetches and marks messages read. Authorization is
// left to the caller.
type MessageService struct {
	messages repositories.MessageRepository
	emitter  *events.Emitter
	log      logging.Logger
}

func NewMessageService(messages repositories.MessageRepository, emitter *events.Emitter, log logging.Logger) *MessageService {
	return &MessageService{messages: messages, emitter: emitter, log: log}
}

type messageCreatedPayload struct {
	ID           int    `json:"id"`
	FromUsername string `json:"from_username"`
	ToUsername   string `json:"to_username"`
}

type messageReadPayload struct {
	ID     int    `json:"id"`
	ReadAt string `json:"read_at"`
}

func (s *MessageService) Create(ctx context.Context, msg models.NewMessage) (models.Message, error) {
	ctx, span := tracer.Start(ctx, "MessageService.Create")
	defer span.End()
	span.SetAttributes(attribute.String("message.to", msg.ToUsername))

	created, err := s.messages.Create(ctx, msg)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidReference) {
			return models.Message{}, apperror.ForeignKeyViolation(err)
		}
		if errors.Is(err, repositories.ErrInvalidText) {
			return models.Message{}, apperror.InvalidText(err)
		}
		span.RecordError(err)
		return models.Message{}, err
	}

	observability.IncMessageSent()
	s.log.Info(ctx, "message created", "id", created.ID, "from", created.FromUsername, "to", created.ToUsername)
	s.emitter.Emit(ctx, events.MessageCreated, created.FromUsername, messageCreatedPayload{
		ID:           created.ID,
		FromUsername: created.FromUsername,
		ToUsername:   created.ToUsername,
	})
	return created, nil
}

func (s *MessageService) Get(ctx context.Context, id int) (models.MessageDetail, error) {
	ctx, span := tracer.Start(ctx, "MessageService.Get")
	defer span.End()
	span.SetAttributes(attribute.Int("message.id", id))

	msg, err := s.messages.Get(ctx, id)
	if errors.Is(err, repositories.ErrMessageNotFound) {
		return models.MessageDetail{}, apperror.NotFound(fmt.Sprintf("no such message: %d", id), err)
	}
	return msg, err
}

// Recipient returns the username a message was sent to.
func (s *MessageService) Recipient(ctx context.Context, id int) (string, error) {
	to, err := s.messages.Recipient(ctx, id)
	if errors.Is(err, repositories.ErrMessageNotFound) {
		return "", apperror.NotFound(fmt.Sprintf("no such message: %d", id), err)
	}
	return to, err
}

// MarkRead stamps read_at with the current time. reader is recorded as the
// event actor only; the caller has already checked it is the recipient.
func (s *MessageService) MarkRead(ctx context.Context, id int, reader string) (models.ReadReceipt, error) {
	ctx, span := tracer.Start(ctx, "MessageService.MarkRead")
	defer span.End()
	span.SetAttributes(attribute.Int("message.id", id))

	receipt, err := s.messages.MarkRead(ctx, id)
	if errors.Is(err, repositories.ErrMessageNotFound) {
		return models.ReadReceipt{}, apperror.NotFound(fmt.Sprintf("no such message: %d", id), err)
	}
	if err != nil {
		span.RecordError(err)
		return models.ReadReceipt{}, err
	}

	observability.IncMessageRead()
	s.emitter.Emit(ctx, events.MessageRead, reader, messageReadPayload{
		ID:     receipt.ID,
		ReadAt: receipt.ReadAt.UTC().Format(time.RFC3339Nano),
	})
	return receipt, nil
}
