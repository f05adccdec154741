// Package services holds the user and message entities: the rules that sit
// between the HTTP handlers and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"messagely/internal/apperror"
	"messagely/internal/credentials"
	"messagely/internal/events"
	"messagely/internal/logging"
	"messagely/internal/models"
	"messagely/internal/observability"
	"messagely/internal/repositories"
)

var tracer = otel.Tracer("messagely/internal/services")

// UserService registers and authenticates users and serves their message lists.
type UserService struct {
	users    repositories.UserRepository
	messages repositories.MessageRepository
	hasher   credentials.Hasher
	emitter  *events.Emitter
	log      logging.Logger
}

func NewUserService(users repositories.UserRepository, messages repositories.MessageRepository, hasher credentials.Hasher, emitter *events.Emitter, log logging.Logger) *UserService {
	return &UserService{
		users:    users,
		messages: messages,
		hasher:   hasher,
		emitter:  emitter,
		log:      log,
	}
}

// Register hashes the password and stores the new user. The hash is complete
// before the insert is issued.
func (s *UserService) Register(ctx context.Context, reg models.Registration) (models.RegisteredUser, error) {
	ctx, span := tracer.Start(ctx, "UserService.Register")
	defer span.End()
	span.SetAttributes(attribute.String("user.username", reg.Username))

	hashed, err := s.hasher.Hash(reg.Password)
	if err != nil {
		observability.ObserveRegistration(false)
		if errors.Is(err, credentials.ErrPasswordTooLong) {
			return models.RegisteredUser{}, apperror.BadRequest("password is too long")
		}
		span.RecordError(err)
		return models.RegisteredUser{}, err
	}

	user, err := s.users.Create(ctx, models.RegisteredUser{
		Username:  reg.Username,
		Password:  hashed,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Phone:     reg.Phone,
	})
	if err != nil {
		observability.ObserveRegistration(false)
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return models.RegisteredUser{}, apperror.DuplicateUsername(err)
		}
		if errors.Is(err, repositories.ErrInvalidText) {
			return models.RegisteredUser{}, apperror.InvalidText(err)
		}
		span.RecordError(err)
		return models.RegisteredUser{}, err
	}

	observability.ObserveRegistration(true)
	s.log.Info(ctx, "user registered", "username", user.Username)
	s.emitter.Emit(ctx, events.UserRegistered, user.Username, map[string]string{"username": user.Username})
	return user, nil
}

// Authenticate reports whether password matches the stored credential. An
// unknown username is a plain false, same as a wrong password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	ctx, span := tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()

	hash, err := s.users.PasswordHash(ctx, username)
	if errors.Is(err, repositories.ErrUserNotFound) || errors.Is(err, repositories.ErrInvalidText) {
		observability.ObserveLogin(false)
		return false, nil
	}
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("load credential: %w", err)
	}

	ok := s.hasher.Verify(password, hash)
	observability.ObserveLogin(ok)
	return ok, nil
}

func (s *UserService) UpdateLoginTimestamp(ctx context.Context, username string) (models.LoginStamp, error) {
	stamp, err := s.users.UpdateLastLogin(ctx, username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return models.LoginStamp{}, apperror.NotFound(fmt.Sprintf("no such user: %s", username), err)
	}
	return stamp, err
}

// All lists every user ordered by username.
func (s *UserService) All(ctx context.Context) ([]models.UserSummary, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (models.UserDetail, error) {
	user, err := s.users.Get(ctx, username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return models.UserDetail{}, apperror.NotFound(fmt.Sprintf("no such user: %s", username), err)
	}
	return user, err
}

// MessagesFrom lists messages sent by username. A user who sent nothing gets
// an empty list; a missing user is NotFound.
func (s *UserService) MessagesFrom(ctx context.Context, username string) ([]models.SentMessage, error) {
	ctx, span := tracer.Start(ctx, "UserService.MessagesFrom")
	defer span.End()

	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	return s.messages.ListFrom(ctx, username)
}

// MessagesTo lists messages received by username, with the same existence rule as MessagesFrom.
func (s *UserService) MessagesTo(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	ctx, span := tracer.Start(ctx, "UserService.MessagesTo")
	defer span.End()

	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	return s.messages.ListTo(ctx, username)
}

func (s *UserService) requireUser(ctx context.Context, username string) error {
	ok, err := s.users.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return apperror.NotFound(fmt.Sprintf("no such user: %s", username), repositories.ErrUserNotFound)
	}
	return nil
}
