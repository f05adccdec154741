package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"messagely/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Create(ctx context.Context, user models.RegisteredUser) (models.RegisteredUser, error) {
	args := m.Called(ctx, user)
	var created models.RegisteredUser
	if val := args.Get(0); val != nil {
		created = val.(models.RegisteredUser)
	}
	return created, args.Error(1)
}

func (m *UserRepositoryMock) PasswordHash(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *UserRepositoryMock) UpdateLastLogin(ctx context.Context, username string) (models.LoginStamp, error) {
	args := m.Called(ctx, username)
	var stamp models.LoginStamp
	if val := args.Get(0); val != nil {
		stamp = val.(models.LoginStamp)
	}
	return stamp, args.Error(1)
}

func (m *UserRepositoryMock) List(ctx context.Context) ([]models.UserSummary, error) {
	args := m.Called(ctx)
	var list []models.UserSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.UserSummary)
	}
	return list, args.Error(1)
}

func (m *UserRepositoryMock) Get(ctx context.Context, username string) (models.UserDetail, error) {
	args := m.Called(ctx, username)
	var user models.UserDetail
	if val := args.Get(0); val != nil {
		user = val.(models.UserDetail)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) Exists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, msg models.NewMessage) (models.Message, error) {
	args := m.Called(ctx, msg)
	var created models.Message
	if val := args.Get(0); val != nil {
		created = val.(models.Message)
	}
	return created, args.Error(1)
}

func (m *MessageRepositoryMock) Get(ctx context.Context, id int) (models.MessageDetail, error) {
	args := m.Called(ctx, id)
	var msg models.MessageDetail
	if val := args.Get(0); val != nil {
		msg = val.(models.MessageDetail)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) Recipient(ctx context.Context, id int) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MessageRepositoryMock) MarkRead(ctx context.Context, id int) (models.ReadReceipt, error) {
	args := m.Called(ctx, id)
	var receipt models.ReadReceipt
	if val := args.Get(0); val != nil {
		receipt = val.(models.ReadReceipt)
	}
	return receipt, args.Error(1)
}

func (m *MessageRepositoryMock) ListFrom(ctx context.Context, username string) ([]models.SentMessage, error) {
	args := m.Called(ctx, username)
	var list []models.SentMessage
	if val := args.Get(0); val != nil {
		list = val.([]models.SentMessage)
	}
	return list, args.Error(1)
}

func (m *MessageRepositoryMock) ListTo(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	args := m.Called(ctx, username)
	var list []models.ReceivedMessage
	if val := args.Get(0); val != nil {
		list = val.([]models.ReceivedMessage)
	}
	return list, args.Error(1)
}

type HasherMock struct {
	mock.Mock
}

func (m *HasherMock) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *HasherMock) Verify(plaintext, hashed string) bool {
	args := m.Called(plaintext, hashed)
	return args.Bool(0)
}
