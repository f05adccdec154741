package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"messagely/internal/models"
)

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) Register(ctx context.Context, reg models.Registration) (models.RegisteredUser, error) {
	args := m.Called(ctx, reg)
	var user models.RegisteredUser
	if val := args.Get(0); val != nil {
		user = val.(models.RegisteredUser)
	}
	return user, args.Error(1)
}

func (m *UserServiceMock) Authenticate(ctx context.Context, username, password string) (bool, error) {
	args := m.Called(ctx, username, password)
	return args.Bool(0), args.Error(1)
}

func (m *UserServiceMock) UpdateLoginTimestamp(ctx context.Context, username string) (models.LoginStamp, error) {
	args := m.Called(ctx, username)
	var stamp models.LoginStamp
	if val := args.Get(0); val != nil {
		stamp = val.(models.LoginStamp)
	}
	return stamp, args.Error(1)
}

func (m *UserServiceMock) All(ctx context.Context) ([]models.UserSummary, error) {
	args := m.Called(ctx)
	var list []models.UserSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.UserSummary)
	}
	return list, args.Error(1)
}

func (m *UserServiceMock) Get(ctx context.Context, username string) (models.UserDetail, error) {
	args := m.Called(ctx, username)
	var user models.UserDetail
	if val := args.Get(0); val != nil {
		user = val.(models.UserDetail)
	}
	return user, args.Error(1)
}

func (m *UserServiceMock) MessagesFrom(ctx context.Context, username string) ([]models.SentMessage, error) {
	args := m.Called(ctx, username)
	var list []models.SentMessage
	if val := args.Get(0); val != nil {
		list = val.([]models.SentMessage)
	}
	return list, args.Error(1)
}

func (m *UserServiceMock) MessagesTo(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	args := m.Called(ctx, username)
	var list []models.ReceivedMessage
	if val := args.Get(0); val != nil {
		list = val.([]models.ReceivedMessage)
	}
	return list, args.Error(1)
}

type MessageServiceMock struct {
	mock.Mock
}

func (m *MessageServiceMock) Create(ctx context.Context, msg models.NewMessage) (models.Message, error) {
	args := m.Called(ctx, msg)
	var created models.Message
	if val := args.Get(0); val != nil {
		created = val.(models.Message)
	}
	return created, args.Error(1)
}

func (m *MessageServiceMock) Get(ctx context.Context, id int) (models.MessageDetail, error) {
	args := m.Called(ctx, id)
	var msg models.MessageDetail
	if val := args.Get(0); val != nil {
		msg = val.(models.MessageDetail)
	}
	return msg, args.Error(1)
}

func (m *MessageServiceMock) Recipient(ctx context.Context, id int) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MessageServiceMock) MarkRead(ctx context.Context, id int, reader string) (models.ReadReceipt, error) {
	args := m.Called(ctx, id, reader)
	var receipt models.ReadReceipt
	if val := args.Get(0); val != nil {
		receipt = val.(models.ReadReceipt)
	}
	return receipt, args.Error(1)
}

type TokenIssuerMock struct {
	mock.Mock
}

func (m *TokenIssuerMock) Issue(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

type PingerMock struct {
	mock.Mock
}

func (m *PingerMock) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
