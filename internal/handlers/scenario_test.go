package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"messagely/internal/auth"
	"messagely/internal/credentials"
	"messagely/internal/events"
	"messagely/internal/logging"
	"messagely/internal/middleware"
	"messagely/internal/mocks"
	"messagely/internal/models"
	"messagely/internal/repositories"
	"messagely/internal/services"
)

// storedUser mirrors a users row.
type storedUser struct {
	models.RegisteredUser
	JoinAt      time.Time
	LastLoginAt *time.Time
}

// memStore is an in-memory stand-in for both repositories, enforcing the
// same unique and foreign-key rules as the schema.
type memStore struct {
	users    map[string]storedUser
	messages []models.Message
}

func newMemStore() *memStore {
	return &memStore{users: map[string]storedUser{}}
}

func (s *memStore) summary(username string) models.UserSummary {
	u := s.users[username]
	return models.UserSummary{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone}
}

func (s *memStore) Create(_ context.Context, user models.RegisteredUser) (models.RegisteredUser, error) {
	if _, ok := s.users[user.Username]; ok {
		return models.RegisteredUser{}, repositories.ErrDuplicateUsername
	}
	s.users[user.Username] = storedUser{RegisteredUser: user, JoinAt: time.Now()}
	return user, nil
}

func (s *memStore) PasswordHash(_ context.Context, username string) (string, error) {
	u, ok := s.users[username]
	if !ok {
		return "", repositories.ErrUserNotFound
	}
	return u.Password, nil
}

func (s *memStore) UpdateLastLogin(_ context.Context, username string) (models.LoginStamp, error) {
	u, ok := s.users[username]
	if !ok {
		return models.LoginStamp{}, repositories.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	s.users[username] = u
	return models.LoginStamp{Username: username, LastLoginAt: now}, nil
}

func (s *memStore) List(context.Context) ([]models.UserSummary, error) {
	out := make([]models.UserSummary, 0, len(s.users))
	for name := range s.users {
		out = append(out, s.summary(name))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *memStore) Get(_ context.Context, username string) (models.UserDetail, error) {
	u, ok := s.users[username]
	if !ok {
		return models.UserDetail{}, repositories.ErrUserNotFound
	}
	return models.UserDetail{UserSummary: s.summary(username), JoinAt: u.JoinAt, LastLoginAt: u.LastLoginAt}, nil
}

func (s *memStore) Exists(_ context.Context, username string) (bool, error) {
	_, ok := s.users[username]
	return ok, nil
}

type memMessages struct{ *memStore }

func (m memMessages) Create(_ context.Context, msg models.NewMessage) (models.Message, error) {
	_, fromOK := m.users[msg.FromUsername]
	_, toOK := m.users[msg.ToUsername]
	if !fromOK || !toOK {
		return models.Message{}, repositories.ErrInvalidReference
	}
	created := models.Message{ID: len(m.messages) + 1, FromUsername: msg.FromUsername, ToUsername: msg.ToUsername, Body: msg.Body, SentAt: time.Now()}
	m.messages = append(m.messages, created)
	return created, nil
}

func (m memMessages) find(id int) (*models.Message, error) {
	if id < 1 || id > len(m.messages) {
		return nil, repositories.ErrMessageNotFound
	}
	return &m.messages[id-1], nil
}

func (m memMessages) Get(_ context.Context, id int) (models.MessageDetail, error) {
	msg, err := m.find(id)
	if err != nil {
		return models.MessageDetail{}, err
	}
	return models.MessageDetail{
		ID: msg.ID, Body: msg.Body, SentAt: msg.SentAt, ReadAt: msg.ReadAt,
		FromUser: m.summary(msg.FromUsername), ToUser: m.summary(msg.ToUsername),
	}, nil
}

func (m memMessages) Recipient(_ context.Context, id int) (string, error) {
	msg, err := m.find(id)
	if err != nil {
		return "", err
	}
	return msg.ToUsername, nil
}

func (m memMessages) MarkRead(_ context.Context, id int) (models.ReadReceipt, error) {
	msg, err := m.find(id)
	if err != nil {
		return models.ReadReceipt{}, err
	}
	now := time.Now()
	msg.ReadAt = &now
	return models.ReadReceipt{ID: id, ReadAt: now}, nil
}

func (m memMessages) ListFrom(_ context.Context, username string) ([]models.SentMessage, error) {
	out := []models.SentMessage{}
	for _, msg := range m.messages {
		if msg.FromUsername == username {
			out = append(out, models.SentMessage{ID: msg.ID, ToUser: m.summary(msg.ToUsername), Body: msg.Body, SentAt: msg.SentAt, ReadAt: msg.ReadAt})
		}
	}
	return out, nil
}

func (m memMessages) ListTo(_ context.Context, username string) ([]models.ReceivedMessage, error) {
	out := []models.ReceivedMessage{}
	for _, msg := range m.messages {
		if msg.ToUsername == username {
			out = append(out, models.ReceivedMessage{ID: msg.ID, FromUser: m.summary(msg.FromUsername), Body: msg.Body, SentAt: msg.SentAt, ReadAt: msg.ReadAt})
		}
	}
	return out, nil
}

func newScenarioRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	msgs := memMessages{store}
	emitter := events.NewEmitter(nil, "messagely", "test", logging.Nop())
	hasher := credentials.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService("scenario-secret", time.Hour)

	userSvc := services.NewUserService(store, msgs, hasher, emitter, logging.Nop())
	messageSvc := services.NewMessageService(msgs, emitter, logging.Nop())

	r := gin.New()
	r.Use(middleware.RequestID())
	RegisterRoutes(r, middleware.AuthMiddleware(tokens), Handlers{
		Auth:     NewAuthHandler(userSvc, tokens),
		Users:    NewUserHandler(userSvc),
		Messages: NewMessageHandler(messageSvc),
		Health:   NewHealthHandler(new(mocks.PingerMock)),
	})
	return r
}

type client struct {
	t      *testing.T
	router *gin.Engine
	name   string
	token  string
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, router *gin.Engine, username string) *client {
	t.Helper()
	c := &client{t: t, router: router, name: username}
	rec := c.do(http.MethodPost, "/register", fmt.Sprintf(
		`{"username":%q,"password":"pw-%s","first_name":"F","last_name":"L","phone":"555"}`, username, username))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	c.token = token
	return c
}

func (c *client) lastLogin() time.Time {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/users/"+c.name, "")
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	raw, ok := decodeBody(c.t, rec)["user"].(map[string]any)["last_login_at"].(string)
	require.True(c.t, ok, "last_login_at should be set")
	at, err := time.Parse(time.RFC3339Nano, raw)
	require.NoError(c.t, err)
	return at
}

func TestMessagingScenario(t *testing.T) {
	router := newScenarioRouter()

	alice := register(t, router, "alice")
	bob := register(t, router, "bob")
	carol := register(t, router, "carol")

	dup := (&client{t: t, router: router}).do(http.MethodPost, "/register",
		`{"username":"alice","password":"other","first_name":"F","last_name":"L","phone":"1"}`)
	assert.Equal(t, http.StatusBadRequest, dup.Code)

	registeredAt := alice.lastLogin()
	login := (&client{t: t, router: router}).do(http.MethodPost, "/login", `{"username":"alice","password":"pw-alice"}`)
	require.Equal(t, http.StatusOK, login.Code)
	loggedInAt := alice.lastLogin()
	assert.False(t, loggedInAt.Before(registeredAt), "last_login_at moved backwards: %s -> %s", registeredAt, loggedInAt)
	badLogin := (&client{t: t, router: router}).do(http.MethodPost, "/login", `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusUnauthorized, badLogin.Code)

	sent := alice.do(http.MethodPost, "/messages", `{"to_username":"bob","body":"hi"}`)
	require.Equal(t, http.StatusCreated, sent.Code)
	msg := decodeBody(t, sent)["message"].(map[string]any)
	id := int(msg["id"].(float64))
	assert.Equal(t, "alice", msg["from_username"])

	path := fmt.Sprintf("/messages/%d", id)
	assert.Equal(t, http.StatusOK, bob.do(http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusOK, alice.do(http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusUnauthorized, carol.do(http.MethodGet, path, "").Code)

	assert.Equal(t, http.StatusUnauthorized, alice.do(http.MethodPost, path+"/read", "").Code)
	read := bob.do(http.MethodPost, path+"/read", "")
	require.Equal(t, http.StatusOK, read.Code)
	readAt := decodeBody(t, read)["message"].(map[string]any)["read_at"]
	assert.NotEmpty(t, readAt)

	reread := bob.do(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, reread.Code)
	assert.Equal(t, readAt, decodeBody(t, reread)["message"].(map[string]any)["read_at"])

	inbox := bob.do(http.MethodGet, "/users/bob/to", "")
	require.Equal(t, http.StatusOK, inbox.Code)
	assert.Len(t, decodeBody(t, inbox)["messages"].([]any), 1)

	empty := carol.do(http.MethodGet, "/users/carol/from", "")
	require.Equal(t, http.StatusOK, empty.Code)
	assert.JSONEq(t, `{"messages":[]}`, empty.Body.String())

	assert.Equal(t, http.StatusUnauthorized, carol.do(http.MethodGet, "/users/bob/to", "").Code)
	assert.Equal(t, http.StatusNotFound, alice.do(http.MethodGet, "/messages/99", "").Code)
	assert.Equal(t, http.StatusNotFound, alice.do(http.MethodGet, "/messages/2147483648", "").Code)
	assert.Equal(t, http.StatusBadRequest, alice.do(http.MethodPost, "/messages", `{"to_username":"bob","body":"a\u0000b"}`).Code)
	assert.Equal(t, http.StatusBadRequest, alice.do(http.MethodPost, "/messages", `{"to_username":"nobody","body":"hi"}`).Code)

	anonymous := (&client{t: t, router: router}).do(http.MethodGet, path, "")
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
}
