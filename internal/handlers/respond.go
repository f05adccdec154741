package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messagely/internal/apperror"
	"messagely/internal/middleware"
	"messagely/internal/models"
)

type userService interface {
	Register(ctx context.Context, reg models.Registration) (models.RegisteredUser, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
	UpdateLoginTimestamp(ctx context.Context, username string) (models.LoginStamp, error)
	All(ctx context.Context) ([]models.UserSummary, error)
	Get(ctx context.Context, username string) (models.UserDetail, error)
	MessagesFrom(ctx context.Context, username string) ([]models.SentMessage, error)
	MessagesTo(ctx context.Context, username string) ([]models.ReceivedMessage, error)
}

type messageService interface {
	Create(ctx context.Context, msg models.NewMessage) (models.Message, error)
	Get(ctx context.Context, id int) (models.MessageDetail, error)
	Recipient(ctx context.Context, id int) (string, error)
	MarkRead(ctx context.Context, id int, reader string) (models.ReadReceipt, error)
}

type tokenIssuer interface {
	Issue(username string) (string, error)
}

// respondError writes err as {"error": message}. Errors without a status are
// attached to the context for the access log and answered with a bare 500.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// containsNUL reports whether any field holds a NUL byte, which text columns reject.
func containsNUL(fields ...string) bool {
	for _, f := range fields {
		if strings.IndexByte(f, 0) >= 0 {
			return true
		}
	}
	return false
}

func currentUser(c *gin.Context) string {
	return c.GetString(middleware.UsernameKey)
}
