package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messagely/internal/apperror"
)

// UserHandler serves /users.
type UserHandler struct {
	users userService
}

func NewUserHandler(users userService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// requireSelf rejects callers other than the :username in the path.
func requireSelf(c *gin.Context) (string, bool) {
	username := c.Param("username")
	if currentUser(c) != username {
		respondError(c, apperror.Forbidden("cannot access another user"))
		return "", false
	}
	return username, true
}

// GetUser handles GET /users/:username.
func (h *UserHandler) GetUser(c *gin.Context) {
	username, ok := requireSelf(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// MessagesTo handles GET /users/:username/to.
func (h *UserHandler) MessagesTo(c *gin.Context) {
	username, ok := requireSelf(c)
	if !ok {
		return
	}

	msgs, err := h.users.MessagesTo(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// MessagesFrom handles GET /users/:username/from.
func (h *UserHandler) MessagesFrom(c *gin.Context) {
	username, ok := requireSelf(c)
	if !ok {
		return
	}

	msgs, err := h.users.MessagesFrom(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
