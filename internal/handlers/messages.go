package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"messagely/internal/apperror"
	"messagely/internal/models"
)

// MessageHandler serves /messages. Every route expects an authenticated caller.
type MessageHandler struct {
	messages messageService
}

func NewMessageHandler(messages messageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// parseMessageID reads :id as a positive int4, the range of messages.id.
// A well-formed id beyond that range can never exist, so it is NotFound.
func parseMessageID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if errors.Is(err, strconv.ErrRange) && id > 0 {
		respondError(c, apperror.NotFound(fmt.Sprintf("no such message: %s", raw), nil))
		return 0, false
	}
	if err != nil || id <= 0 {
		respondError(c, apperror.BadRequest("invalid message id"))
		return 0, false
	}
	return int(id), true
}

// GetMessage handles GET /messages/:id. Only the sender or recipient may read it.
func (h *MessageHandler) GetMessage(c *gin.Context) {
	id, ok := parseMessageID(c)
	if !ok {
		return
	}

	msg, err := h.messages.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	caller := currentUser(c)
	if caller != msg.FromUser.Username && caller != msg.ToUser.Username {
		respondError(c, apperror.Forbidden("cannot read this message"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// PostMessage handles POST /messages. The sender is always the caller; a
// from_username in the body is ignored.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req struct {
		ToUsername string `json:"to_username" binding:"required"`
		Body       string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.BadRequest("to_username and body required"))
		return
	}
	if containsNUL(req.ToUsername, req.Body) {
		respondError(c, apperror.InvalidText(nil))
		return
	}

	msg, err := h.messages.Create(c.Request.Context(), models.NewMessage{
		FromUsername: currentUser(c),
		ToUsername:   req.ToUsername,
		Body:         req.Body,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// MarkRead handles POST /messages/:id/read. Only the recipient may mark it.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := parseMessageID(c)
	if !ok {
		return
	}

	to, err := h.messages.Recipient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	caller := currentUser(c)
	if caller != to {
		respondError(c, apperror.Forbidden("cannot set this message to read"))
		return
	}

	receipt, err := h.messages.MarkRead(c.Request.Context(), id, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": receipt})
}
