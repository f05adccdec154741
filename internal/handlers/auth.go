package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messagely/internal/apperror"
	"messagely/internal/models"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	users  userService
	tokens tokenIssuer
}

func NewAuthHandler(users userService, tokens tokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.BadRequest("username and password required"))
		return
	}
	if containsNUL(req.Username, req.Password) {
		respondError(c, apperror.InvalidText(nil))
		return
	}

	ok, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, apperror.InvalidCredentials())
		return
	}

	h.respondWithToken(c, http.StatusOK, req.Username)
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.BadRequest("username, password, first_name, last_name and phone required"))
		return
	}
	if containsNUL(req.Username, req.Password, req.FirstName, req.LastName, req.Phone) {
		respondError(c, apperror.InvalidText(nil))
		return
	}

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user.Username)
}

// respondWithToken stamps the login time, then issues a token for username.
func (h *AuthHandler) respondWithToken(c *gin.Context, status int, username string) {
	if _, err := h.users.UpdateLoginTimestamp(c.Request.Context(), username); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(status, gin.H{"token": token})
}
