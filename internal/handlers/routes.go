package handlers

import "github.com/gin-gonic/gin"

// Handlers groups the route handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Messages *MessageHandler
	Health   *HealthHandler
}

// RegisterRoutes mounts the public routes. requireAuth guards everything
// except login, register and health.
func RegisterRoutes(router gin.IRouter, requireAuth gin.HandlerFunc, h Handlers) {
	router.GET("/health", h.Health.Health)

	router.POST("/login", h.Auth.Login)
	router.POST("/register", h.Auth.Register)

	users := router.Group("/users", requireAuth)
	users.GET("", h.Users.ListUsers)
	users.GET("/:username", h.Users.GetUser)
	users.GET("/:username/to", h.Users.MessagesTo)
	users.GET("/:username/from", h.Users.MessagesFrom)

	messages := router.Group("/messages", requireAuth)
	messages.GET("/:id", h.Messages.GetMessage)
	messages.POST("", h.Messages.PostMessage)
	messages.POST("/:id/read", h.Messages.MarkRead)
}
