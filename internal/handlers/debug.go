package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messagely/internal/events"
)

const debugEventType = "debug.test"

// RegisterDebugRoutes wires debug-only endpoints.
func RegisterDebugRoutes(router gin.IRouter, emitter *events.Emitter, enabled bool) {
	if !enabled {
		return
	}

	router.POST("/debug/event-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event emitter not configured"})
			return
		}
		emitter.Emit(c.Request.Context(), debugEventType, currentUser(c), gin.H{"status": "ok"})
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
