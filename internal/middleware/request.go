package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"messagely/internal/logging"
	"messagely/internal/observability"
)

const (
	RequestIDHeader = "X-Request-Id"
	RequestIDKey    = "request_id"
)

// RequestID reuses the caller's X-Request-Id or generates one, and echoes it
// back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := observability.RequestIDFromRequest(c.Request)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one line per request. Errors attached with c.Error are
// logged at error level.
func AccessLog(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		args := []any{
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", observability.RequestIDFromContext(ctx),
			"ip", observability.IPFromRequest(c.Request),
		}
		if traceID := observability.TraceIDFromContext(ctx); traceID != "" {
			args = append(args, "trace_id", traceID)
		}
		if username := c.GetString(UsernameKey); username != "" {
			args = append(args, "username", username)
		}

		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
			log.Error(ctx, "request failed", args...)
			return
		}
		log.Info(ctx, "request", args...)
	}
}
