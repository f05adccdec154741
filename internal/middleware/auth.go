package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UsernameKey is the gin context key holding the authenticated username.
const UsernameKey = "username"

type tokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware validates the Bearer token in the Authorization header and
// stores the username it was issued to.
func AuthMiddleware(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		username, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(UsernameKey, username)
		c.Next()
	}
}
