package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard/internal/domain/authz"
	"github.com/taskboard/taskboard/internal/domain/entity"
)

const sessionKey = "session"

// Middleware rejects requests without a valid Bearer token and stores
// the parsed session in the gin context for handlers to pass onward.
// No handler reads identity from anywhere else.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		session, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// OptionalMiddleware parses a Bearer token when one is present but
// lets anonymous requests through. Used for open registration, where
// an admin session unlocks role assignment.
func OptionalMiddleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if session, err := tokens.Parse(strings.TrimSpace(parts[1])); err == nil {
				c.Set(sessionKey, session)
			}
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the session holds the
// administrator role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if session.Role != entity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
			return
		}
		c.Next()
	}
}

// SessionFrom extracts the authenticated session set by Middleware
func SessionFrom(c *gin.Context) (authz.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return authz.Session{}, false
	}
	session, ok := v.(authz.Session)
	return session, ok
}
