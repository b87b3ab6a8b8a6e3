package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/rangda/core"
	"github.com/layer-3/rangda/service"
)

const sessionContextKey = "rangda.session"

// SessionMiddleware validates the session token from the cookie or the
// Authorization header and stores the projected session in the request
// context. The renewed token is rotated into the cookie as a side effect,
// matching the session endpoint's implicit-renewal behavior.
func SessionMiddleware(auth *service.AuthService, handlers *AuthHandlers) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		renewed, session, err := auth.Session(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			case errors.Is(err, core.ErrTokenRevoked):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session revoked"})
			case errors.Is(err, core.ErrStoreOperationFailed):
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session"})
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			}
			return
		}

		handlers.setSessionCookie(c, renewed)
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// SessionFrom returns the session stored by the middleware. A request that
// never went through it yields ErrNotInitialized rather than a panic
// discovered late.
func SessionFrom(c *gin.Context) (core.Session, error) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return core.Session{}, core.ErrNotInitialized
	}
	session, ok := v.(core.Session)
	if !ok {
		return core.Session{}, core.ErrNotInitialized
	}
	return session, nil
}

// extractToken reads the session token from the cookie, falling back to a
// bearer Authorization header for non-browser clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
