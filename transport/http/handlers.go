package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/rangda/core"
	"github.com/layer-3/rangda/service"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "rangda_session"

// AuthHandlers contains the HTTP handlers for the session endpoints.
type AuthHandlers struct {
	auth *service.AuthService
}

// NewAuthHandlers creates the handlers.
func NewAuthHandlers(auth *service.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: auth}
}

// SignIn exchanges wallet credentials for a session cookie.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var creds core.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No credentials provided"})
		return
	}

	token, session, err := h.auth.SignIn(c.Request.Context(), &creds)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNoCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No credentials provided"})
		case errors.Is(err, core.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, core.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		}
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, session)
}

// Session returns the current session, renewing the cookie on the way out.
// Anonymous or stale callers get an empty object, not an error; the
// protected routes are where absence turns into 401.
func (h *AuthHandlers) Session(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	renewed, session, err := h.auth.Session(c.Request.Context(), token)
	if err != nil {
		// A store outage says nothing about the token; keep the cookie so
		// the session survives the blip.
		if errors.Is(err, core.ErrStoreOperationFailed) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session"})
			return
		}
		h.clearSessionCookie(c)
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	h.setSessionCookie(c, renewed)
	c.JSON(http.StatusOK, session)
}

// SignOut revokes the session and clears the cookie. It always succeeds
// from the caller's perspective.
func (h *AuthHandlers) SignOut(c *gin.Context) {
	if token := extractToken(c); token != "" {
		if err := h.auth.SignOut(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
			return
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me returns the session view of the authenticated user.
func (h *AuthHandlers) Me(c *gin.Context) {
	session, err := SessionFrom(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not initialized"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// User returns the authenticated user's full datastore record.
func (h *AuthHandlers) User(c *gin.Context) {
	session, err := SessionFrom(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not initialized"})
		return
	}

	user, err := h.auth.FetchUser(c.Request.Context(), session.User.ID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandlers) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(h.auth.SessionTTL().Seconds()), "/", "", false, true)
}

func (h *AuthHandlers) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
