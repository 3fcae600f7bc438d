package jwtmw

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// CookieName is the name of the auth cookie.
	CookieName = "lifetrail_auth"

	ContextUserID    = "userID"
	ContextSessionID = "sessionID"

	loginPath = "/login"
	homePath  = "/"
)

// SessionValidator checks that a session is still live for a user.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string, userID uint) error
}

// CookieOptions controls the attributes of the auth cookie.
type CookieOptions struct {
	MaxAge int // seconds
	Secure bool
}

// AuthRequired lets the request through only with a valid auth cookie whose
// session is still live. Anyone else is sent to the login page.
func AuthRequired(secret string, sessions SessionValidator, opts CookieOptions) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		userID, sessionID, ok := authenticate(c, key, sessions)
		if !ok {
			ClearAuthCookie(c, opts)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}

// RedirectIfAuthenticated sends signed-in users to the dashboard.
// Used on the login and register pages.
func RedirectIfAuthenticated(secret string, sessions SessionValidator) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if _, _, ok := authenticate(c, key, sessions); ok {
			c.Redirect(http.StatusFound, homePath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, secret []byte, sessions SessionValidator) (uint, string, bool) {
	tokenStr, err := c.Cookie(CookieName)
	if err != nil || tokenStr == "" {
		return 0, "", false
	}
	userID, sessionID, err := ParseToken(secret, tokenStr)
	if err != nil {
		return 0, "", false
	}
	if err := sessions.ValidateSession(c.Request.Context(), sessionID, userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Debug("rejected session")
		return 0, "", false
	}
	return userID, sessionID, true
}

// SetAuthCookie stores token in an HttpOnly, SameSite=Lax cookie.
func SetAuthCookie(c *gin.Context, token string, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, opts.MaxAge, "/", "", opts.Secure, true)
}

// ClearAuthCookie expires the auth cookie.
func ClearAuthCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", opts.Secure, true)
}

// UserID returns the authenticated user's ID set by AuthRequired.
func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

// SessionID returns the current session ID set by AuthRequired.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

// CurrentSessionID reads the session from the cookie without validating it.
// Logout uses it so a stale cookie can still be revoked.
func CurrentSessionID(c *gin.Context, secret string) string {
	tokenStr, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	_, sessionID, err := ParseToken([]byte(secret), tokenStr)
	if err != nil {
		return ""
	}
	return sessionID
}
