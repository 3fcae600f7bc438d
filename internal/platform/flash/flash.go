// Package flash carries one-shot user messages across a redirect.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

// Level is the severity of a message; templates use it as a CSS class.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Message is a single flash message.
type Message struct {
	Level Level
	Text  string
}

const sessionName = "lifetrail_flash"

func init() {
	gob.Register(Message{})
}

// Store keeps flash messages in a signed cookie.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore creates a Store signing cookies with secret.
func NewStore(secret string, secure bool) *Store {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	}
	return &Store{cookies: cs}
}

func (s *Store) session(c *gin.Context) *sessions.Session {
	// A tampered or stale cookie yields a fresh session along with the error.
	sess, err := s.cookies.Get(c.Request, sessionName)
	if err != nil {
		logrus.WithError(err).Debug("discarding unreadable flash cookie")
	}
	return sess
}

// Add queues a message for the next rendered page.
func (s *Store) Add(c *gin.Context, level Level, text string) {
	sess := s.session(c)
	sess.AddFlash(Message{Level: level, Text: text})
	if err := sess.Save(c.Request, c.Writer); err != nil {
		logrus.WithError(err).Warn("failed to save flash message")
	}
}

// Pop returns and clears the queued messages.
// It must run before the response body is written.
func (s *Store) Pop(c *gin.Context) []Message {
	sess := s.session(c)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(c.Request, c.Writer); err != nil {
		logrus.WithError(err).Warn("failed to clear flash messages")
	}

	out := make([]Message, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(Message); ok {
			out = append(out, m)
		}
	}
	return out
}
