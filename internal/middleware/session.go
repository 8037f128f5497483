package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/session"
)

const sessionContextKey = "session"

// SessionCookie configures the visitor cookie.
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge int
}

// Session binds a session.Store to every request. The visitor is identified by a random
// id in a cookie; a missing or malformed cookie starts a new, empty session.
func Session(storage session.Storage, cookie SessionCookie, logger zerolog.Logger) gin.HandlerFunc {
	if cookie.Name == "" {
		cookie.Name = "edureach_sid"
	}
	return func(c *gin.Context) {
		id, err := c.Cookie(cookie.Name)
		if err != nil || !validSessionID(id) {
			id = uuid.NewString()
		}
		// Refresh on every request so MaxAge slides.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie.Name, id, cookie.MaxAge, "/", "", cookie.Secure, true)

		c.Set(sessionContextKey, session.NewStore(storage, id, logger))
		c.Next()
	}
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GetSession returns the request's session store. It panics when Session did not run, which
// is a wiring bug.
func GetSession(c *gin.Context) *session.Store {
	return c.MustGet(sessionContextKey).(*session.Store)
}
