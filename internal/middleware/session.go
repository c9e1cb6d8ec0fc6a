package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "ta_session"
	sessionLocal  = "session_id"
)

// Session binds every request to a session identifier. The identifier is
// taken from the X-Session-ID header or the ta_session cookie, and minted
// fresh when neither is present. This is an ownership handle for the
// session's stored state, not authentication.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(sessionHeader))
		if id == "" {
			id = strings.TrimSpace(c.Cookies(sessionCookie))
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(sessionLocal, id)
		c.Set(sessionHeader, id)
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Expires:  time.Now().Add(30 * 24 * time.Hour),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		return c.Next()
	}
}

// GetSessionID returns the session identifier bound to the active request.
func GetSessionID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if value := c.Locals(sessionLocal); value != nil {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
