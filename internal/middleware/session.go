package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

const sessionLocalsKey = "session_id"

// SessionConfig names the cookies the dashboard reads.
type SessionConfig struct {
	// Cookie holds the dashboard's own session id, used to key chat transcripts.
	Cookie string
	// UpstreamCookie is the HOI server's session cookie, forwarded on every upstream call.
	UpstreamCookie string
	MaxAge         time.Duration
	Secure         bool
}

// Session assigns every browser a dashboard session id and forwards the HOI
// server's session cookie to upstream calls made with the request context.
func Session(cfg SessionConfig) fiber.Handler {
	if cfg.Cookie == "" {
		cfg.Cookie = "hoidash_session"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 12 * time.Hour
	}

	return func(c *fiber.Ctx) error {
		sessionID := strings.TrimSpace(c.Cookies(cfg.Cookie))
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cfg.Cookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(sessionLocalsKey, sessionID)

		var forwarded []*http.Cookie
		if cfg.UpstreamCookie != "" {
			if value := c.Cookies(cfg.UpstreamCookie); value != "" {
				forwarded = append(forwarded, &http.Cookie{Name: cfg.UpstreamCookie, Value: value})
			}
		}
		c.SetUserContext(hoiapi.WithSession(c.UserContext(), forwarded, GetCorrelationID(c)))

		return c.Next()
	}
}

// GetSessionID returns the dashboard session id bound to the request.
func GetSessionID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Locals(sessionLocalsKey).(string); ok {
		return value
	}
	return ""
}
