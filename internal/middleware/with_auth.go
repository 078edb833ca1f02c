package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// RedirectToLogin sends the browser to loginURL. htmx requests receive an
// HX-Redirect header so the whole page navigates instead of a fragment swap.
func RedirectToLogin(c *fiber.Ctx, loginURL string) error {
	if loginURL == "" {
		loginURL = "/login"
	}
	if IsHTMX(c) {
		c.Set("HX-Redirect", loginURL)
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect(loginURL, fiber.StatusSeeOther)
}

// UpstreamSessionOptions configures WithUpstreamSession.
type UpstreamSessionOptions struct {
	Cookie   string
	LoginURL string
	Required bool
}

// WithUpstreamSession guards a handler that needs the HOI server's session
// cookie. When the cookie is required and absent the user is sent to log in
// without an upstream round trip.
func WithUpstreamSession(handler fiber.Handler, opts UpstreamSessionOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if opts.Required && opts.Cookie != "" && c.Cookies(opts.Cookie) == "" {
			return RedirectToLogin(c, opts.LoginURL)
		}
		return handler(c)
	}
}
