package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/config"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/handler"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/middleware"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	DashboardHandler *handler.DashboardHandler
	RecordHandler    *handler.RecordHandler
	ChatHandler      *handler.ChatHandler
	MetricsHandler   *handler.MetricsHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler(nil))

	// JSON API for health and counters
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	if deps.MetricsHandler != nil {
		deps.MetricsHandler.Register(api)
	}

	// Pages and htmx fragments. Review actions need the HOI login cookie.
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(app)
	}

	if deps.RecordHandler != nil {
		guard := requireUpstreamSession(cfg)
		app.Use("/records", guard)
		app.Use("/forms", guard)
		deps.RecordHandler.Register(app)
	}

	if deps.ChatHandler != nil {
		deps.ChatHandler.Register(app)
	}
}

func requireUpstreamSession(cfg config.Config) fiber.Handler {
	return middleware.WithUpstreamSession(func(c *fiber.Ctx) error {
		return c.Next()
	}, middleware.UpstreamSessionOptions{
		Cookie:   cfg.UpstreamCookie,
		LoginURL: cfg.LoginURL,
		Required: cfg.RequireUpstreamCookie,
	})
}
