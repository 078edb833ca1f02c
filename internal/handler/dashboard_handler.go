package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/middleware"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/views"
)

// DashboardHandler serves the dashboard page, its sections and the metric cards.
type DashboardHandler struct {
	views    service.ViewService
	metrics  service.MetricsService
	renderer *views.Renderer
	appName  string
	loginURL string
	logger   zerolog.Logger
}

// NewDashboardHandler creates a new handler instance.
func NewDashboardHandler(viewService service.ViewService, metrics service.MetricsService, renderer *views.Renderer, appName, loginURL string, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		views:    viewService,
		metrics:  metrics,
		renderer: renderer,
		appName:  appName,
		loginURL: loginURL,
		logger:   logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/", h.index)
	router.Get("/dashboard", h.index)
	router.Get("/sections/:name", h.section)
	router.Get("/metrics/cards", h.cards)
}

func (h *DashboardHandler) index(c *fiber.Ctx) error {
	kind := service.ParseView(c.Query("view"))

	section, err := loadSection(c.UserContext(), h.views, kind)
	if err != nil {
		return middleware.RedirectToLogin(c, h.loginURL)
	}

	return render(c, h.renderer, h.logger, views.TemplateLayout, views.LayoutData{
		AppName: h.appName,
		Nav:     views.Navigation(kind),
		Section: section,
	})
}

func (h *DashboardHandler) section(c *fiber.Ctx) error {
	kind := service.ParseView(c.Params("name"))

	section, err := loadSection(c.UserContext(), h.views, kind)
	if err != nil {
		requestLogger(h.logger, c).Info().Str("view", string(kind)).Msg("upstream session expired")
		return middleware.RedirectToLogin(c, h.loginURL)
	}

	return render(c, h.renderer, h.logger, views.TemplateSection, section)
}

func (h *DashboardHandler) cards(c *fiber.Ctx) error {
	return render(c, h.renderer, h.logger, views.TemplateCards, views.CardsData{
		Metrics: h.metrics.Display(c.UserContext()),
	})
}
