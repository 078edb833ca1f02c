package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/dto"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/utils"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

// MetricsHandler exposes the dashboard counters as JSON.
type MetricsHandler struct {
	service  service.MetricsService
	sentinel string
	now      func() time.Time
	logger   zerolog.Logger
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(svc service.MetricsService, sentinel string, logger zerolog.Logger) *MetricsHandler {
	if sentinel == "" {
		sentinel = service.DefaultMetricsSentinel
	}

	return &MetricsHandler{
		service:  svc,
		sentinel: sentinel,
		now:      time.Now,
		logger:   logger.With().Str("component", "metrics_handler").Logger(),
	}
}

// Register attaches the routes to the router group.
func (h *MetricsHandler) Register(router fiber.Router) {
	router.Get("/metrics", h.get)
}

func (h *MetricsHandler) get(c *fiber.Ctx) error {
	response := dto.MetricsResponse{Refreshed: h.now().UTC().Format(time.RFC3339)}

	snapshot, err := h.service.Snapshot(c.UserContext())
	if err != nil {
		if hoiapi.IsSessionExpired(err) {
			return utils.SendError(c, fiber.StatusUnauthorized, "session expired")
		}
		requestLogger(h.logger, c).Warn().Err(err).Msg("metrics unavailable")
		response.Display = service.UnavailableDisplay(h.sentinel)
		return utils.SendSuccess(c, "metrics unavailable", response)
	}

	response.Snapshot = &snapshot
	response.Display = service.DisplayOf(snapshot)
	return utils.SendSuccess(c, "metrics retrieved", response)
}
