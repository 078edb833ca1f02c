package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/config"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Upstream    string    `json:"upstream"`
	ChatStore   string    `json:"chat_store"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	chatStore := "memory"
	if cfg.RedisURL != "" {
		chatStore = "redis"
	}

	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Upstream:    cfg.UpstreamBaseURL,
			ChatStore:   chatStore,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
