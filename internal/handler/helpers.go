package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/middleware"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/utils"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/views"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func parseRecordID(c *fiber.Ctx) (int64, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", raw)
	}
	return id, nil
}

func render(c *fiber.Ctx, renderer *views.Renderer, logger zerolog.Logger, name string, data interface{}) error {
	body, err := renderer.Render(name, data)
	if err != nil {
		requestLogger(logger, c).Error().Err(err).Str("template", name).Msg("failed to render template")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to render page")
	}
	return utils.SendHTML(c, fiber.StatusOK, body)
}

// loadSection returns the section to render. Load failures become an error
// banner; only session expiry is returned as an error.
func loadSection(ctx context.Context, svc service.ViewService, kind service.ViewKind) (views.SectionData, error) {
	page, err := svc.Load(ctx, service.ViewFor(kind))
	if err != nil {
		if hoiapi.IsSessionExpired(err) {
			return views.SectionData{}, err
		}
		return views.SectionData{Page: page, Error: service.LoadFailureMessage(err)}, nil
	}
	return views.SectionData{Page: page}, nil
}
