package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/middleware"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/views"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

// ChatHandler serves the assistant widget transcript.
type ChatHandler struct {
	service  service.ChatService
	renderer *views.Renderer
	limiter  fiber.Handler
	loginURL string
	logger   zerolog.Logger
}

// NewChatHandler creates a chat handler instance. limiter guards message
// submission and may be nil.
func NewChatHandler(service service.ChatService, renderer *views.Renderer, limiter fiber.Handler, loginURL string, logger zerolog.Logger) *ChatHandler {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	return &ChatHandler{
		service:  service,
		renderer: renderer,
		limiter:  limiter,
		loginURL: loginURL,
		logger:   logger.With().Str("component", "chat_handler").Logger(),
	}
}

// Register binds chat routes under the provided router group.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Get("/chat", h.open)
	router.Post("/chat", h.limiter, h.send)
	router.Post("/chat/reply", h.reply)
}

func (h *ChatHandler) open(c *fiber.Ctx) error {
	entries, err := h.service.Open(c.UserContext(), middleware.GetSessionID(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to open chat transcript")
		return c.Status(fiber.StatusInternalServerError).SendString("chat is unavailable")
	}

	return render(c, h.renderer, h.logger, views.TemplateChat, entries)
}

func (h *ChatHandler) send(c *fiber.Ctx) error {
	exchange, err := h.service.Submit(c.UserContext(), middleware.GetSessionID(c), c.FormValue("message"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyChatMessage):
			return c.SendStatus(fiber.StatusNoContent)
		case isValidationError(err):
			return c.Status(fiber.StatusUnprocessableEntity).SendString("message is too long")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record chat message")
			return c.Status(fiber.StatusInternalServerError).SendString("chat is unavailable")
		}
	}

	return render(c, h.renderer, h.logger, views.TemplateChatExchange, views.ChatExchangeData{
		Entries: exchange.Entries,
		Pending: exchange.Pending,
	})
}

func (h *ChatHandler) reply(c *fiber.Ctx) error {
	entries, err := h.service.Complete(c.UserContext(), middleware.GetSessionID(c), c.FormValue("pending"))
	if err != nil {
		if hoiapi.IsSessionExpired(err) {
			return middleware.RedirectToLogin(c, h.loginURL)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to record chat reply")
		return c.Status(fiber.StatusInternalServerError).SendString("chat is unavailable")
	}

	return render(c, h.renderer, h.logger, views.TemplateChat, entries)
}
