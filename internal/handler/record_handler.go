package handler

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/dto"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/middleware"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/utils"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/views"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

// RecordHandler serves record details and the review, alert and submission actions.
type RecordHandler struct {
	review   service.ReviewService
	views    service.ViewService
	renderer *views.Renderer
	loginURL string
	logger   zerolog.Logger
}

// NewRecordHandler creates a new handler instance.
func NewRecordHandler(review service.ReviewService, viewService service.ViewService, renderer *views.Renderer, loginURL string, logger zerolog.Logger) *RecordHandler {
	return &RecordHandler{
		review:   review,
		views:    viewService,
		renderer: renderer,
		loginURL: loginURL,
		logger:   logger.With().Str("component", "record_handler").Logger(),
	}
}

// Register attaches the record routes.
func (h *RecordHandler) Register(router fiber.Router) {
	router.Get("/records/:id", h.detail)
	router.Get("/records/:id/review", h.reviewModal)
	router.Post("/records/:id/approve", h.approve)
	router.Post("/records/:id/disapprove", h.disapprove)
	router.Post("/records/:id/alert", h.toggleAlert)
	router.Post("/forms/submit", h.submit)
}

func (h *RecordHandler) detail(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	detail, err := h.review.Detail(c.UserContext(), id)
	if err != nil {
		if hoiapi.IsSessionExpired(err) {
			return middleware.RedirectToLogin(c, h.loginURL)
		}
		requestLogger(h.logger, c).Warn().Err(err).Int64("record_id", id).Msg("failed to load record details")
		return render(c, h.renderer, h.logger, views.TemplateDetail, views.DetailData{Error: service.DetailFailureMessage(id, err)})
	}

	return render(c, h.renderer, h.logger, views.TemplateDetail, views.DetailData{Detail: detail})
}

func (h *RecordHandler) reviewModal(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	return render(c, h.renderer, h.logger, views.TemplateReviewModal, views.ReviewModalData{
		RecordID: id,
		FormName: c.Query("form"),
		SavedBy:  c.Query("by"),
	})
}

func (h *RecordHandler) approve(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	outcome, err := h.review.Approve(c.UserContext(), id, c.FormValue("remarks"))
	return h.respond(c, service.ActionApprove, id, outcome, err)
}

func (h *RecordHandler) disapprove(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	outcome, err := h.review.Disapprove(c.UserContext(), id, c.FormValue("remarks"))
	if errors.Is(err, service.ErrRemarksRequired) {
		// Keep the dialog open and show why.
		c.Set("HX-Retarget", "#modal")
		c.Set("HX-Reswap", "innerHTML")
		return render(c, h.renderer, h.logger, views.TemplateReviewModal, views.ReviewModalData{
			RecordID: id,
			FormName: c.FormValue("form"),
			SavedBy:  c.FormValue("by"),
			Error:    service.RemarksRequiredMessage,
		})
	}
	return h.respond(c, service.ActionDisapprove, id, outcome, err)
}

func (h *RecordHandler) toggleAlert(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	request := dto.AlertToggleRequest{RecordID: id}
	if c.FormValue("current") == "1" {
		request.Current = 1
	}

	outcome, err := h.review.ToggleAlert(c.UserContext(), request.RecordID, request.CurrentlyOn())
	return h.respond(c, service.ActionAlert, id, outcome, err)
}

func (h *RecordHandler) respond(c *fiber.Ctx, action service.ReviewAction, id int64, outcome dto.ActionOutcome, err error) error {
	if err != nil {
		if hoiapi.IsSessionExpired(err) {
			return middleware.RedirectToLogin(c, h.loginURL)
		}
		requestLogger(h.logger, c).Warn().Err(err).Str("action", string(action)).Int64("record_id", id).Msg("action failed")
		c.Set("HX-Reswap", "none")
		return render(c, h.renderer, h.logger, views.TemplateActionResult, views.ActionResultData{
			Notice: views.Notice{Kind: views.NoticeError, Message: service.ActionFailureMessage(action, err)},
		})
	}

	section, err := loadSection(c.UserContext(), h.views, service.ParseView(outcome.Section))
	if err != nil {
		return middleware.RedirectToLogin(c, h.loginURL)
	}

	metrics := outcome.Metrics
	return render(c, h.renderer, h.logger, views.TemplateActionResult, views.ActionResultData{
		Notice:     views.Notice{Kind: views.NoticeSuccess, Message: outcome.Message},
		Metrics:    &metrics,
		Section:    &section,
		CloseModal: true,
	})
}

func (h *RecordHandler) submit(c *fiber.Ctx) error {
	var form map[string]interface{}
	if err := json.Unmarshal(c.Body(), &form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid JSON payload")
	}

	outcome, err := h.review.Submit(c.UserContext(), form)
	if err != nil {
		switch {
		case hoiapi.IsSessionExpired(err):
			return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrInvalidSubmission):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, service.ActionFailureMessage(service.ActionSubmit, err))
		case hoiapi.IsTransport(err):
			requestLogger(h.logger, c).Error().Err(err).Msg("form submission failed")
			return utils.SendError(c, fiber.StatusBadGateway, service.ActionFailureMessage(service.ActionSubmit, err))
		default:
			return utils.SendError(c, fiber.StatusUnprocessableEntity, service.ActionFailureMessage(service.ActionSubmit, err))
		}
	}

	return utils.SendSuccess(c, outcome.Message, outcome)
}
