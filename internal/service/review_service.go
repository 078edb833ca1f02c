package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/dto"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/observability"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/repository"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

// ReviewAction names a mutating dashboard action.
type ReviewAction string

// Review actions.
const (
	ActionApprove    ReviewAction = "approve"
	ActionDisapprove ReviewAction = "disapprove"
	ActionAlert      ReviewAction = "alert"
	ActionSubmit     ReviewAction = "submit"
)

// RemarksRequiredMessage is shown when a disapproval is attempted without remarks.
const RemarksRequiredMessage = "Remarks are required for Disapproval."

var (
	// ErrRemarksRequired is returned by Disapprove before any request is sent.
	ErrRemarksRequired = errors.New("remarks are required for disapproval")
	// ErrInvalidSubmission indicates the form payload failed schema validation.
	ErrInvalidSubmission = errors.New("invalid form submission")
)

//go:embed schemas/form_submission.schema.json
var formSubmissionSchema string

const (
	formSubmissionSchemaURL = "form_submission.schema.json"
	missingDetailField      = "N/A"
)

// ReviewService performs approve, disapprove, alert and form submission actions.
// Every successful action returns freshly gathered metric cards.
type ReviewService interface {
	Approve(ctx context.Context, id int64, remarks string) (dto.ActionOutcome, error)
	Disapprove(ctx context.Context, id int64, remarks string) (dto.ActionOutcome, error)
	ToggleAlert(ctx context.Context, id int64, currentlyOn bool) (dto.ActionOutcome, error)
	Submit(ctx context.Context, form map[string]interface{}) (dto.ActionOutcome, error)
	Detail(ctx context.Context, id int64) (dto.RecordDetailView, error)
}

type reviewService struct {
	records   repository.RecordReader
	writer    repository.RecordWriter
	metrics   MetricsService
	validator *validator.Validate
	schema    *jsonschema.Schema
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewReviewService wires the review actions.
func NewReviewService(records repository.RecordReader, writer repository.RecordWriter, metrics MetricsService, validate *validator.Validate, logger zerolog.Logger) (ReviewService, error) {
	if validate == nil {
		validate = validator.New()
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(formSubmissionSchemaURL, strings.NewReader(formSubmissionSchema)); err != nil {
		return nil, fmt.Errorf("load form submission schema: %w", err)
	}
	schema, err := compiler.Compile(formSubmissionSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile form submission schema: %w", err)
	}

	return &reviewService{
		records:   records,
		writer:    writer,
		metrics:   metrics,
		validator: validate,
		schema:    schema,
		logger:    logger.With().Str("component", "review_service").Logger(),
		tracer:    otel.Tracer("github.com/santhoshkumar20044/HOI-Activity-New/internal/service/review"),
	}, nil
}

func (s *reviewService) Approve(ctx context.Context, id int64, remarks string) (dto.ActionOutcome, error) {
	request := dto.ReviewRequest{RecordID: id, Remarks: strings.TrimSpace(remarks)}
	if err := s.validator.Struct(request); err != nil {
		return dto.ActionOutcome{}, err
	}

	return s.run(ctx, ActionApprove, id, func(ctx context.Context) (hoiapi.ActionResult, error) {
		return s.writer.Approve(ctx, request.RecordID, request.Remarks)
	}, func(result hoiapi.ActionResult) (string, string) {
		return reviewSuccessMessage(ActionApprove, result.Message), string(ViewApprovals)
	})
}

func (s *reviewService) Disapprove(ctx context.Context, id int64, remarks string) (dto.ActionOutcome, error) {
	request := dto.DisapproveRequest{RecordID: id, Remarks: strings.TrimSpace(remarks)}
	if request.Remarks == "" {
		return dto.ActionOutcome{}, ErrRemarksRequired
	}
	if err := s.validator.Struct(request); err != nil {
		return dto.ActionOutcome{}, err
	}

	return s.run(ctx, ActionDisapprove, id, func(ctx context.Context) (hoiapi.ActionResult, error) {
		return s.writer.Disapprove(ctx, request.RecordID, request.Remarks)
	}, func(result hoiapi.ActionResult) (string, string) {
		return reviewSuccessMessage(ActionDisapprove, result.Message), string(ViewApprovals)
	})
}

// ToggleAlert requests the opposite of the flag the caller saw when the toggle
// was rendered.
func (s *reviewService) ToggleAlert(ctx context.Context, id int64, currentlyOn bool) (dto.ActionOutcome, error) {
	current := 0
	if currentlyOn {
		current = 1
	}
	request := dto.AlertToggleRequest{RecordID: id, Current: current}
	if err := s.validator.Struct(request); err != nil {
		return dto.ActionOutcome{}, err
	}

	target := !request.CurrentlyOn()
	return s.run(ctx, ActionAlert, id, func(ctx context.Context) (hoiapi.ActionResult, error) {
		return s.writer.SetAlert(ctx, request.RecordID, target)
	}, func(result hoiapi.ActionResult) (string, string) {
		return result.Message, string(ViewAlerts)
	})
}

func (s *reviewService) Submit(ctx context.Context, form map[string]interface{}) (dto.ActionOutcome, error) {
	if form == nil {
		return dto.ActionOutcome{}, fmt.Errorf("%w: empty payload", ErrInvalidSubmission)
	}
	if err := s.schema.Validate(toSchemaValue(form)); err != nil {
		return dto.ActionOutcome{}, fmt.Errorf("%w: %s", ErrInvalidSubmission, schemaErrorMessage(err))
	}

	return s.run(ctx, ActionSubmit, 0, func(ctx context.Context) (hoiapi.ActionResult, error) {
		return s.writer.SubmitForm(ctx, form)
	}, func(result hoiapi.ActionResult) (string, string) {
		return result.Message, string(ViewOverview)
	})
}

func (s *reviewService) Detail(ctx context.Context, id int64) (dto.RecordDetailView, error) {
	ctx, span := s.tracer.Start(ctx, "review.detail", trace.WithAttributes(attribute.Int64("record.id", id)))
	defer span.End()

	detail, err := s.records.GetRecord(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "detail failed")
		return dto.RecordDetailView{}, err
	}

	pretty, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return dto.RecordDetailView{}, fmt.Errorf("encode record %d: %w", id, err)
	}

	return dto.RecordDetailView{
		ID:       id,
		FormName: detailField(detail, "form_name"),
		Status:   models.RecordStatus(detailField(detail, "status")),
		Content:  string(pretty),
	}, nil
}

type actionCall func(ctx context.Context) (hoiapi.ActionResult, error)

type actionSuccess func(result hoiapi.ActionResult) (message string, section string)

func (s *reviewService) run(ctx context.Context, action ReviewAction, id int64, call actionCall, success actionSuccess) (dto.ActionOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "review."+string(action), trace.WithAttributes(attribute.Int64("record.id", id)))
	defer span.End()

	result, err := call(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "action failed")
		observability.ReviewActions().WithLabelValues(string(action), actionOutcomeLabel(err)).Inc()
		s.logger.Warn().Err(err).Str("action", string(action)).Int64("record_id", id).Msg("review action failed")
		return dto.ActionOutcome{}, err
	}

	observability.ReviewActions().WithLabelValues(string(action), "ok").Inc()
	s.logger.Info().Str("action", string(action)).Int64("record_id", id).Msg("review action completed")

	message, section := success(result)
	return dto.ActionOutcome{
		Message: message,
		Metrics: s.metrics.Display(ctx),
		Section: section,
	}, nil
}

func actionOutcomeLabel(err error) string {
	switch {
	case hoiapi.IsSessionExpired(err):
		return "session_expired"
	case hoiapi.IsTransport(err):
		return "transport_error"
	default:
		return "rejected"
	}
}

func reviewSuccessMessage(action ReviewAction, message string) string {
	return fmt.Sprintf("✅ %s successful. Message: %s", strings.ToUpper(string(action)), message)
}

// AlertConfirmPrompt is the confirmation asked before toggling a record's alert.
func AlertConfirmPrompt(id int64, currentlyOn bool) string {
	verb := "setting Alert"
	if currentlyOn {
		verb = "clearing Alert"
	}
	return fmt.Sprintf("Confirm %s for Record ID: %d?", verb, id)
}

// ActionFailureMessage renders the user-facing text for a failed action.
// Session expiry is not covered; callers redirect to the login page instead.
func ActionFailureMessage(action ReviewAction, err error) string {
	if errors.Is(err, ErrRemarksRequired) {
		return RemarksRequiredMessage
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return "Invalid request: " + validationErrors.Error()
	}
	if errors.Is(err, ErrInvalidSubmission) {
		return "Submission failed: " + err.Error()
	}

	if rejected, ok := hoiapi.IsRejected(err); ok {
		switch action {
		case ActionAlert:
			return "Error updating Alert status: " + rejected.Message
		case ActionSubmit:
			return "Submission failed: " + rejected.Message
		default:
			return fmt.Sprintf("❌ Error during %s: %s", action, rejected.Message)
		}
	}

	switch action {
	case ActionAlert:
		return "Network or internal error during alert update: " + err.Error()
	case ActionSubmit:
		return "An error occurred during submission."
	default:
		return fmt.Sprintf("Network or internal error during %s: %s", action, err.Error())
	}
}

// DetailFailureMessage renders the text shown when a record's details cannot load.
func DetailFailureMessage(id int64, err error) string {
	return fmt.Sprintf("Error: Could not load details for ID %d. %s", id, err.Error())
}

func detailField(detail hoiapi.RecordDetail, key string) string {
	value, ok := detail[key]
	if !ok || value == nil {
		return missingDetailField
	}
	text := strings.TrimSpace(fmt.Sprint(value))
	if text == "" {
		return missingDetailField
	}
	return text
}

// toSchemaValue round-trips the payload through JSON so the validator sees
// only JSON-native types.
func toSchemaValue(form map[string]interface{}) interface{} {
	raw, err := json.Marshal(form)
	if err != nil {
		return form
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return form
	}
	return value
}

func schemaErrorMessage(err error) string {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		leaf := validationErr
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		if leaf.InstanceLocation == "" {
			return leaf.Message
		}
		return fmt.Sprintf("%s: %s", leaf.InstanceLocation, leaf.Message)
	}
	return err.Error()
}
