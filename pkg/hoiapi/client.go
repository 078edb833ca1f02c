package hoiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
)

// Upstream routes.
const (
	PathPendingApprovals = "/api/pending_approvals"
	PathAlerts           = "/api/alerts"
	PathTodayActivities  = "/api/today_activities"
	PathRecordDetail     = "/api/get_form_content/"
	PathFormTemplate     = "/api/load_form_template/"
	PathSubmitForm       = "/submit_form_data"
	PathApprove          = "/api/approve_submission"
	PathDisapprove       = "/api/disapprove_submission"
	PathSetAlert         = "/api/set_alert"
	PathChatReply        = "/chatbot_reply"
)

const maxResponseBytes = 4 << 20

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hoidash",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Upstream HOI API calls by operation and outcome.",
	}, []string{"op", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hoidash",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of upstream HOI API calls.",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	}, []string{"op"})
)

// Config defines how the client reaches the upstream.
type Config struct {
	BaseURL string
	// Timeout bounds each call when positive. Zero leaves calls unbounded.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client is a typed client for the HOI upstream REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
	logger  zerolog.Logger
}

// ActionResult is the upstream's answer to a write call.
type ActionResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	EntryID int64  `json:"entry_id,omitempty"`
}

// RecordDetail is the full stored content of a record.
type RecordDetail map[string]interface{}

type listEnvelope struct {
	Status  string                  `json:"status"`
	Data    []models.ActivityRecord `json:"data"`
	Message string                  `json:"message"`
}

type actionEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Reply   string `json:"reply"`
	Error   string `json:"error"`
	EntryID int64  `json:"entry_id"`
}

const opChatReply = "chat_reply"

// text is the human-readable part of the envelope. Chat replies put the
// assistant's reply ahead of the message.
func (e actionEnvelope) text(op string) string {
	switch {
	case op == opChatReply && e.Reply != "":
		return e.Reply
	case e.Message != "":
		return e.Message
	case e.Reply != "":
		return e.Reply
	default:
		return e.Error
	}
}

// New builds a client for the given base URL.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("hoiapi base url is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if cfg.Timeout > 0 {
		clone := *httpClient
		clone.Timeout = cfg.Timeout
		httpClient = &clone
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		tracer:  otel.Tracer("github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"),
		logger:  cfg.Logger.With().Str("component", "hoiapi_client").Logger(),
	}, nil
}

// BaseURL returns the upstream root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FormTemplateURL returns the upstream link that serves a form template.
func (c *Client) FormTemplateURL(fileName string) string {
	return c.baseURL + PathFormTemplate + fileName
}

// ListPendingApprovals fetches records awaiting review.
func (c *Client) ListPendingApprovals(ctx context.Context) ([]models.ApprovalRecord, error) {
	return c.list(ctx, "list_pending_approvals", PathPendingApprovals)
}

// ListAlerts fetches records flagged as alerts.
func (c *Client) ListAlerts(ctx context.Context) ([]models.AlertRecord, error) {
	return c.list(ctx, "list_alerts", PathAlerts)
}

// ListTodayActivities fetches the records saved today.
func (c *Client) ListTodayActivities(ctx context.Context) ([]models.ActivityRecord, error) {
	return c.list(ctx, "list_today_activities", PathTodayActivities)
}

// GetRecord fetches the stored content of one record.
func (c *Client) GetRecord(ctx context.Context, id int64) (RecordDetail, error) {
	const op = "get_record"
	path := PathRecordDetail + strconv.FormatInt(id, 10)

	body, status, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, c.readFailure(op, status, body)
	}

	var detail RecordDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, &TransportError{Op: op, StatusCode: status, Err: fmt.Errorf("decode record: %w", err)}
	}
	if detail == nil {
		detail = RecordDetail{}
	}
	return detail, nil
}

// SubmitForm posts a new record.
func (c *Client) SubmitForm(ctx context.Context, form map[string]interface{}) (ActionResult, error) {
	return c.action(ctx, "submit_form", PathSubmitForm, form)
}

// Approve marks a record approved.
func (c *Client) Approve(ctx context.Context, id int64, remarks string) (ActionResult, error) {
	return c.action(ctx, "approve", PathApprove, map[string]interface{}{"id": id, "remarks": remarks})
}

// Disapprove marks a record disapproved. The caller is responsible for requiring remarks.
func (c *Client) Disapprove(ctx context.Context, id int64, remarks string) (ActionResult, error) {
	return c.action(ctx, "disapprove", PathDisapprove, map[string]interface{}{"id": id, "remarks": remarks})
}

// SetAlert sets or clears the alert flag of a record.
func (c *Client) SetAlert(ctx context.Context, id int64, on bool) (ActionResult, error) {
	set := 0
	if on {
		set = 1
	}
	return c.action(ctx, "set_alert", PathSetAlert, map[string]interface{}{"id": id, "set": set})
}

// Reply sends a chat message and returns the assistant's free-text reply.
func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	env, err := c.post(ctx, opChatReply, PathChatReply, map[string]string{"message": message}, "Undefined response from server.")
	if err != nil {
		return "", err
	}
	return env.Reply, nil
}

func (c *Client) list(ctx context.Context, op, path string) ([]models.ActivityRecord, error) {
	body, status, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, c.readFailure(op, status, body)
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{Op: op, StatusCode: status, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if env.Data == nil {
		return []models.ActivityRecord{}, nil
	}
	return env.Data, nil
}

func (c *Client) action(ctx context.Context, op, path string, payload interface{}) (ActionResult, error) {
	env, err := c.post(ctx, op, path, payload, "")
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{Status: env.Status, Message: env.Message, EntryID: env.EntryID}, nil
}

func (c *Client) post(ctx context.Context, op, path string, payload interface{}, fallback string) (actionEnvelope, error) {
	body, status, err := c.do(ctx, op, http.MethodPost, path, payload)
	if err != nil {
		return actionEnvelope{}, err
	}

	var env actionEnvelope
	decodeErr := json.Unmarshal(body, &env)
	recognised := decodeErr == nil && (env.Status != "" || env.text(op) != "")

	if status == http.StatusUnauthorized {
		return actionEnvelope{}, sessionExpired(op, status, env.text(op))
	}

	if !recognised {
		if !isSuccess(status) {
			return actionEnvelope{}, &TransportError{Op: op, StatusCode: status}
		}
		if decodeErr == nil {
			decodeErr = fmt.Errorf("empty response body")
		}
		return actionEnvelope{}, &TransportError{Op: op, StatusCode: status, Err: decodeErr}
	}

	if isSuccess(status) && env.Status == "ok" {
		return env, nil
	}

	message := env.text(op)
	if mentionsSessionExpiry(message) {
		return actionEnvelope{}, sessionExpired(op, status, message)
	}
	if message == "" {
		message = fallback
	}
	if message == "" {
		message = fmt.Sprintf("Server processing failed. Status Code: %d", status)
	}

	return actionEnvelope{}, &ActionRejectedError{Op: op, StatusCode: status, Status: env.Status, Message: message}
}

func (c *Client) readFailure(op string, status int, body []byte) error {
	var env actionEnvelope
	_ = json.Unmarshal(body, &env)
	message := env.text(op)

	if status == http.StatusUnauthorized || mentionsSessionExpiry(message) {
		return sessionExpired(op, status, message)
	}
	return &TransportError{Op: op, StatusCode: status, Message: message}
}

func (c *Client) do(ctx context.Context, op, method, path string, payload interface{}) ([]byte, int, error) {
	ctx, span := c.tracer.Start(ctx, "hoiapi."+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String("http.method", method), attribute.String("hoiapi.path", path))
	defer span.End()

	start := time.Now()
	defer func() {
		upstreamDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			upstreamRequests.WithLabelValues(op, "encode_error").Inc()
			return nil, 0, &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		upstreamRequests.WithLabelValues(op, "request_error").Inc()
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	applyCredentials(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues(op, "network_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream_unreachable")
		c.logger.Warn().Err(err).Str("op", op).Msg("upstream request failed")
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		upstreamRequests.WithLabelValues(op, "read_error").Inc()
		span.RecordError(err)
		return nil, resp.StatusCode, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	outcome := "success"
	if !isSuccess(resp.StatusCode) {
		outcome = strconv.Itoa(resp.StatusCode)
		span.SetStatus(codes.Error, "upstream_status_"+outcome)
	}
	upstreamRequests.WithLabelValues(op, outcome).Inc()

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("upstream call completed")

	return body, resp.StatusCode, nil
}
