package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/dto"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/observability"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/repository"
)

// DefaultMetricsSentinel is shown in every metric slot when counts are unavailable.
const DefaultMetricsSentinel = "N/A"

// ErrMetricsUnavailable indicates at least one of the three count sources failed.
var ErrMetricsUnavailable = errors.New("dashboard metrics unavailable")

// MetricsService computes the dashboard's pending, approved-today and alert counts.
type MetricsService interface {
	Snapshot(ctx context.Context) (dto.MetricsSnapshot, error)
	Display(ctx context.Context) dto.MetricsDisplay
}

type metricsService struct {
	records  repository.RecordReader
	sentinel string
	logger   zerolog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewMetricsService builds the metrics aggregator.
func NewMetricsService(records repository.RecordReader, sentinel string, logger zerolog.Logger) MetricsService {
	if sentinel == "" {
		sentinel = DefaultMetricsSentinel
	}
	return &metricsService{
		records:  records,
		sentinel: sentinel,
		logger:   logger.With().Str("component", "metrics_service").Logger(),
		tracer:   otel.Tracer("github.com/santhoshkumar20044/HOI-Activity-New/internal/service/metrics"),
		now:      time.Now,
	}
}

// Snapshot issues the three reads concurrently and waits for all of them. A
// failed read does not cancel the others; any failure yields
// ErrMetricsUnavailable and no partial counts.
func (s *metricsService) Snapshot(ctx context.Context) (dto.MetricsSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.snapshot")
	defer span.End()

	started := s.now()
	defer func() {
		observability.MetricsRefreshDuration().Observe(s.now().Sub(started).Seconds())
	}()

	var (
		pending  []models.ApprovalRecord
		alerts   []models.AlertRecord
		activity []models.ActivityRecord
		group    errgroup.Group
	)

	group.Go(func() error {
		records, err := s.records.ListPendingApprovals(ctx)
		if err != nil {
			return fmt.Errorf("pending approvals: %w", err)
		}
		pending = records
		return nil
	})
	group.Go(func() error {
		records, err := s.records.ListAlerts(ctx)
		if err != nil {
			return fmt.Errorf("alerts: %w", err)
		}
		alerts = records
		return nil
	})
	group.Go(func() error {
		records, err := s.records.ListTodayActivities(ctx)
		if err != nil {
			return fmt.Errorf("today activities: %w", err)
		}
		activity = records
		return nil
	})

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "metrics unavailable")
		observability.MetricsRefreshes().WithLabelValues("unavailable").Inc()
		return dto.MetricsSnapshot{}, fmt.Errorf("%w: %w", ErrMetricsUnavailable, err)
	}

	snapshot := dto.MetricsSnapshot{
		Pending:       len(pending),
		ApprovedToday: countApproved(activity),
		Alerts:        len(alerts),
	}

	span.SetAttributes(
		attribute.Int("metrics.pending", snapshot.Pending),
		attribute.Int("metrics.approved_today", snapshot.ApprovedToday),
		attribute.Int("metrics.alerts", snapshot.Alerts),
	)
	observability.MetricsRefreshes().WithLabelValues("ok").Inc()

	return snapshot, nil
}

// Display never fails. Unavailable counts fill every slot with the sentinel.
func (s *metricsService) Display(ctx context.Context) dto.MetricsDisplay {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("metric cards unavailable")
		return UnavailableDisplay(s.sentinel)
	}
	return DisplayOf(snapshot)
}

// DisplayOf converts counts into card values.
func DisplayOf(snapshot dto.MetricsSnapshot) dto.MetricsDisplay {
	return dto.MetricsDisplay{
		Pending:       strconv.Itoa(snapshot.Pending),
		ApprovedToday: strconv.Itoa(snapshot.ApprovedToday),
		Alerts:        strconv.Itoa(snapshot.Alerts),
		Available:     true,
	}
}

// UnavailableDisplay fills every card with sentinel.
func UnavailableDisplay(sentinel string) dto.MetricsDisplay {
	if sentinel == "" {
		sentinel = DefaultMetricsSentinel
	}
	return dto.MetricsDisplay{
		Pending:       sentinel,
		ApprovedToday: sentinel,
		Alerts:        sentinel,
	}
}

func countApproved(records []models.ActivityRecord) int {
	count := 0
	for _, record := range records {
		if record.IsApproved() {
			count++
		}
	}
	return count
}
