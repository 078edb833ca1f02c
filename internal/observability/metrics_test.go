package observability

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesDashboardCollectors(t *testing.T) {
	MetricsRefreshes().WithLabelValues("ok").Inc()
	ReviewActions().WithLabelValues("approve", "ok").Inc()

	app := fiber.New()
	app.Get("/metrics", MetricsHandler(nil))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "hoidash_metrics_refresh_total")
	require.Contains(t, string(body), `hoidash_review_actions_total{action="approve",outcome="ok"}`)
}

func TestSetupTracingDisabledIsNoop(t *testing.T) {
	shutdown, err := SetupTracing(TracingConfig{Enabled: false})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupTracingWritesToWriter(t *testing.T) {
	shutdown, err := SetupTracing(TracingConfig{Enabled: true, ServiceName: "hoi-dashboard-test", Writer: io.Discard})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
