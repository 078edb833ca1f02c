package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	requestsTotal         *prometheus.CounterVec
	requestLatencySeconds *prometheus.HistogramVec
	errorsTotal           *prometheus.CounterVec
	metricsRefreshTotal   *prometheus.CounterVec
	metricsRefreshSeconds prometheus.Histogram
	reviewActionsTotal    *prometheus.CounterVec
	chatExchangesTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the dashboard.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoidash_requests_total",
			Help: "Total number of dashboard requests served.",
		}, []string{"method", "route", "status"})

		requestLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hoidash_request_latency_seconds",
			Help:    "Latency distribution for dashboard requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoidash_errors_total",
			Help: "Total number of error responses returned by the dashboard.",
		}, []string{"method", "route", "status"})

		metricsRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoidash_metrics_refresh_total",
			Help: "Metric card refreshes by outcome.",
		}, []string{"outcome"})

		metricsRefreshSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hoidash_metrics_refresh_seconds",
			Help:    "Time taken to gather the three dashboard counts.",
			Buckets: prometheus.DefBuckets,
		})

		reviewActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoidash_review_actions_total",
			Help: "Review actions by kind and outcome.",
		}, []string{"action", "outcome"})

		chatExchangesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hoidash_chat_exchanges_total",
			Help: "Assistant exchanges by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			requestsTotal,
			requestLatencySeconds,
			errorsTotal,
			metricsRefreshTotal,
			metricsRefreshSeconds,
			reviewActionsTotal,
			chatExchangesTotal,
		)
	})
}

// Requests exposes the counter for dashboard requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for dashboard requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return requestLatencySeconds
}

// Errors exposes the counter for error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// MetricsRefreshes counts aggregation attempts labelled "ok" or "unavailable".
func MetricsRefreshes() *prometheus.CounterVec {
	RegisterMetrics()
	return metricsRefreshTotal
}

// MetricsRefreshDuration observes how long one aggregation took.
func MetricsRefreshDuration() prometheus.Histogram {
	RegisterMetrics()
	return metricsRefreshSeconds
}

// ReviewActions counts approve, disapprove, alert and submit actions.
func ReviewActions() *prometheus.CounterVec {
	RegisterMetrics()
	return reviewActionsTotal
}

// ChatExchanges counts assistant round trips.
func ChatExchanges() *prometheus.CounterVec {
	RegisterMetrics()
	return chatExchangesTotal
}
