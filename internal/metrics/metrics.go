package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	// UpstreamLatency measures calls to the telemetry platform and the LLM API.
	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brain_upstream_request_seconds",
			Help:    "Latency of outbound calls in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"target", "operation", "outcome"},
	)

	// HTTPRequests counts served API requests.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brain_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPLatency measures API request latency.
	HTTPLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brain_http_request_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// SimulatorPublishes counts MQTT publishes made by the simulators.
	SimulatorPublishes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brain_simulator_publishes_total",
			Help: "MQTT telemetry publishes by simulator mode",
		},
		[]string{"mode", "outcome"},
	)
)

// ObserveUpstream records one outbound call started at start.
func ObserveUpstream(target, operation string, start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	UpstreamLatency.WithLabelValues(target, operation, outcome).Observe(time.Since(start).Seconds())
}
