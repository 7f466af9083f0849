package metrics

import (
	"strconv"
	"time"

	"vendorlink/gateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns all Prometheus metrics for the gateway. It manages metric
// registration on a private registry and provides typed recording methods
// so handlers never touch label sets directly.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	upstreamTotal    *prometheus.CounterVec
	upstreamFailures *prometheus.CounterVec

	sessionsResolved *prometheus.CounterVec
	sessionsPruned   prometheus.Counter
}

// NewCollector creates a metrics collector with the specified configuration
// and registers all metrics on a fresh private registry.
func NewCollector(cfg *config.MetricsConfig) *Collector {
	registry := prometheus.NewRegistry()

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = config.DefaultMetricsNamespace
	}
	subsystem := cfg.Subsystem
	if subsystem == "" {
		subsystem = config.DefaultMetricsSubsystem
	}
	buckets := cfg.RequestDurationBuckets
	if len(buckets) == 0 {
		buckets = config.DefaultRequestDurationBuckets
	}

	c := &Collector{
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of gateway requests by route, method, and status",
			},
			[]string{"route", "method", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of gateway requests in seconds",
				Buckets:   buckets,
			},
			[]string{"route", "method"},
		),

		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream calls by target and status",
			},
			[]string{"target", "status"},
		),

		upstreamFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "upstream_failures_total",
				Help:      "Total number of upstream calls that failed before producing a response",
			},
			[]string{"target"},
		),

		sessionsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sessions_resolved_total",
				Help:      "Session resolution attempts by outcome (hit, miss, expired, error)",
			},
			[]string{"outcome"},
		),

		sessionsPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sessions_pruned_total",
				Help:      "Total number of expired sessions removed by the pruner",
			},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.upstreamTotal,
		c.upstreamFailures,
		c.sessionsResolved,
		c.sessionsPruned,
	)

	return c
}

// RecordRequest records a completed gateway request.
func (c *Collector) RecordRequest(route, method string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordUpstream records an upstream call that produced an HTTP response.
func (c *Collector) RecordUpstream(target string, status int) {
	c.upstreamTotal.WithLabelValues(target, strconv.Itoa(status)).Inc()
}

// RecordUpstreamFailure records an upstream call that failed at the
// transport level.
func (c *Collector) RecordUpstreamFailure(target string) {
	c.upstreamFailures.WithLabelValues(target).Inc()
}

// RecordSessionResolution records a session resolution attempt.
// Outcome is one of "hit", "miss", "expired", "error".
func (c *Collector) RecordSessionResolution(outcome string) {
	c.sessionsResolved.WithLabelValues(outcome).Inc()
}

// RecordSessionsPruned adds to the pruned-session counter.
func (c *Collector) RecordSessionsPruned(count int64) {
	c.sessionsPruned.Add(float64(count))
}

// Registry returns the private registry holding all gateway metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
