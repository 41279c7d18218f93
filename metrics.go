package transly

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors updated by the gateway and pipeline.
// Collectors are registered on the registry given to NewMetrics, so several
// pipelines (or tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	gatewayRequests *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	records         prometheus.Counter
	runDuration     prometheus.Histogram
}

// NewMetrics creates and registers the collectors. A nil registry gets a fresh one.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		gatewayRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transly_gateway_requests_total",
				Help: "Total number of provider round trips made by the gateway",
			},
			[]string{"provider", "status"},
		),
		gatewayDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transly_gateway_request_duration_seconds",
				Help:    "Duration of provider round trips in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"provider", "status"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transly_cache_lookups_total",
				Help: "Cache lookups by result",
			},
			[]string{"result"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transly_fallbacks_total",
				Help: "Records that fell back to their source text",
			},
			[]string{"target_lang"},
		),
		records: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transly_records_processed_total",
				Help: "Records processed by the pipeline",
			},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transly_run_duration_seconds",
				Help:    "Wall time of a pipeline run in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
			},
		),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every registered metric to path in the text exposition
// format, for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// The record methods are nil-safe so callers never have to check whether
// metrics were configured.

func (m *Metrics) recordGatewayRequest(provider, status string, seconds float64) {
	if m == nil {
		return
	}
	m.gatewayRequests.WithLabelValues(provider, status).Inc()
	m.gatewayDuration.WithLabelValues(provider, status).Observe(seconds)
}

func (m *Metrics) recordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) recordFallback(targetLang string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(targetLang).Inc()
}

func (m *Metrics) recordRun(records int, seconds float64) {
	if m == nil {
		return
	}
	m.records.Add(float64(records))
	m.runDuration.Observe(seconds)
}
