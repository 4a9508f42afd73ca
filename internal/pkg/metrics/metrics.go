package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы операций
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeClient   = "client_error"
	OutcomeUpstream = "upstream_unavailable"
	OutcomeError    = "error"
)

// Metrics - счётчики поискового сервиса в собственном реестре.
// Нулевой *Metrics допустим: все методы ничего не делают.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	availabilitySet prometheus.Histogram
	invalidations   prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "infrasearch_requests_total",
			Help: "Search operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "infrasearch_request_duration_seconds",
			Help:    "Search operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		availabilitySet: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "infrasearch_availability_set_size",
			Help:    "Number of infrastructures available in the requested date range.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "infrasearch_catalog_invalidations_total",
			Help: "Facet catalog cache invalidations triggered by change events.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.availabilitySet,
		m.invalidations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe фиксирует исход и длительность операции
func (m *Metrics) Observe(operation, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveAvailabilitySet(size int) {
	if m == nil {
		return
	}
	m.availabilitySet.Observe(float64(size))
}

func (m *Metrics) CatalogInvalidated() {
	if m == nil {
		return
	}
	m.invalidations.Inc()
}

// Handler отдаёт метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
