package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	UpstreamErrors  *prometheus.CounterVec
	Unavailable     *prometheus.CounterVec
	CacheHits       *prometheus.CounterVec
	CacheMisses     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grostats_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "grostats_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route"},
		),
		UpstreamErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grostats_subgraph_failures_total",
				Help: "Failed subgraph queries by network",
			},
			[]string{"network"},
		),
		Unavailable: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grostats_unavailable_sections_total",
				Help: "Document sections served in degraded form",
			},
			[]string{"document", "section"},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grostats_cache_hits_total",
				Help: "Document cache hits by document",
			},
			[]string{"document"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grostats_cache_misses_total",
				Help: "Document cache misses by document",
			},
			[]string{"document"},
		),
	}
	m.registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.UpstreamErrors,
		m.Unavailable,
		m.CacheHits,
		m.CacheMisses,
		collectors.NewGoCollector(),
	)
	return m
}

// UpstreamFailed implements service.Observer.
func (m *Metrics) UpstreamFailed(network string) {
	m.UpstreamErrors.WithLabelValues(network).Inc()
}

// SectionsUnavailable implements service.Observer.
func (m *Metrics) SectionsUnavailable(document string, sections []string) {
	for _, section := range sections {
		m.Unavailable.WithLabelValues(document, section).Inc()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
