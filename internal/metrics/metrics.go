package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	synthesisRequests *prometheus.CounterVec
	textLength        prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		synthesisRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthesis_requests_total",
				Help: "Synthesis attempts by outcome.",
			},
			[]string{"outcome"}, // success, invalid_input, internal_error
		),

		textLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "synthesis_text_length_chars",
				Help:    "Length of submitted text in characters.",
				Buckets: []float64{10, 25, 50, 100, 200, 300, 400, 500, 1000},
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.synthesisRequests,
		m.textLength,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveSynthesis implements synthesis.Observer.
func (m *Metrics) ObserveSynthesis(outcome string, textChars int) {
	m.synthesisRequests.WithLabelValues(outcome).Inc()
	if textChars > 0 {
		m.textLength.Observe(float64(textChars))
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
