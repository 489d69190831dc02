// Package metrics exposes editor activity as Prometheus metrics.
//
// A [Registry] implements both observability.EditorHooks and
// observability.SessionHooks, so registering it at startup is enough to
// collect everything:
//
//	reg := metrics.NewRegistry()
//	observability.SetEditorHooks(reg)
//	observability.SetSessionHooks(reg)
//	r.Handle("/metrics", reg.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application.
type Registry struct {
	// Editor Metrics
	EventsTotal      *prometheus.CounterVec
	TransitionsTotal *prometheus.CounterVec
	Vertices         prometheus.Gauge
	Edges            prometheus.Gauge

	// Session Metrics
	SessionsActive prometheus.Gauge
	SessionsClosed *prometheus.CounterVec

	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics initialized, plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{registry: reg}
	r.initEditorMetrics()
	r.initSessionMetrics()
	r.initHTTPMetrics()
	return r
}

func (r *Registry) initEditorMetrics() {
	r.EventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockboard_events_total",
			Help: "Total number of input events processed",
		},
		[]string{"kind", "redraw"},
	)

	r.TransitionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockboard_transitions_total",
			Help: "Total number of board state transitions",
		},
		[]string{"from", "to"},
	)

	r.Vertices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "blockboard_vertices",
			Help: "Number of blocks on the most recently changed board",
		},
	)

	r.Edges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "blockboard_edges",
			Help: "Number of arrows on the most recently changed board",
		},
	)
}

func (r *Registry) initSessionMetrics() {
	r.SessionsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "blockboard_sessions",
			Help: "Number of open editing sessions",
		},
	)

	r.SessionsClosed = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockboard_sessions_closed_total",
			Help: "Total number of closed editing sessions",
		},
		[]string{"reason"}, // deleted, expired
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blockboard_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

// OnEvent implements observability.EditorHooks.
func (r *Registry) OnEvent(kind string, redraw bool) {
	r.EventsTotal.WithLabelValues(kind, strconv.FormatBool(redraw)).Inc()
}

// OnTransition implements observability.EditorHooks.
func (r *Registry) OnTransition(from, to string) {
	r.TransitionsTotal.WithLabelValues(from, to).Inc()
}

// OnGraphChange implements observability.EditorHooks.
func (r *Registry) OnGraphChange(vertices, edges int) {
	r.Vertices.Set(float64(vertices))
	r.Edges.Set(float64(edges))
}

// OnSessionOpen implements observability.SessionHooks.
func (r *Registry) OnSessionOpen(string) {
	r.SessionsActive.Inc()
}

// OnSessionClose implements observability.SessionHooks.
func (r *Registry) OnSessionClose(_ string, reason string) {
	r.SessionsActive.Dec()
	r.SessionsClosed.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
