// Package metrics exposes Prometheus collectors for the HTTP surface and profile operations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"profilehub/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "profilehub"

// Recorder owns a private registry so tests and multiple instances never collide
// on the global default registerer.
type Recorder struct {
	registry *prometheus.Registry

	profileOperations *prometheus.CounterVec
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	inFlight          prometheus.Gauge
}

var _ service.OperationRecorder = (*Recorder)(nil)

// NewRecorder registers every collector on a fresh registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: registry,
		profileOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_operations_total",
			Help:      "Profile reads, updates and password rotations by outcome",
		}, []string{"operation", "outcome"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests processed",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "Number of HTTP requests currently being served",
		}),
	}

	registry.MustRegister(r.profileOperations, r.requestsTotal, r.requestDuration, r.inFlight)

	return r
}

// ObserveProfileOperation implements service.OperationRecorder.
func (r *Recorder) ObserveProfileOperation(operation, outcome string) {
	r.profileOperations.WithLabelValues(operation, outcome).Inc()
}

// RequestStarted bumps the in-flight gauge and returns the matching completion callback.
func (r *Recorder) RequestStarted() func(method, route string, status int) {
	start := time.Now()
	r.inFlight.Inc()

	return func(method, route string, status int) {
		r.inFlight.Dec()

		code := strconv.Itoa(status)
		r.requestsTotal.WithLabelValues(method, route, code).Inc()
		r.requestDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry to tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
