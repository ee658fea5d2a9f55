// Package metrics exposes Prometheus counters for the auth core and HTTP layer.
package metrics

import (
	"net/http"

	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smarthr"

// Registry owns every collector. One per process; tests build their own.
type Registry struct {
	registry *prometheus.Registry

	loginAttempts   *prometheus.CounterVec
	lockouts        prometheus.Counter
	tokenRefresh    *prometheus.CounterVec
	ephemeralTokens *prometheus.CounterVec
	mailDispatch    *prometheus.CounterVec

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New registers all collectors plus the Go and process collectors.
func New() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		lockouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_lockouts_total",
			Help:      "Transitions into the locked state.",
		}),
		tokenRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refresh_total",
			Help:      "Refresh token operations by outcome.",
		}, []string{"outcome"}),
		ephemeralTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ephemeral_tokens_total",
			Help:      "Password reset and email verification token events.",
		}, []string{"kind", "event"}),
		mailDispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mail_dispatch_total",
			Help:      "Outbound mail by outcome.",
		}, []string{"outcome"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.loginAttempts,
		r.lockouts,
		r.tokenRefresh,
		r.ephemeralTokens,
		r.mailDispatch,
		r.httpInFlight,
		r.httpRequestsTotal,
		r.httpRequestDuration,
	)

	return r
}

// NewAuthMetrics exposes the registry through the domain interface.
func NewAuthMetrics(r *Registry) service.AuthMetrics {
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer is used by tests to read values back.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Registry) LoginAttempt(outcome string) {
	r.loginAttempts.WithLabelValues(outcome).Inc()
}

func (r *Registry) AccountLocked() {
	r.lockouts.Inc()
}

func (r *Registry) TokenRefresh(outcome string) {
	r.tokenRefresh.WithLabelValues(outcome).Inc()
}

func (r *Registry) EphemeralToken(kind entity.EphemeralKind, event string) {
	r.ephemeralTokens.WithLabelValues(kind.String(), event).Inc()
}

func (r *Registry) MailDispatch(outcome string) {
	r.mailDispatch.WithLabelValues(outcome).Inc()
}

// ObserveHTTP is called once per request by the HTTP middleware.
func (r *Registry) ObserveHTTP(method, route, status string, seconds float64) {
	r.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.httpRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func (r *Registry) InFlight() prometheus.Gauge {
	return r.httpInFlight
}
