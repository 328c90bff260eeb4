package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "training_calendar"

// Metrics owns the Prometheus registry and every collector of the service.
// It also records registration and reminder sweep outcomes.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	durations     *prometheus.HistogramVec
	registrations *prometheus.CounterVec
	pending       prometheus.Gauge
	sweeps        *prometheus.CounterVec
	reminders     *prometheus.CounterVec
}

// NewMetrics registers all collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "registration_operations_total",
			Help:      "Registration operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "pending_registrations",
			Help:      "Registrations waiting for email verification.",
		}),
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reminder_sweeps_total",
			Help:      "Reminder sweeps by outcome.",
		}, []string{"outcome"}),
		reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reminder_trainings_total",
			Help:      "Trainings handled by reminder sweeps, by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.requests, m.durations, m.registrations, m.pending, m.sweeps, m.reminders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegistrationOutcome counts one registration operation
func (m *Metrics) RegistrationOutcome(op, outcome string) {
	m.registrations.WithLabelValues(op, outcome).Inc()
}

// PendingRegistrations sets the pending registration gauge
func (m *Metrics) PendingRegistrations(n int) {
	m.pending.Set(float64(n))
}

// SweepCompleted counts a finished reminder sweep. err is the fatal query
// error, if any.
func (m *Metrics) SweepCompleted(sent, skipped, failed int, err error) {
	if err != nil {
		m.sweeps.WithLabelValues("error").Inc()
		return
	}
	m.sweeps.WithLabelValues("ok").Inc()
	m.reminders.WithLabelValues("sent").Add(float64(sent))
	m.reminders.WithLabelValues("skipped").Add(float64(skipped))
	m.reminders.WithLabelValues("failed").Add(float64(failed))
}
