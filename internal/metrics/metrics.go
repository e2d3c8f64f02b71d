// Package metrics provides Prometheus metrics collection for the engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Campaign engine metrics
	EventsDispatchedTotal *prometheus.CounterVec
	ResponsesMatchedTotal *prometheus.CounterVec
	TransitionsTotal      *prometheus.CounterVec
	AppointmentsBooked    prometheus.Counter
	ReminderIntentsTotal  prometheus.Counter
	SweepProcessedTotal   *prometheus.CounterVec

	// Inbound webhook metrics
	WebhooksReceivedTotal *prometheus.CounterVec

	registry prometheus.Gatherer
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	m := newWithRegisterer(prometheus.DefaultRegisterer)
	m.registry = prometheus.DefaultGatherer
	return m
}

// NewWithRegistry creates metrics on a custom registry (for testing).
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	m := newWithRegisterer(reg)
	m.registry = reg
	return m
}

func newWithRegisterer(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sdr_http_requests_total",
			Help: "Total HTTP requests by method, path, and status.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sdr_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		EventsDispatchedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sdr_events_dispatched_total",
			Help: "Automation events dispatched by channel and outcome.",
		}, []string{"channel", "outcome"}),
		ResponsesMatchedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sdr_responses_matched_total",
			Help: "Inbound messages processed by resulting action.",
		}, []string{"action"}),
		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sdr_campaign_transitions_total",
			Help: "Campaign transitions by target campaign.",
		}, []string{"target"}),
		AppointmentsBooked: factory.NewCounter(prometheus.CounterOpts{
			Name: "sdr_appointments_booked_total",
			Help: "Appointments booked by the engine.",
		}),
		ReminderIntentsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "sdr_reminder_intents_total",
			Help: "Appointment reminder intents recorded.",
		}),
		SweepProcessedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sdr_sweep_processed_total",
			Help: "Records processed by maintenance sweeps, by sweep kind.",
		}, []string{"sweep"}),
		WebhooksReceivedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sdr_webhooks_received_total",
			Help: "Inbound webhooks by source and result.",
		}, []string{"source", "result"}),
	}
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordEventDispatched records one automation event dispatch attempt.
func (m *Metrics) RecordEventDispatched(channel string, ok bool) {
	outcome := outcomeSuccess
	if !ok {
		outcome = outcomeFailure
	}
	m.EventsDispatchedTotal.WithLabelValues(channel, outcome).Inc()
}

// RecordResponseMatched records the action taken for an inbound message.
func (m *Metrics) RecordResponseMatched(action string) {
	m.ResponsesMatchedTotal.WithLabelValues(action).Inc()
}

// RecordTransition records a campaign transition.
func (m *Metrics) RecordTransition(target string) {
	m.TransitionsTotal.WithLabelValues(target).Inc()
}

// RecordAppointmentBooked records one booked appointment.
func (m *Metrics) RecordAppointmentBooked() {
	m.AppointmentsBooked.Inc()
}

// RecordReminderIntent records one reminder intent.
func (m *Metrics) RecordReminderIntent() {
	m.ReminderIntentsTotal.Inc()
}

// RecordSweep records the size of one maintenance sweep.
func (m *Metrics) RecordSweep(sweep string, processed int) {
	m.SweepProcessedTotal.WithLabelValues(sweep).Add(float64(processed))
}

// RecordWebhook records one inbound webhook.
func (m *Metrics) RecordWebhook(source, result string) {
	m.WebhooksReceivedTotal.WithLabelValues(source, result).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m.registry != nil {
		return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}
