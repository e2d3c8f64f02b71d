package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	if m == nil {
		t.Fatal("NewWithRegistry returned nil")
	}
	if m.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if m.EventsDispatchedTotal == nil {
		t.Error("EventsDispatchedTotal not initialized")
	}
	if m.WebhooksReceivedTotal == nil {
		t.Error("WebhooksReceivedTotal not initialized")
	}
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.RecordHTTPRequest("POST", "/api/prospects", 201, 25*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/prospects", 201, 30*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/prospects/p-1", 404, 5*time.Millisecond)

	created := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/prospects", "201"))
	notFound := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/prospects/p-1", "404"))

	if created != 2 {
		t.Errorf("created count = %f, expected 2", created)
	}
	if notFound != 1 {
		t.Errorf("not found count = %f, expected 1", notFound)
	}
}

func TestMetrics_RecordEventDispatched(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.RecordEventDispatched("sms", true)
	m.RecordEventDispatched("sms", true)
	m.RecordEventDispatched("email", false)

	smsOK := testutil.ToFloat64(m.EventsDispatchedTotal.WithLabelValues("sms", "success"))
	emailFailed := testutil.ToFloat64(m.EventsDispatchedTotal.WithLabelValues("email", "failure"))

	if smsOK != 2 {
		t.Errorf("sms success count = %f, expected 2", smsOK)
	}
	if emailFailed != 1 {
		t.Errorf("email failure count = %f, expected 1", emailFailed)
	}
}

func TestMetrics_RecordResponseMatched(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.RecordResponseMatched("book_appointment")
	m.RecordResponseMatched("default_reply")
	m.RecordResponseMatched("default_reply")

	booked := testutil.ToFloat64(m.ResponsesMatchedTotal.WithLabelValues("book_appointment"))
	defaulted := testutil.ToFloat64(m.ResponsesMatchedTotal.WithLabelValues("default_reply"))

	if booked != 1 {
		t.Errorf("booked count = %f, expected 1", booked)
	}
	if defaulted != 2 {
		t.Errorf("default reply count = %f, expected 2", defaulted)
	}
}

func TestMetrics_RecordTransition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.RecordTransition("leadGeneration")
	m.RecordTransition("leadGeneration")
	m.RecordTransition("noShow")

	if got := testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("leadGeneration")); got != 2 {
		t.Errorf("leadGeneration transitions = %f, expected 2", got)
	}
	if got := testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("noShow")); got != 1 {
		t.Errorf("noShow transitions = %f, expected 1", got)
	}
}

func TestMetrics_RecordAppointmentBooked(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.RecordAppointmentBooked()
	m.RecordAppointmentBooked()

	if got := testutil.ToFloat64(m.AppointmentsBooked); got != 2 {
		t.Errorf("appointments booked = %f, expected 2", got)
	}
}

func TestMetrics_RecordSweep(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.RecordSweep("no_show", 3)
	m.RecordSweep("no_show", 2)
	m.RecordSweep("power_hour", 10)

	if got := testutil.ToFloat64(m.SweepProcessedTotal.WithLabelValues("no_show")); got != 5 {
		t.Errorf("no_show sweep total = %f, expected 5", got)
	}
	if got := testutil.ToFloat64(m.SweepProcessedTotal.WithLabelValues("power_hour")); got != 10 {
		t.Errorf("power_hour sweep total = %f, expected 10", got)
	}
}

func TestMetrics_RecordWebhook(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.RecordWebhook("twilio", "processed")
	m.RecordWebhook("retell", "rejected")

	if got := testutil.ToFloat64(m.WebhooksReceivedTotal.WithLabelValues("twilio", "processed")); got != 1 {
		t.Errorf("twilio processed = %f, expected 1", got)
	}
	if got := testutil.ToFloat64(m.WebhooksReceivedTotal.WithLabelValues("retell", "rejected")); got != 1 {
		t.Errorf("retell rejected = %f, expected 1", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	m.RecordAppointmentBooked()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sdr_appointments_booked_total 1") {
		t.Errorf("metrics output missing appointment counter:\n%s", rec.Body.String())
	}
}
