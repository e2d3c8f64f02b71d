// Package audit provides a compliance trail for outreach activity. SMS and
// voice outreach to consumers is regulated, so enrollments, opt-outs, and
// rejected webhooks are logged in a structured, queryable form separate from
// operational logging.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventType identifies the kind of compliance event.
type EventType string

const (
	// Prospect lifecycle events.
	EventProspectEnrolled  EventType = "prospect.enrolled"
	EventProspectOptedOut  EventType = "prospect.opted_out"
	EventAppointmentBooked EventType = "appointment.booked"

	// Inbound webhook events.
	EventWebhookRejected EventType = "webhook.rejected"
)

// Severity is the severity level of an audit event.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Event is one audit log entry.
type Event struct {
	ID         string                 `json:"id"`
	Timestamp  time.Time              `json:"timestamp"`
	Type       EventType              `json:"type"`
	Severity   Severity               `json:"severity"`
	ProspectID string                 `json:"prospect_id,omitempty"`
	Source     string                 `json:"source,omitempty"` // "api", "twilio", "retell"
	SourceIP   string                 `json:"source_ip,omitempty"`
	Outcome    string                 `json:"outcome"`
	Reason     string                 `json:"reason,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Logger writes audit events through a named zap logger.
type Logger struct {
	logger *zap.Logger
}

// NewLogger creates an audit logger.
func NewLogger(baseLogger *zap.Logger) *Logger {
	return &Logger{
		logger: baseLogger.Named("audit"),
	}
}

// Log records an audit event. A missing ID or timestamp is filled in.
func (l *Logger) Log(event *Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	level := zap.InfoLevel
	if event.Severity == SeverityWarning {
		level = zap.WarnLevel
	}

	fields := []zap.Field{
		zap.String("audit_id", event.ID),
		zap.Time("audit_timestamp", event.Timestamp),
		zap.String("event_type", string(event.Type)),
		zap.String("severity", string(event.Severity)),
		zap.String("outcome", event.Outcome),
	}
	if event.ProspectID != "" {
		fields = append(fields, zap.String("prospect_id", event.ProspectID))
	}
	if event.Source != "" {
		fields = append(fields, zap.String("source", event.Source))
	}
	if event.SourceIP != "" {
		fields = append(fields, zap.String("source_ip", event.SourceIP))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}
	if len(event.Metadata) > 0 {
		if metadataJSON, err := json.Marshal(event.Metadata); err == nil {
			fields = append(fields, zap.ByteString("metadata", metadataJSON))
		}
	}

	if ce := l.logger.Check(level, "compliance audit event"); ce != nil {
		ce.Write(fields...)
	}
}

// ProspectEnrolled logs a new prospect entering a campaign.
func (l *Logger) ProspectEnrolled(prospectID, campaign, leadSource string) {
	l.Log(&Event{
		Type:       EventProspectEnrolled,
		Severity:   SeverityInfo,
		ProspectID: prospectID,
		Source:     "api",
		Outcome:    "success",
		Metadata: map[string]interface{}{
			"campaign":    campaign,
			"lead_source": leadSource,
		},
	})
}

// ProspectOptedOut logs an opt-out request. These must be honored, so the
// trail records exactly when each one arrived and through which channel.
func (l *Logger) ProspectOptedOut(prospectID, source string) {
	l.Log(&Event{
		Type:       EventProspectOptedOut,
		Severity:   SeverityInfo,
		ProspectID: prospectID,
		Source:     source,
		Outcome:    "success",
	})
}

// AppointmentBooked logs a booking made by the engine.
func (l *Logger) AppointmentBooked(prospectID, appointmentID, source string) {
	l.Log(&Event{
		Type:       EventAppointmentBooked,
		Severity:   SeverityInfo,
		ProspectID: prospectID,
		Source:     source,
		Outcome:    "success",
		Metadata: map[string]interface{}{
			"appointment_id": appointmentID,
		},
	})
}

// WebhookRejected logs an inbound webhook that failed validation.
func (l *Logger) WebhookRejected(source, sourceIP, reason string) {
	l.Log(&Event{
		Type:     EventWebhookRejected,
		Severity: SeverityWarning,
		Source:   source,
		SourceIP: sourceIP,
		Outcome:  "rejected",
		Reason:   reason,
	})
}
