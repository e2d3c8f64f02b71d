package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentNoShow    AppointmentStatus = "no-show"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// DefaultService is the consultation every SDR-booked appointment is for.
const DefaultService = "Enhanced Dental PPO Coverage Consultation"

// Appointment is a booked consultation slot. ScheduledFor is the source of
// truth; the human-readable date and time strings shown to prospects are
// derived from it on demand, never stored or re-parsed.
type Appointment struct {
	ID           uuid.UUID         `json:"id"`
	ProspectID   string            `json:"prospect_id"`
	ScheduledFor time.Time         `json:"scheduled_for"`
	Status       AppointmentStatus `json:"status"`
	Service      string            `json:"service"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewAppointment creates a scheduled appointment for the default service.
func NewAppointment(prospectID string, scheduledFor, now time.Time) *Appointment {
	return &Appointment{
		ID:           uuid.New(),
		ProspectID:   prospectID,
		ScheduledFor: scheduledFor,
		Status:       AppointmentScheduled,
		Service:      DefaultService,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FormattedDate renders the appointment date the way campaign messages
// show it, e.g. "Tuesday, March 4".
func (a *Appointment) FormattedDate() string {
	return a.ScheduledFor.Format("Monday, January 2")
}

// FormattedTime renders the slot time, e.g. "3:00 PM".
func (a *Appointment) FormattedTime() string {
	return a.ScheduledFor.Format("3:04 PM")
}

// MissedBy reports whether a still-scheduled appointment's date is over a
// day in the past as of now. The comparison is at day granularity, so an
// appointment dated yesterday counts even when the sweep runs before its
// slot hour.
func (a *Appointment) MissedBy(now time.Time) bool {
	if a.Status != AppointmentScheduled {
		return false
	}
	y, m, d := a.ScheduledFor.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, a.ScheduledFor.Location())
	return date.Before(now.AddDate(0, 0, -1))
}

// AppointmentView is the denormalized appointment shape embedded in
// prospect API responses, mirroring what the CRM dashboards render.
type AppointmentView struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  string `json:"status"`
	Service string `json:"service"`
}

// View returns the denormalized representation of the appointment.
func (a *Appointment) View() *AppointmentView {
	return &AppointmentView{
		ID:      a.ID.String(),
		Date:    a.FormattedDate(),
		Time:    a.FormattedTime(),
		Status:  string(a.Status),
		Service: a.Service,
	}
}
