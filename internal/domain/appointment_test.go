package domain

import (
	"testing"
	"time"
)

func TestNewAppointment(t *testing.T) {
	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 3, 4, 14, 0, 0, 0, time.UTC)

	appt := NewAppointment("p-1", slot, now)

	if appt.ID.String() == "" {
		t.Error("expected appointment ID to be generated")
	}
	if appt.ProspectID != "p-1" {
		t.Errorf("expected ProspectID p-1, got %s", appt.ProspectID)
	}
	if !appt.ScheduledFor.Equal(slot) {
		t.Errorf("expected ScheduledFor %v, got %v", slot, appt.ScheduledFor)
	}
	if appt.Status != AppointmentScheduled {
		t.Errorf("expected status %s, got %s", AppointmentScheduled, appt.Status)
	}
	if appt.Service != DefaultService {
		t.Errorf("expected service %s, got %s", DefaultService, appt.Service)
	}
	if !appt.CreatedAt.Equal(now) || !appt.UpdatedAt.Equal(now) {
		t.Error("expected timestamps set from now")
	}
}

func TestAppointment_Formatting(t *testing.T) {
	appt := &Appointment{ScheduledFor: time.Date(2025, 3, 4, 14, 0, 0, 0, time.UTC)}

	if got := appt.FormattedDate(); got != "Tuesday, March 4" {
		t.Errorf("FormattedDate() = %q", got)
	}
	if got := appt.FormattedTime(); got != "2:00 PM" {
		t.Errorf("FormattedTime() = %q", got)
	}
}

func TestAppointment_MissedBy(t *testing.T) {
	now := time.Date(2025, 3, 6, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		scheduledFor time.Time
		status       AppointmentStatus
		expected     bool
	}{
		{"scheduled over a day ago", now.AddDate(0, 0, -2), AppointmentScheduled, true},
		{"yesterday, slot hour later than sweep hour", time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC), AppointmentScheduled, true},
		{"scheduled earlier today", now.Add(-2 * time.Hour), AppointmentScheduled, false},
		{"scheduled in the future", now.AddDate(0, 0, 1), AppointmentScheduled, false},
		{"completed over a day ago", now.AddDate(0, 0, -2), AppointmentCompleted, false},
		{"cancelled over a day ago", now.AddDate(0, 0, -2), AppointmentCancelled, false},
		{"already marked no-show", now.AddDate(0, 0, -2), AppointmentNoShow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := &Appointment{ScheduledFor: tt.scheduledFor, Status: tt.status}
			if got := appt.MissedBy(now); got != tt.expected {
				t.Errorf("MissedBy() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestAppointment_View(t *testing.T) {
	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	appt := NewAppointment("p-1", time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC), now)

	v := appt.View()

	if v.ID != appt.ID.String() {
		t.Errorf("expected ID %s, got %s", appt.ID, v.ID)
	}
	if v.Date != "Tuesday, March 4" {
		t.Errorf("expected date Tuesday, March 4, got %s", v.Date)
	}
	if v.Time != "3:00 PM" {
		t.Errorf("expected time 3:00 PM, got %s", v.Time)
	}
	if v.Status != "scheduled" {
		t.Errorf("expected status scheduled, got %s", v.Status)
	}
	if v.Service != DefaultService {
		t.Errorf("expected service %s, got %s", DefaultService, v.Service)
	}
}
