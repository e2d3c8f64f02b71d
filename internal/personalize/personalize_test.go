package personalize

import (
	"strings"
	"testing"
	"time"

	"github.com/brightsmile/sdrengine/internal/domain"
)

var monday = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	out := Render("Hi {{FirstName}} {{LastName}}, welcome to {{OfficeName}}! Openings: {{wooai}}.", Context{
		Prospect:   domain.Prospect{FirstName: "Sarah", LastName: "Johnson"},
		OfficeName: "Bright Smile Dental",
		Now:        monday,
	})

	want := "Hi Sarah Johnson, welcome to Bright Smile Dental! Openings: Tuesday at 2pm, 3pm, or 4pm."
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestRenderDefaults(t *testing.T) {
	out := Render("Hi {{FirstName}}, this is {{OfficeName}}.", Context{Now: monday})
	if !strings.Contains(out, "Hi there,") {
		t.Errorf("missing first name fallback: %q", out)
	}
	if !strings.Contains(out, DefaultOfficeName) {
		t.Errorf("missing office fallback: %q", out)
	}
}

func TestRenderUnknownPlaceholderPassesThrough(t *testing.T) {
	out := Render("Use code {{PromoCode}} today", Context{Now: monday})
	if out != "Use code {{PromoCode}} today" {
		t.Errorf("Render = %q", out)
	}
}

func TestRenderAppointmentPlaceholders(t *testing.T) {
	appt := domain.NewAppointment("p1", time.Date(2025, 3, 4, 14, 0, 0, 0, time.UTC), monday)

	out := Render("See you {{AppointmentDate}} at {{AppointmentTime}}!", Context{
		Appointment: appt,
		Now:         monday,
	})
	if out != "See you Tuesday, March 4 at 2:00 PM!" {
		t.Errorf("Render = %q", out)
	}

	// Without an appointment the placeholders stay literal.
	out = Render("See you {{AppointmentDate}}!", Context{Now: monday})
	if out != "See you {{AppointmentDate}}!" {
		t.Errorf("Render = %q", out)
	}
}

func TestOfferedTimes(t *testing.T) {
	if got := OfferedTimes(monday); got != "Tuesday at 2pm, 3pm, or 4pm" {
		t.Errorf("OfferedTimes = %q", got)
	}
	// Saturday offers Sunday; the campaigns don't skip weekends.
	saturday := time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)
	if got := OfferedTimes(saturday); got != "Sunday at 2pm, 3pm, or 4pm" {
		t.Errorf("OfferedTimes = %q", got)
	}
}
