// Package personalize renders campaign message templates for a prospect.
//
// Templates use double-brace placeholders ({{FirstName}}, {{OfficeName}},
// {{wooai}}, {{AppointmentDate}}, {{AppointmentTime}}). Substitution is
// plain text replacement rather than text/template: campaign copy is
// authored in the CRM and an unknown placeholder must pass through as
// literal text, not fail to parse.
package personalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/brightsmile/sdrengine/internal/domain"
)

// DefaultOfficeName is used when no office name is configured.
const DefaultOfficeName = "Bright Smile Dental"

// Context carries everything a template can reference.
type Context struct {
	Prospect    domain.Prospect
	Appointment *domain.Appointment // nil when none booked
	OfficeName  string
	Now         time.Time // render time, drives the {{wooai}} weekday
}

// Render substitutes every placeholder occurrence in template.
// Placeholder names are case-sensitive. {{AppointmentDate}} and
// {{AppointmentTime}} are only substituted when an appointment exists;
// campaigns reference them solely in events reachable after booking.
func Render(template string, pctx Context) string {
	first := pctx.Prospect.FirstName
	if first == "" {
		first = "there"
	}
	office := pctx.OfficeName
	if office == "" {
		office = DefaultOfficeName
	}

	r := strings.NewReplacer(
		"{{FirstName}}", first,
		"{{LastName}}", pctx.Prospect.LastName,
		"{{OfficeName}}", office,
		"{{wooai}}", OfferedTimes(pctx.Now),
	)
	out := r.Replace(template)

	if pctx.Appointment != nil {
		out = strings.ReplaceAll(out, "{{AppointmentDate}}", pctx.Appointment.FormattedDate())
		out = strings.ReplaceAll(out, "{{AppointmentTime}}", pctx.Appointment.FormattedTime())
	}
	return out
}

// OfferedTimes builds the three-slot offer string for tomorrow relative to
// now, e.g. "Tuesday at 2pm, 3pm, or 4pm". Computed at render time so the
// weekday is always current.
func OfferedTimes(now time.Time) string {
	weekday := now.AddDate(0, 0, 1).Weekday().String()
	return fmt.Sprintf("%s at 2pm, 3pm, or 4pm", weekday)
}
