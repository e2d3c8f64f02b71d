// Package campaign holds the eight static campaign definitions that drive
// the SDR engine. Definitions are data: an ordered event sequence, ordered
// response handlers, and an optional follow-up campaign. Event timing
// labels are scheduling hints for the CRM UI and are not interpreted here.
package campaign

import "github.com/brightsmile/sdrengine/internal/domain"

// next is a convenience for taking the address of a campaign type literal.
func next(t domain.CampaignType) *domain.CampaignType {
	return &t
}

// Definitions returns the full campaign catalog keyed by type. A fresh map
// is built per call so callers cannot mutate shared state.
func Definitions() map[domain.CampaignType]*domain.CampaignDefinition {
	defs := []*domain.CampaignDefinition{
		ListValidation(),
		LeadGeneration(),
		NoResponse(),
		ReEngagement(),
		ColdOffer(),
		NoShow(),
		PowerHour(),
		Holding(),
	}
	out := make(map[domain.CampaignType]*domain.CampaignDefinition, len(defs))
	for _, d := range defs {
		out[d.Type] = d
	}
	return out
}

// optOutHandler is the opt-out rule shared by every campaign. It is always
// declared first so a "stop" anywhere in the message wins over any other
// keyword the message may also contain.
func optOutHandler() domain.ResponseHandler {
	return domain.ResponseHandler{
		Keywords: []string{"stop", "unsubscribe", "opt out", "remove me"},
		Action:   domain.ActionMarkInvalid,
		Reply:    "You've been unsubscribed and won't hear from us again. Take care!",
	}
}

// bookingHandler books an appointment from a time-slot reply.
func bookingHandler() domain.ResponseHandler {
	return domain.ResponseHandler{
		Keywords: []string{"2pm", "2 pm", "3pm", "3 pm", "4pm", "4 pm", "book me", "works for me"},
		Action:   domain.ActionBookAppointment,
		Reply:    "Perfect, {{FirstName}}! You're all set for {{AppointmentDate}} at {{AppointmentTime}} at {{OfficeName}}. We'll text you a reminder the day before.",
	}
}
