package campaign

import "github.com/brightsmile/sdrengine/internal/domain"

// NoShow recovers prospects who booked but missed their appointment.
// Entered by the no-show sweeper; leads with empathy, then a rebook ask.
func NoShow() *domain.CampaignDefinition {
	return &domain.CampaignDefinition{
		Type: domain.CampaignNoShow,
		Name: "No-Show Recovery",
		AutomationEvents: []domain.AutomationEvent{
			{
				Type:    domain.EventSMS,
				Name:    "Missed you SMS",
				Timing:  "send_on_entry",
				Message: "Hi {{FirstName}}, we missed you at {{OfficeName}} today! Life happens. Want me to find you another time? We have {{wooai}} open.",
			},
			{
				Type:    domain.EventVoicemailDrop,
				Name:    "Rebook voicemail",
				Timing:  "day_2 10:00 AM",
				Message: "Hi {{FirstName}}, Jessica at {{OfficeName}}. Sorry we missed each other! Your free coverage consultation is still waiting. Text us a time and we'll get you rebooked.",
			},
			{
				Type:    domain.EventSMS,
				Name:    "Final rebook SMS",
				Timing:  "day_5 02:00 PM",
				Message: "{{FirstName}}, still holding your spot at {{OfficeName}}. Tomorrow we have {{wooai}}. One quick reply and you're rebooked!",
			},
		},
		ResponseHandlers: []domain.ResponseHandler{
			optOutHandler(),
			bookingHandler(),
			{
				Keywords: []string{"sorry", "forgot", "reschedule", "another time"},
				Action:   domain.ActionOfferTimes,
				Reply:    "No apology needed, {{FirstName}}! Tomorrow we have {{wooai}}. Which one works?",
			},
			{
				Keywords:       []string{"not interested", "cancel", "no thanks"},
				Action:         domain.ActionMoveCampaign,
				Reply:          "Totally understand, {{FirstName}}. We'll close this out. You're always welcome back at {{OfficeName}}.",
				TargetCampaign: domain.CampaignHolding,
			},
		},
		NextCampaign: next(domain.CampaignHolding),
	}
}
