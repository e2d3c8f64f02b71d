package campaign

import "github.com/brightsmile/sdrengine/internal/domain"

// PowerHour is the short burst campaign for prospects pulled out of
// holding: one high-urgency SMS and an immediate AI call while the office
// has same-day capacity.
func PowerHour() *domain.CampaignDefinition {
	return &domain.CampaignDefinition{
		Type: domain.CampaignPowerHour,
		Name: "Power Hour",
		AutomationEvents: []domain.AutomationEvent{
			{
				Type:    domain.EventSMS,
				Name:    "Flash opening SMS",
				Timing:  "send_on_entry",
				Message: "{{FirstName}}! Jessica at {{OfficeName}}. A few consultation spots just opened for tomorrow: {{wooai}}. First reply gets first pick!",
			},
			{
				Type:    domain.EventAIVoiceCall,
				Name:    "Power hour call",
				Timing:  "plus_30_min",
				Message: "You are Jessica from {{OfficeName}}. Call {{FirstName}} about last-minute consultation openings tomorrow: {{wooai}}. Be upbeat and book a slot on the call if possible.",
			},
		},
		ResponseHandlers: []domain.ResponseHandler{
			optOutHandler(),
			bookingHandler(),
			{
				Keywords:       []string{"not interested", "no thanks", "can't make it"},
				Action:         domain.ActionMoveCampaign,
				Reply:          "No problem, {{FirstName}}! Back to the waitlist you go. We'll ping you next time spots open up.",
				TargetCampaign: domain.CampaignHolding,
			},
			{
				Keywords: []string{"interested", "yes", "which times", "available"},
				Action:   domain.ActionOfferTimes,
				Reply:    "Quick draw, {{FirstName}}! Tomorrow's openings: {{wooai}}. Reply with one and it's yours.",
			},
		},
		NextCampaign: next(domain.CampaignHolding),
	}
}
