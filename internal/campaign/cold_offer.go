package campaign

import "github.com/brightsmile/sdrengine/internal/domain"

// ColdOffer is a direct, limited-time promotion sent to colder lists.
// It opens with the offer itself and pushes straight for a booking.
func ColdOffer() *domain.CampaignDefinition {
	return &domain.CampaignDefinition{
		Type: domain.CampaignColdOffer,
		Name: "Cold Offer",
		AutomationEvents: []domain.AutomationEvent{
			{
				Type:    domain.EventSMS,
				Name:    "Direct offer SMS",
				Timing:  "09:00 AM",
				Message: "Hi {{FirstName}}! {{OfficeName}} here. This week only: free PPO coverage consultation plus a complimentary whitening kit at your first visit. Interested?",
			},
			{
				Type:    domain.EventSMS,
				Name:    "Scarcity follow-up SMS",
				Timing:  "day_2 03:00 PM",
				Message: "{{FirstName}}, only a handful of consultation spots left this week at {{OfficeName}}: {{wooai}}. Reply with a time and it's yours.",
			},
			{
				Type:    domain.EventAIVoiceCall,
				Name:    "Offer close call",
				Timing:  "day_3 11:00 AM",
				Message: "You are Jessica from {{OfficeName}}. Call {{FirstName}} about this week's free PPO consultation offer. If they're interested, book one of tomorrow's openings: {{wooai}}.",
			},
		},
		ResponseHandlers: []domain.ResponseHandler{
			optOutHandler(),
			bookingHandler(),
			{
				Keywords:       []string{"not interested", "no thanks", "pass"},
				Action:         domain.ActionMoveCampaign,
				Reply:          "No worries, {{FirstName}}! The offer comes around a couple times a year. We'll keep you posted.",
				TargetCampaign: domain.CampaignHolding,
			},
			{
				Keywords: []string{"interested", "yes", "free", "whitening", "sounds good"},
				Action:   domain.ActionOfferTimes,
				Reply:    "You got it, {{FirstName}}! Tomorrow we have {{wooai}} at {{OfficeName}}. Which time should I lock in?",
			},
		},
		NextCampaign: next(domain.CampaignHolding),
	}
}
