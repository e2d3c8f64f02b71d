package campaign

import "github.com/brightsmile/sdrengine/internal/domain"

// LeadGeneration is the primary outreach sequence: introduce the PPO
// coverage offer across SMS, email, and an AI voice call. Prospects who
// never reply roll into the no-response campaign.
func LeadGeneration() *domain.CampaignDefinition {
	return &domain.CampaignDefinition{
		Type: domain.CampaignLeadGeneration,
		Name: "Lead Generation",
		AutomationEvents: []domain.AutomationEvent{
			{
				Type:    domain.EventSMS,
				Name:    "Opening offer SMS",
				Timing:  "09:00 AM",
				Message: "Hi {{FirstName}}! It's Jessica at {{OfficeName}}. Your dental PPO likely covers 100% of preventive visits, and most of our patients never use it. Want me to check your coverage? It takes 2 minutes.",
			},
			{
				Type:    domain.EventEmail,
				Name:    "Coverage breakdown email",
				Timing:  "day_2 10:00 AM",
				Subject: "{{FirstName}}, your dental benefits are expiring unused",
				Message: "Hi {{FirstName}},\n\nMost PPO plans reset every year, and unused benefits don't roll over. At {{OfficeName}} we verify your coverage for free and show you exactly what's included.\n\nReply to this email or text us back and we'll take care of the rest.\n\nJessica\n{{OfficeName}}",
			},
			{
				Type:    domain.EventSMS,
				Name:    "Offer times SMS",
				Timing:  "day_4 02:00 PM",
				Message: "{{FirstName}}, we had a few consultation spots open up: {{wooai}}. Any of those work for a quick coverage review?",
			},
			{
				Type:    domain.EventAIVoiceCall,
				Name:    "Benefits check call",
				Timing:  "day_6 11:00 AM",
				Message: "You are Jessica, a friendly scheduling coordinator at {{OfficeName}}. Call {{FirstName}} to offer a free dental PPO benefits check and, if they're interested, offer tomorrow's openings: {{wooai}}.",
			},
		},
		ResponseHandlers: []domain.ResponseHandler{
			optOutHandler(),
			bookingHandler(),
			{
				Keywords:       []string{"not interested", "no thanks", "maybe later", "busy right now"},
				Action:         domain.ActionMoveCampaign,
				Reply:          "No problem at all, {{FirstName}}! We'll check back another time. Your benefits aren't going anywhere... well, until December 31st.",
				TargetCampaign: domain.CampaignHolding,
			},
			{
				Keywords: []string{"interested", "tell me more", "how much", "what's included", "covered"},
				Action:   domain.ActionOfferTimes,
				Reply:    "Love to hear it, {{FirstName}}! We have openings {{wooai}} for a free coverage consultation at {{OfficeName}}. Which works best?",
			},
		},
		NextCampaign: next(domain.CampaignNoResponse),
	}
}
