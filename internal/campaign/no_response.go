package campaign

import "github.com/brightsmile/sdrengine/internal/domain"

// NoResponse follows up with prospects who went quiet during lead
// generation. Softer cadence, one last voicemail, then re-engagement.
func NoResponse() *domain.CampaignDefinition {
	return &domain.CampaignDefinition{
		Type: domain.CampaignNoResponse,
		Name: "No Response Follow-Up",
		AutomationEvents: []domain.AutomationEvent{
			{
				Type:    domain.EventSMS,
				Name:    "Gentle nudge SMS",
				Timing:  "09:30 AM",
				Message: "Hi {{FirstName}}, Jessica from {{OfficeName}} here. I know texts get buried! Still happy to run that free benefits check whenever you have 2 minutes.",
			},
			{
				Type:    domain.EventVoicemailDrop,
				Name:    "Follow-up voicemail",
				Timing:  "day_3 01:00 PM",
				Message: "Hi {{FirstName}}, Jessica at {{OfficeName}}. Just leaving a quick voicemail about your unused dental benefits. Text us back and we'll find a time that works for you.",
			},
			{
				Type:    domain.EventSMS,
				Name:    "Last call SMS",
				Timing:  "day_7 10:00 AM",
				Message: "{{FirstName}}, last note from me for now. If you'd ever like that free PPO coverage review at {{OfficeName}}, just reply 'interested' and I'll grab you a spot.",
			},
		},
		ResponseHandlers: []domain.ResponseHandler{
			optOutHandler(),
			bookingHandler(),
			{
				Keywords:       []string{"not interested", "no thanks", "leave me alone"},
				Action:         domain.ActionMoveCampaign,
				Reply:          "Understood, {{FirstName}}! We'll leave you be. Reach out anytime if that changes.",
				TargetCampaign: domain.CampaignHolding,
			},
			{
				Keywords: []string{"interested", "yes", "sure", "ok", "sounds good"},
				Action:   domain.ActionOfferTimes,
				Reply:    "Great timing, {{FirstName}}! We have {{wooai}} open tomorrow. Which should I pencil you in for?",
			},
		},
		NextCampaign: next(domain.CampaignReEngagement),
	}
}
