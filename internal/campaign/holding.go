package campaign

import "github.com/brightsmile/sdrengine/internal/domain"

// Holding is the terminal catch-all for prospects who declined or went
// cold everywhere else. One quarterly-style touch keeps the thread warm;
// there is no next campaign, so prospects sit here until a power hour or
// an inbound reply pulls them out.
func Holding() *domain.CampaignDefinition {
	return &domain.CampaignDefinition{
		Type: domain.CampaignHolding,
		Name: "Holding Pattern",
		AutomationEvents: []domain.AutomationEvent{
			{
				Type:    domain.EventSMS,
				Name:    "Warm keep-alive SMS",
				Timing:  "quarterly",
				Message: "Hi {{FirstName}}, Jessica from {{OfficeName}}. Just a friendly reminder that your free PPO coverage check is always here when you want it. No rush at all!",
			},
		},
		ResponseHandlers: []domain.ResponseHandler{
			optOutHandler(),
			bookingHandler(),
			{
				Keywords:       []string{"interested", "yes", "ready", "let's do it"},
				Action:         domain.ActionMoveCampaign,
				Reply:          "Welcome back, {{FirstName}}! Let's get you taken care of.",
				TargetCampaign: domain.CampaignColdOffer,
			},
		},
		NextCampaign: nil,
	}
}
