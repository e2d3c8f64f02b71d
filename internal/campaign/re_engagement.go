package campaign

import "github.com/brightsmile/sdrengine/internal/domain"

// ReEngagement is the long-tail warm-up for prospects who stalled in
// earlier sequences. It leads with value content rather than a direct ask,
// then parks the prospect in holding.
func ReEngagement() *domain.CampaignDefinition {
	return &domain.CampaignDefinition{
		Type: domain.CampaignReEngagement,
		Name: "Re-Engagement",
		AutomationEvents: []domain.AutomationEvent{
			{
				Type:    domain.EventEmail,
				Name:    "Value content email",
				Timing:  "10:00 AM",
				Subject: "3 things your dental PPO covers that nobody told you about",
				Message: "Hi {{FirstName}},\n\nQuick read: most PPO plans cover two cleanings a year, a full exam, and x-rays at 100%. If it's been a while, you're leaving money on the table.\n\nWhenever you're ready, {{OfficeName}} will verify your exact coverage for free.\n\nJessica",
			},
			{
				Type:    domain.EventSMS,
				Name:    "Check-in SMS",
				Timing:  "day_5 11:00 AM",
				Message: "Hi {{FirstName}}, Jessica from {{OfficeName}}. No pressure at all, just checking in. If you'd like us to look up what your plan covers, reply 'interested' anytime.",
			},
		},
		ResponseHandlers: []domain.ResponseHandler{
			optOutHandler(),
			bookingHandler(),
			{
				Keywords:       []string{"not interested", "no thanks"},
				Action:         domain.ActionMoveCampaign,
				Reply:          "All good, {{FirstName}}! We'll stop checking in for a while.",
				TargetCampaign: domain.CampaignHolding,
			},
			{
				Keywords: []string{"interested", "yes", "tell me more", "what do you have"},
				Action:   domain.ActionOfferTimes,
				Reply:    "Happy to help, {{FirstName}}! Tomorrow we have {{wooai}}. Want one of those?",
			},
		},
		NextCampaign: next(domain.CampaignHolding),
	}
}
