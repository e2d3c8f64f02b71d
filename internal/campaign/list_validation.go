package campaign

import "github.com/brightsmile/sdrengine/internal/domain"

// ListValidation is the default intake campaign. It confirms the contact
// is real and reachable before any offer is made, then feeds validated
// prospects into lead generation.
func ListValidation() *domain.CampaignDefinition {
	return &domain.CampaignDefinition{
		Type: domain.CampaignListValidation,
		Name: "List Validation",
		AutomationEvents: []domain.AutomationEvent{
			{
				Type:    domain.EventSMS,
				Name:    "Confirm their name SMS",
				Timing:  "send_after_opt_in",
				Message: "Hi, is this {{FirstName}}? This is Jessica from {{OfficeName}}. Just updating our patient records!",
			},
			{
				Type:    domain.EventSMS,
				Name:    "Second touch SMS",
				Timing:  "day_2 09:00 AM",
				Message: "Hi {{FirstName}}, Jessica from {{OfficeName}} again. Wanted to make sure I have the right number for you. A quick 'yes' or 'no' works!",
			},
			{
				Type:    domain.EventVoicemailDrop,
				Name:    "Validation voicemail",
				Timing:  "day_4 11:00 AM",
				Message: "Hi {{FirstName}}, this is Jessica calling from {{OfficeName}}. We're updating our records and have a new patient offer I'd love to share. Text us back anytime!",
			},
		},
		ResponseHandlers: []domain.ResponseHandler{
			optOutHandler(),
			{
				Keywords: []string{"wrong number", "wrong person", "who is this", "never heard"},
				Action:   domain.ActionMarkInvalid,
				Reply:    "Sorry about that! We'll remove this number from our list right away.",
			},
			{
				Keywords:       []string{"yes", "yep", "this is", "speaking", "that's me"},
				Action:         domain.ActionMoveCampaign,
				Reply:          "Great, thanks for confirming {{FirstName}}! Keep an eye out, we have something special for you coming up.",
				TargetCampaign: domain.CampaignLeadGeneration,
			},
		},
		NextCampaign: next(domain.CampaignLeadGeneration),
	}
}
