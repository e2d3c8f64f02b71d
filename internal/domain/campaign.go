// Package domain contains the core business entities and interfaces.
package domain

import "strings"

// CampaignType identifies one of the fixed outreach campaigns a prospect
// can be enrolled in. The string values are stable identifiers shared with
// the CRM layer and must not change.
type CampaignType string

const (
	CampaignLeadGeneration CampaignType = "leadGeneration"
	CampaignNoResponse     CampaignType = "noResponse"
	CampaignNoShow         CampaignType = "noShow"
	CampaignReEngagement   CampaignType = "reEngagement"
	CampaignListValidation CampaignType = "listValidation"
	CampaignColdOffer      CampaignType = "coldOffer"
	CampaignPowerHour      CampaignType = "powerHour"
	CampaignHolding        CampaignType = "holding"
)

// AllCampaignTypes lists every known campaign in a stable order.
var AllCampaignTypes = []CampaignType{
	CampaignLeadGeneration,
	CampaignNoResponse,
	CampaignNoShow,
	CampaignReEngagement,
	CampaignListValidation,
	CampaignColdOffer,
	CampaignPowerHour,
	CampaignHolding,
}

// Valid reports whether t is one of the known campaign types.
func (t CampaignType) Valid() bool {
	switch t {
	case CampaignLeadGeneration, CampaignNoResponse, CampaignNoShow,
		CampaignReEngagement, CampaignListValidation, CampaignColdOffer,
		CampaignPowerHour, CampaignHolding:
		return true
	default:
		return false
	}
}

// EventType is the delivery channel of an automation event.
type EventType string

const (
	EventSMS           EventType = "sms"
	EventEmail         EventType = "email"
	EventAIVoiceCall   EventType = "ai_voice_call"
	EventVoicemailDrop EventType = "voicemail_drop"
)

// AutomationEvent is one scheduled outreach step within a campaign.
// Timing is a human-readable scheduling hint carried for the CRM UI; the
// engine advances strictly by stage index, never by interpreting Timing.
type AutomationEvent struct {
	Type    EventType `json:"type"`
	Name    string    `json:"name"`
	Timing  string    `json:"timing"`
	Message string    `json:"message"`
	Subject string    `json:"subject,omitempty"` // email only
}

// ActionType is what a matched response handler does.
type ActionType string

const (
	ActionOfferTimes      ActionType = "offer_times"
	ActionBookAppointment ActionType = "book_appointment"
	ActionMoveCampaign    ActionType = "move_campaign"
	ActionMarkInvalid     ActionType = "mark_invalid"
	ActionDefaultReply    ActionType = "default_reply"
)

// ResponseHandler maps inbound message keywords to an action and reply.
// Keywords are OR-matched as case-insensitive substrings. Handler order
// within a campaign defines match priority: campaign authors put specific
// handlers (time slots, opt-outs) before generic catch-alls.
type ResponseHandler struct {
	Keywords       []string     `json:"keywords"`
	Action         ActionType   `json:"action"`
	Reply          string       `json:"reply"`
	TargetCampaign CampaignType `json:"target_campaign,omitempty"` // move_campaign only
}

// Matches reports whether any keyword occurs in the message,
// case-insensitively.
func (h *ResponseHandler) Matches(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range h.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// CampaignDefinition is an immutable-after-construction description of one
// campaign: its ordered event sequence, its reply rules, and where a
// prospect goes once every event has fired. A nil NextCampaign means the
// campaign is terminal and the prospect sits idle after the last event.
type CampaignDefinition struct {
	Type             CampaignType      `json:"type"`
	Name             string            `json:"name"`
	AutomationEvents []AutomationEvent `json:"automation_events"`
	ResponseHandlers []ResponseHandler `json:"response_handlers"`
	NextCampaign     *CampaignType     `json:"next_campaign,omitempty"`
}

// Terminal reports whether the campaign has no follow-up campaign.
func (d *CampaignDefinition) Terminal() bool {
	return d.NextCampaign == nil
}
