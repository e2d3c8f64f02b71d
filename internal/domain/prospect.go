package domain

import "time"

// Prospect holds the identity and contact details collected at intake.
type Prospect struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	LeadSource string `json:"lead_source,omitempty"`
}

// CampaignEntry is one line of a prospect's transition history. It records
// the campaign the prospect was leaving at the moment of transition.
type CampaignEntry struct {
	Campaign  CampaignType `json:"campaign"`
	Timestamp time.Time    `json:"timestamp"`
}

// ProspectRecord wraps a Prospect with its orchestration state.
//
// Stage is a zero-based index into the current campaign's event sequence;
// it may equal the sequence length, meaning every event has fired and the
// prospect awaits a transition. Only the campaign manager mutates Stage and
// CurrentCampaign.
type ProspectRecord struct {
	Prospect        Prospect        `json:"prospect"`
	CurrentCampaign CampaignType    `json:"current_campaign"`
	Stage           int             `json:"stage"`
	History         []CampaignEntry `json:"history"`
	Tags            []string        `json:"tags"`
	AppointmentID   string          `json:"appointment_id,omitempty"`
	EnrolledAt      time.Time       `json:"enrolled_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewProspectRecord enrolls a prospect into a starting campaign at stage 0
// with empty history and tags.
func NewProspectRecord(p Prospect, start CampaignType, now time.Time) *ProspectRecord {
	return &ProspectRecord{
		Prospect:        p,
		CurrentCampaign: start,
		Stage:           0,
		History:         []CampaignEntry{},
		Tags:            []string{},
		EnrolledAt:      now,
		UpdatedAt:       now,
	}
}

// RecordTransition appends the campaign being left to the history and moves
// the record into the target campaign at stage 0.
func (r *ProspectRecord) RecordTransition(target CampaignType, now time.Time) {
	r.History = append(r.History, CampaignEntry{Campaign: r.CurrentCampaign, Timestamp: now})
	r.CurrentCampaign = target
	r.Stage = 0
	r.UpdatedAt = now
}

// HasTag reports whether the record carries the given tag.
func (r *ProspectRecord) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag adds a tag if not already present.
func (r *ProspectRecord) AddTag(tag string) {
	if !r.HasTag(tag) {
		r.Tags = append(r.Tags, tag)
	}
}

// HasAppointment reports whether an appointment is attached to the record.
func (r *ProspectRecord) HasAppointment() bool {
	return r.AppointmentID != ""
}
