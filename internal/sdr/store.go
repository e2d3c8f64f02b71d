package sdr

import (
	"github.com/google/uuid"

	"github.com/brightsmile/sdrengine/internal/domain"
)

// Store is the in-memory prospect and appointment table. Records keep
// enrollment order so batch operations like the power-hour selection are
// deterministic. Store is not safe for concurrent use on its own; the
// Manager's mutex serializes all access.
type Store struct {
	records map[string]*domain.ProspectRecord
	order   []string
	appts   map[uuid.UUID]*domain.Appointment
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*domain.ProspectRecord),
		appts:   make(map[uuid.UUID]*domain.Appointment),
	}
}

// Put inserts or replaces a record, preserving first-insertion order.
func (s *Store) Put(r *domain.ProspectRecord) {
	id := r.Prospect.ID
	if _, ok := s.records[id]; !ok {
		s.order = append(s.order, id)
	}
	s.records[id] = r
}

// Get returns the record for a prospect id.
func (s *Store) Get(id string) (*domain.ProspectRecord, bool) {
	r, ok := s.records[id]
	return r, ok
}

// FindByPhone returns the first record (in enrollment order) whose prospect
// phone matches. Numbers are compared digit for digit, ignoring formatting.
func (s *Store) FindByPhone(phone string) (*domain.ProspectRecord, bool) {
	want := digitsOf(phone)
	if want == "" {
		return nil, false
	}
	for _, id := range s.order {
		if digitsOf(s.records[id].Prospect.Phone) == want {
			return s.records[id], true
		}
	}
	return nil, false
}

func digitsOf(phone string) string {
	var b []byte
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			b = append(b, phone[i])
		}
	}
	return string(b)
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// InCampaign returns prospect ids currently in the given campaign, in
// enrollment order.
func (s *Store) InCampaign(c domain.CampaignType) []string {
	var ids []string
	for _, id := range s.order {
		if s.records[id].CurrentCampaign == c {
			ids = append(ids, id)
		}
	}
	return ids
}

// PutAppointment inserts or replaces an appointment.
func (s *Store) PutAppointment(a *domain.Appointment) {
	s.appts[a.ID] = a
}

// Appointment returns the appointment with the given id.
func (s *Store) Appointment(id uuid.UUID) (*domain.Appointment, bool) {
	a, ok := s.appts[id]
	return a, ok
}

// Appointments returns all appointments in unspecified order.
func (s *Store) Appointments() []*domain.Appointment {
	out := make([]*domain.Appointment, 0, len(s.appts))
	for _, a := range s.appts {
		out = append(out, a)
	}
	return out
}
