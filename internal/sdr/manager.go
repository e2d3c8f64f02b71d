// Package sdr implements the campaign engine: the state machine that walks
// prospects through outreach campaigns, matches inbound replies against
// keyword rules, books appointments, and recovers no-shows.
package sdr

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/campaign"
	"github.com/brightsmile/sdrengine/internal/clock"
	"github.com/brightsmile/sdrengine/internal/dispatch"
	"github.com/brightsmile/sdrengine/internal/domain"
	"github.com/brightsmile/sdrengine/internal/metrics"
	"github.com/brightsmile/sdrengine/internal/personalize"
)

// DefaultReply is the single canonical fallback when no response handler
// matches an inbound message. The AI fallback path falls back to the same
// string, so prospects always get a coherent answer.
const DefaultReply = "Thanks for reaching out! A member of our team will text you back shortly. If you'd like to book a visit right away, just reply with a time like 2pm, 3pm, or 4pm."

// Tags the engine attaches to prospect records.
const (
	TagAppointmentScheduled = "appointment_scheduled"
	TagInvalidContact       = "invalid_contact"
)

// DefaultStartCampaign is where new prospects land unless intake says
// otherwise.
const DefaultStartCampaign = domain.CampaignListValidation

// DefaultPowerHourBatch is how many holding prospects a power hour
// activates when no count is given.
const DefaultPowerHourBatch = 25

// Reminder offsets recorded when an appointment is booked. Actual timed
// delivery belongs to an external scheduler; the engine records intent.
var reminderOffsets = []time.Duration{24 * time.Hour, 2 * time.Hour, 15 * time.Minute}

// ResponseResult is the outcome of processing one inbound message.
type ResponseResult struct {
	Action         domain.ActionType   `json:"action"`
	Reply          string              `json:"reply"`
	Matched        bool                `json:"matched"`
	TargetCampaign domain.CampaignType `json:"target_campaign,omitempty"`
	Appointment    *domain.Appointment `json:"appointment,omitempty"`
}

// Config holds Manager dependencies. Dispatcher, Metrics, and the
// repositories may be nil; the engine then runs purely in memory.
type Config struct {
	OfficeName string
	// Location is the office timezone. Appointment slots and offered
	// times are computed in it. Nil leaves clock times untouched.
	Location *time.Location
	// PowerHourBatch is the activation size used when no count is given.
	PowerHourBatch int
	Definitions    map[domain.CampaignType]*domain.CampaignDefinition
	Dispatcher     dispatch.Dispatcher
	Clock          clock.Clock
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Records        domain.RecordRepository
	Appointments   domain.AppointmentRepository
}

// Manager owns the prospect store and drives all campaign transitions.
//
// Every public operation takes the manager mutex, so per-prospect
// read-modify-write cycles and the full-table sweeps are serialized; a
// sweep can never overlap itself or a webhook-triggered mutation. No
// operation returns an error across this boundary: unknown ids and
// terminal campaigns degrade to false/nil results.
type Manager struct {
	mu         sync.Mutex
	defs       map[domain.CampaignType]*domain.CampaignDefinition
	store      *Store
	dispatcher dispatch.Dispatcher
	clock      clock.Clock
	logger     *zap.Logger
	metrics    *metrics.Metrics
	office     string
	loc        *time.Location
	batchSize  int
	recordRepo domain.RecordRepository
	apptRepo   domain.AppointmentRepository
}

// NewManager creates a Manager. Definitions default to the built-in
// campaign catalog and Clock to real time.
func NewManager(cfg Config) *Manager {
	defs := cfg.Definitions
	if defs == nil {
		defs = campaign.Definitions()
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	batch := cfg.PowerHourBatch
	if batch <= 0 {
		batch = DefaultPowerHourBatch
	}
	return &Manager{
		defs:       defs,
		store:      NewStore(),
		dispatcher: cfg.Dispatcher,
		clock:      c,
		logger:     logger,
		metrics:    cfg.Metrics,
		office:     cfg.OfficeName,
		loc:        cfg.Location,
		batchSize:  batch,
		recordRepo: cfg.Records,
		apptRepo:   cfg.Appointments,
	}
}

// localNow returns the clock's current time in the office timezone when one
// is configured.
func (m *Manager) localNow() time.Time {
	now := m.clock.Now()
	if m.loc != nil {
		now = now.In(m.loc)
	}
	return now
}

// AddProspect enrolls a prospect in the given starting campaign and fires
// that campaign's first event immediately. Returns false only when the
// starting campaign is unknown.
func (m *Manager) AddProspect(ctx context.Context, p domain.Prospect, start domain.CampaignType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.defs[start]; !ok {
		m.logger.Warn("rejected prospect with unknown start campaign",
			zap.String("prospect_id", p.ID),
			zap.String("campaign", string(start)),
		)
		return false
	}

	rec := domain.NewProspectRecord(p, start, m.clock.NowUTC())
	m.store.Put(rec)
	m.persistRecord(ctx, rec)

	m.logger.Info("prospect enrolled",
		zap.String("prospect_id", p.ID),
		zap.String("campaign", string(start)),
	)

	// Enrollment fires the first scheduled event synchronously; there is no
	// external scheduler in this engine.
	m.sendNextEventLocked(ctx, p.ID)
	return true
}

// SendNextEvent advances the prospect one step: dispatches the event at
// the current stage and increments the stage. If every event has already
// fired, the prospect transitions to the campaign's follow-up campaign, or
// returns false when the campaign is terminal. Exactly one event is
// dispatched per call.
func (m *Manager) SendNextEvent(ctx context.Context, prospectID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendNextEventLocked(ctx, prospectID)
}

func (m *Manager) sendNextEventLocked(ctx context.Context, prospectID string) bool {
	rec, ok := m.store.Get(prospectID)
	if !ok {
		return false
	}
	def, ok := m.defs[rec.CurrentCampaign]
	if !ok || len(def.AutomationEvents) == 0 {
		return false
	}

	if rec.Stage >= len(def.AutomationEvents) {
		if def.NextCampaign == nil {
			return false
		}
		return m.moveLocked(ctx, prospectID, *def.NextCampaign)
	}

	ev := def.AutomationEvents[rec.Stage]
	pctx := personalize.Context{
		Prospect:    rec.Prospect,
		Appointment: m.appointmentFor(rec),
		OfficeName:  m.office,
		Now:         m.localNow(),
	}
	out := dispatch.Outbound{
		Channel:   ev.Type,
		Campaign:  rec.CurrentCampaign,
		EventName: ev.Name,
		Prospect:  rec.Prospect,
		Subject:   personalize.Render(ev.Subject, pctx),
		Body:      personalize.Render(ev.Message, pctx),
	}

	if m.dispatcher != nil {
		if err := m.dispatcher.Send(ctx, out); err != nil {
			// Fire and forget: a delivery failure never blocks the sequence.
			m.logger.Warn("event dispatch failed",
				zap.String("prospect_id", prospectID),
				zap.String("campaign", string(rec.CurrentCampaign)),
				zap.String("event", ev.Name),
				zap.Error(err),
			)
			m.countDispatch(ev.Type, false)
		} else {
			m.countDispatch(ev.Type, true)
		}
	}

	rec.Stage++
	rec.UpdatedAt = m.clock.NowUTC()
	m.persistRecord(ctx, rec)

	m.logger.Debug("automation event fired",
		zap.String("prospect_id", prospectID),
		zap.String("campaign", string(rec.CurrentCampaign)),
		zap.String("event", ev.Name),
		zap.Int("stage", rec.Stage),
	)
	return true
}

// ProcessResponse matches an inbound message against the prospect's
// current campaign handlers. Handlers are scanned in declaration order and
// the first match wins; campaign authors rely on that ordering, so there
// is no scoring or longest-match preference. Side effects (transition,
// booking, invalidation) complete before the result is returned. Returns
// nil only for an unknown prospect.
func (m *Manager) ProcessResponse(ctx context.Context, prospectID, message string) *ResponseResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.store.Get(prospectID)
	if !ok {
		return nil
	}
	def, ok := m.defs[rec.CurrentCampaign]
	if !ok {
		return nil
	}

	for i := range def.ResponseHandlers {
		h := &def.ResponseHandlers[i]
		if !h.Matches(message) {
			continue
		}

		result := &ResponseResult{Action: h.Action, Matched: true}

		switch h.Action {
		case domain.ActionMoveCampaign:
			result.TargetCampaign = h.TargetCampaign
			m.moveLocked(ctx, prospectID, h.TargetCampaign)
		case domain.ActionBookAppointment:
			result.Appointment = m.bookLocked(ctx, rec, message)
		case domain.ActionMarkInvalid:
			rec.AddTag(TagInvalidContact)
			rec.UpdatedAt = m.clock.NowUTC()
			m.persistRecord(ctx, rec)
		}

		result.Reply = personalize.Render(h.Reply, personalize.Context{
			Prospect:    rec.Prospect,
			Appointment: m.appointmentFor(rec),
			OfficeName:  m.office,
			Now:         m.localNow(),
		})

		m.countResponse(h.Action)
		m.logger.Info("inbound message matched",
			zap.String("prospect_id", prospectID),
			zap.String("campaign", string(rec.CurrentCampaign)),
			zap.String("action", string(h.Action)),
		)
		return result
	}

	m.countResponse(domain.ActionDefaultReply)
	return &ResponseResult{Action: domain.ActionDefaultReply, Reply: DefaultReply}
}

// MoveToNextCampaign transitions the prospect into the target campaign:
// the campaign being left is appended to history, the stage resets, and
// the target's first event fires immediately. Any campaign may be entered
// from any other; holding and power hour are reachable from everywhere, so
// there is deliberately no edge validation here.
func (m *Manager) MoveToNextCampaign(ctx context.Context, prospectID string, target domain.CampaignType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moveLocked(ctx, prospectID, target)
}

func (m *Manager) moveLocked(ctx context.Context, prospectID string, target domain.CampaignType) bool {
	rec, ok := m.store.Get(prospectID)
	if !ok {
		return false
	}
	if _, ok := m.defs[target]; !ok {
		return false
	}

	from := rec.CurrentCampaign
	rec.RecordTransition(target, m.clock.NowUTC())
	m.persistRecord(ctx, rec)
	m.countTransition(target)

	m.logger.Info("campaign transition",
		zap.String("prospect_id", prospectID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)

	m.sendNextEventLocked(ctx, prospectID)
	return true
}

// BookAppointment books tomorrow's slot for the prospect, choosing the
// hour from the inbound message. Returns nil when the prospect is unknown.
func (m *Manager) BookAppointment(ctx context.Context, prospectID, message string) *domain.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.store.Get(prospectID)
	if !ok {
		return nil
	}
	return m.bookLocked(ctx, rec, message)
}

func (m *Manager) bookLocked(ctx context.Context, rec *domain.ProspectRecord, message string) *domain.Appointment {
	day := clock.Tomorrow(m.clock)
	if m.loc != nil {
		day = day.In(m.loc)
	}
	slot := time.Date(day.Year(), day.Month(), day.Day(), slotHour(message), 0, 0, 0, day.Location())

	appt := domain.NewAppointment(rec.Prospect.ID, slot, m.clock.NowUTC())
	m.store.PutAppointment(appt)
	m.persistAppointment(ctx, appt)

	rec.AppointmentID = appt.ID.String()
	rec.AddTag(TagAppointmentScheduled)
	rec.UpdatedAt = m.clock.NowUTC()
	m.persistRecord(ctx, rec)

	if m.metrics != nil {
		m.metrics.RecordAppointmentBooked()
	}
	m.logger.Info("appointment booked",
		zap.String("prospect_id", rec.Prospect.ID),
		zap.String("appointment_id", appt.ID.String()),
		zap.Time("scheduled_for", appt.ScheduledFor),
	)

	m.recordReminderIntents(appt)
	return appt
}

// slotHour extracts the requested hour from an inbound message. The only
// slots the campaigns ever offer are 2, 3, and 4 PM; anything that isn't
// clearly 2pm or 4pm books the middle slot.
func slotHour(message string) int {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "2pm") || strings.Contains(lower, "2 pm"):
		return 14
	case strings.Contains(lower, "4pm") || strings.Contains(lower, "4 pm"):
		return 16
	default:
		return 15
	}
}

// recordReminderIntents logs the reminder schedule for a new appointment.
// Timed delivery is an external scheduler's job; the engine records the
// intent so operators can see what should go out and when.
func (m *Manager) recordReminderIntents(appt *domain.Appointment) {
	for _, offset := range reminderOffsets {
		m.logger.Info("appointment reminder intent",
			zap.String("appointment_id", appt.ID.String()),
			zap.String("prospect_id", appt.ProspectID),
			zap.Duration("before", offset),
			zap.Time("send_at", appt.ScheduledFor.Add(-offset)),
		)
		if m.metrics != nil {
			m.metrics.RecordReminderIntent()
		}
	}
}

// Record returns a copy of the prospect record and its appointment, if
// any. The copy is safe to read outside the manager lock.
func (m *Manager) Record(prospectID string) (domain.ProspectRecord, *domain.Appointment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.store.Get(prospectID)
	if !ok {
		return domain.ProspectRecord{}, nil, false
	}
	cp := *rec
	cp.History = append([]domain.CampaignEntry(nil), rec.History...)
	cp.Tags = append([]string(nil), rec.Tags...)

	var appt *domain.Appointment
	if a := m.appointmentFor(rec); a != nil {
		acp := *a
		appt = &acp
	}
	return cp, appt, true
}

// ProspectIDByPhone resolves an inbound caller's phone number to a prospect
// id. Used by the SMS webhook, where only the sender's number is known.
func (m *Manager) ProspectIDByPhone(phone string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.store.FindByPhone(phone)
	if !ok {
		return "", false
	}
	return rec.Prospect.ID, true
}

// appointmentFor resolves the record's appointment reference. The
// appointment table is the single source of truth; records only hold the
// id, so there is no second copy to keep in sync.
func (m *Manager) appointmentFor(rec *domain.ProspectRecord) *domain.Appointment {
	if !rec.HasAppointment() {
		return nil
	}
	id, err := uuid.Parse(rec.AppointmentID)
	if err != nil {
		return nil
	}
	appt, ok := m.store.Appointment(id)
	if !ok {
		return nil
	}
	return appt
}

func (m *Manager) persistRecord(ctx context.Context, rec *domain.ProspectRecord) {
	if m.recordRepo == nil {
		return
	}
	if err := m.recordRepo.Upsert(ctx, rec); err != nil {
		m.logger.Error("record persistence failed",
			zap.String("prospect_id", rec.Prospect.ID),
			zap.Error(err),
		)
	}
}

func (m *Manager) persistAppointment(ctx context.Context, appt *domain.Appointment) {
	if m.apptRepo == nil {
		return
	}
	if err := m.apptRepo.Upsert(ctx, appt); err != nil {
		m.logger.Error("appointment persistence failed",
			zap.String("appointment_id", appt.ID.String()),
			zap.Error(err),
		)
	}
}

func (m *Manager) countDispatch(channel domain.EventType, ok bool) {
	if m.metrics != nil {
		m.metrics.RecordEventDispatched(string(channel), ok)
	}
}

func (m *Manager) countResponse(action domain.ActionType) {
	if m.metrics != nil {
		m.metrics.RecordResponseMatched(string(action))
	}
}

func (m *Manager) countTransition(target domain.CampaignType) {
	if m.metrics != nil {
		m.metrics.RecordTransition(string(target))
	}
}
