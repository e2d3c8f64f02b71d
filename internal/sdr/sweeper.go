package sdr

import (
	"context"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/domain"
)

// CheckNoShows flags every still-scheduled appointment whose date is over a
// day in the past as a no-show and moves its prospect into the no-show
// recovery campaign. Returns the number of appointments processed. Runs under the
// manager mutex, so it cannot overlap itself or any other operation.
func (m *Manager) CheckNoShows(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	processed := 0
	for _, appt := range m.store.Appointments() {
		if !appt.MissedBy(now) {
			continue
		}

		appt.Status = domain.AppointmentNoShow
		appt.UpdatedAt = m.clock.NowUTC()
		m.persistAppointment(ctx, appt)
		processed++

		m.logger.Info("appointment flagged no-show",
			zap.String("appointment_id", appt.ID.String()),
			zap.String("prospect_id", appt.ProspectID),
			zap.Time("scheduled_for", appt.ScheduledFor),
		)

		m.moveLocked(ctx, appt.ProspectID, domain.CampaignNoShow)
	}

	if m.metrics != nil {
		m.metrics.RecordSweep("no_show", processed)
	}
	return processed
}

// ActivatePowerHour pulls up to count prospects out of holding, in
// enrollment order, and moves each into the power-hour campaign. A count
// of zero or less uses the configured batch size. Returns how many were
// moved.
func (m *Manager) ActivatePowerHour(ctx context.Context, count int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if count <= 0 {
		count = m.batchSize
	}

	ids := m.store.InCampaign(domain.CampaignHolding)
	if len(ids) > count {
		ids = ids[:count]
	}

	moved := 0
	for _, id := range ids {
		if m.moveLocked(ctx, id, domain.CampaignPowerHour) {
			moved++
		}
	}

	if m.metrics != nil {
		m.metrics.RecordSweep("power_hour", moved)
	}
	m.logger.Info("power hour activated", zap.Int("moved", moved))
	return moved
}

// Rehydrate loads persisted records and appointments into the in-memory
// store. Meant for process startup, before the HTTP surface is up; no
// events fire during rehydration.
func (m *Manager) Rehydrate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.recordRepo != nil {
		records, err := m.recordRepo.LoadAll(ctx)
		if err != nil {
			return err
		}
		for _, rec := range records {
			m.store.Put(rec)
		}
		m.logger.Info("prospect records rehydrated", zap.Int("count", len(records)))
	}

	if m.apptRepo != nil {
		appts, err := m.apptRepo.LoadAll(ctx)
		if err != nil {
			return err
		}
		for _, appt := range appts {
			m.store.PutAppointment(appt)
		}
		m.logger.Info("appointments rehydrated", zap.Int("count", len(appts)))
	}
	return nil
}
