package domain

import "context"

// RecordRepository persists prospect records durably. The in-memory store
// inside the campaign manager stays authoritative while the process runs;
// implementations mirror mutations and rehydrate the store on boot.
type RecordRepository interface {
	// Upsert writes the record, replacing any existing row for the prospect.
	Upsert(ctx context.Context, record *ProspectRecord) error

	// LoadAll returns every persisted record in enrollment order.
	LoadAll(ctx context.Context) ([]*ProspectRecord, error)
}

// AppointmentRepository persists appointments durably.
type AppointmentRepository interface {
	Upsert(ctx context.Context, appt *Appointment) error
	LoadAll(ctx context.Context) ([]*Appointment, error)
}
