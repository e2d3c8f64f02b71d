package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightsmile/sdrengine/internal/domain"
)

// AppointmentRepository implements domain.AppointmentRepository using PostgreSQL.
type AppointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// Upsert writes the appointment, replacing any existing row.
func (r *AppointmentRepository) Upsert(ctx context.Context, appt *domain.Appointment) error {
	ctx, cancel := WithWriteTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO appointments (
			id, prospect_id, scheduled_for, status, service, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (id) DO UPDATE SET
			scheduled_for = EXCLUDED.scheduled_for,
			status = EXCLUDED.status,
			service = EXCLUDED.service,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		appt.ID,
		appt.ProspectID,
		appt.ScheduledFor,
		string(appt.Status),
		appt.Service,
		appt.CreatedAt,
		appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert appointment: %w", err)
	}

	return nil
}

// LoadAll returns every persisted appointment.
func (r *AppointmentRepository) LoadAll(ctx context.Context) ([]*domain.Appointment, error) {
	ctx, cancel := WithListQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, prospect_id, scheduled_for, status, service, created_at, updated_at
		FROM appointments
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appts []*domain.Appointment
	for rows.Next() {
		var (
			appt   domain.Appointment
			status string
		)

		err := rows.Scan(
			&appt.ID,
			&appt.ProspectID,
			&appt.ScheduledFor,
			&status,
			&appt.Service,
			&appt.CreatedAt,
			&appt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}

		appt.Status = domain.AppointmentStatus(status)
		appts = append(appts, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}

	return appts, nil
}
