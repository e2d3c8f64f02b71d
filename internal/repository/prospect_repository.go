// Package repository implements data persistence using PostgreSQL.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightsmile/sdrengine/internal/domain"
)

// ProspectRepository implements domain.RecordRepository using PostgreSQL.
type ProspectRepository struct {
	pool *pgxpool.Pool
}

// NewProspectRepository creates a new ProspectRepository.
func NewProspectRepository(pool *pgxpool.Pool) *ProspectRepository {
	return &ProspectRepository{pool: pool}
}

// Upsert writes the record, replacing any existing row for the prospect.
// The position column preserves enrollment order across restarts and is
// assigned once on first insert.
func (r *ProspectRepository) Upsert(ctx context.Context, record *domain.ProspectRecord) error {
	ctx, cancel := WithWriteTimeout(ctx)
	defer cancel()

	historyJSON, err := json.Marshal(record.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tagsJSON, err := json.Marshal(record.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO prospects (
			id, first_name, last_name, email, phone, lead_source,
			current_campaign, stage, history, tags, appointment_id,
			enrolled_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			lead_source = EXCLUDED.lead_source,
			current_campaign = EXCLUDED.current_campaign,
			stage = EXCLUDED.stage,
			history = EXCLUDED.history,
			tags = EXCLUDED.tags,
			appointment_id = EXCLUDED.appointment_id,
			enrolled_at = EXCLUDED.enrolled_at,
			updated_at = EXCLUDED.updated_at`

	_, err = r.pool.Exec(ctx, query,
		record.Prospect.ID,
		record.Prospect.FirstName,
		record.Prospect.LastName,
		record.Prospect.Email,
		record.Prospect.Phone,
		record.Prospect.LeadSource,
		string(record.CurrentCampaign),
		record.Stage,
		historyJSON,
		tagsJSON,
		record.AppointmentID,
		record.EnrolledAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert prospect: %w", err)
	}

	return nil
}

// LoadAll returns every persisted record in enrollment order.
func (r *ProspectRepository) LoadAll(ctx context.Context) ([]*domain.ProspectRecord, error) {
	ctx, cancel := WithListQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT
			id, first_name, last_name, email, phone, lead_source,
			current_campaign, stage, history, tags, appointment_id,
			enrolled_at, updated_at
		FROM prospects
		ORDER BY position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query prospects: %w", err)
	}
	defer rows.Close()

	var records []*domain.ProspectRecord
	for rows.Next() {
		var (
			rec         domain.ProspectRecord
			campaign    string
			historyJSON []byte
			tagsJSON    []byte
		)

		err := rows.Scan(
			&rec.Prospect.ID,
			&rec.Prospect.FirstName,
			&rec.Prospect.LastName,
			&rec.Prospect.Email,
			&rec.Prospect.Phone,
			&rec.Prospect.LeadSource,
			&campaign,
			&rec.Stage,
			&historyJSON,
			&tagsJSON,
			&rec.AppointmentID,
			&rec.EnrolledAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prospect: %w", err)
		}

		rec.CurrentCampaign = domain.CampaignType(campaign)
		if err := json.Unmarshal(historyJSON, &rec.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history for %s: %w", rec.Prospect.ID, err)
		}
		if err := json.Unmarshal(tagsJSON, &rec.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags for %s: %w", rec.Prospect.ID, err)
		}

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prospects: %w", err)
	}

	return records, nil
}
