package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velocita/velocita-backend/internal/model"
)

// EligibilityCheckRepository persists audit records of engine runs.
type EligibilityCheckRepository struct {
	pool *pgxpool.Pool
}

// NewEligibilityCheckRepository creates a new EligibilityCheckRepository.
func NewEligibilityCheckRepository(pool *pgxpool.Pool) *EligibilityCheckRepository {
	return &EligibilityCheckRepository{pool: pool}
}

// InsertBatch writes a batch of audit records (used by the audit worker).
func (r *EligibilityCheckRepository) InsertBatch(ctx context.Context, checks []*model.EligibilityCheck) error {
	for _, check := range checks {
		messages, err := json.Marshal(check.Messages)
		if err != nil {
			return err
		}
		if _, err := r.pool.Exec(ctx,
			`INSERT INTO eligibility_checks
			 (athlete_id, modality_id, eligible, messages, extracted_data, duration_ms, checked_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			check.AthleteID, check.ModalityID, check.Eligible, messages, check.ExtractedData, check.DurationMs, check.CheckedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

// ListByModality retrieves audit records of a modality, newest first. This is
// the feed a spreadsheet/report exporter consumes.
func (r *EligibilityCheckRepository) ListByModality(ctx context.Context, modalityID uuid.UUID, limit int) ([]model.EligibilityCheck, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, athlete_id, modality_id, eligible, messages, extracted_data, duration_ms, checked_at
		 FROM eligibility_checks
		 WHERE modality_id = $1
		 ORDER BY checked_at DESC
		 LIMIT $2`, modalityID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []model.EligibilityCheck
	for rows.Next() {
		var check model.EligibilityCheck
		var messages []byte
		if err := rows.Scan(&check.ID, &check.AthleteID, &check.ModalityID, &check.Eligible, &messages, &check.ExtractedData, &check.DurationMs, &check.CheckedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(messages, &check.Messages); err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, rows.Err()
}
