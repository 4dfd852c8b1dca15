package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velocita/velocita-backend/internal/model"
)

// RegistrationRepository handles registration data access.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

// Pool exposes the underlying pool for transactional flows owned by services.
func (r *RegistrationRepository) Pool() *pgxpool.Pool {
	return r.pool
}

// CreateTx inserts a registration inside an existing transaction (used
// together with ModalityRepository.NextBib for atomic bib assignment).
func (r *RegistrationRepository) CreateTx(ctx context.Context, tx pgx.Tx, reg *model.Registration) error {
	return tx.QueryRow(ctx,
		`INSERT INTO registrations (athlete_id, modality_id, status, bib_number, extracted_data)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		reg.AthleteID, reg.ModalityID, reg.Status, reg.BibNumber, reg.ExtractedData,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

// GetByID retrieves a registration by ID.
func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	var reg model.Registration
	err := r.pool.QueryRow(ctx,
		`SELECT id, athlete_id, modality_id, status, bib_number, extracted_data, created_at, updated_at
		 FROM registrations WHERE id = $1`, id,
	).Scan(&reg.ID, &reg.AthleteID, &reg.ModalityID, &reg.Status, &reg.BibNumber, &reg.ExtractedData, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListByAthlete retrieves all registrations of an athlete.
func (r *RegistrationRepository) ListByAthlete(ctx context.Context, athleteID int) ([]model.Registration, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, athlete_id, modality_id, status, bib_number, extracted_data, created_at, updated_at
		 FROM registrations WHERE athlete_id = $1 ORDER BY created_at DESC`, athleteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// ListByModality retrieves all registrations of a modality for the organizer
// listing and the audit/export feed.
func (r *RegistrationRepository) ListByModality(ctx context.Context, modalityID uuid.UUID) ([]model.Registration, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, athlete_id, modality_id, status, bib_number, extracted_data, created_at, updated_at
		 FROM registrations WHERE modality_id = $1 ORDER BY bib_number`, modalityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// HasConfirmed reports whether the athlete already holds a confirmed
// registration in the modality.
func (r *RegistrationRepository) HasConfirmed(ctx context.Context, athleteID int, modalityID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE athlete_id = $1 AND modality_id = $2 AND status = $3
		 )`, athleteID, modalityID, model.RegistrationStatusConfirmed,
	).Scan(&exists)
	return exists, err
}

// Cancel marks a registration as cancelled, ensuring athlete ownership.
func (r *RegistrationRepository) Cancel(ctx context.Context, id uuid.UUID, athleteID int) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE registrations
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND athlete_id = $3 AND status = $4`,
		model.RegistrationStatusCancelled, id, athleteID, model.RegistrationStatusConfirmed,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanRegistrations(rows pgx.Rows) ([]model.Registration, error) {
	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.AthleteID, &reg.ModalityID, &reg.Status, &reg.BibNumber, &reg.ExtractedData, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
