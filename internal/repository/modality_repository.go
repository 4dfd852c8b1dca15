package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velocita/velocita-backend/internal/model"
)

// ModalityRepository handles modality data access.
type ModalityRepository struct {
	pool *pgxpool.Pool
}

// NewModalityRepository creates a new ModalityRepository.
func NewModalityRepository(pool *pgxpool.Pool) *ModalityRepository {
	return &ModalityRepository{pool: pool}
}

// Create inserts a new modality for an event.
func (r *ModalityRepository) Create(ctx context.Context, modality *model.Modality) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO modalities (event_id, nome, distancia_km, capacidade)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, next_bib, created_at, updated_at`,
		modality.EventID, modality.Nome, modality.DistanciaKm, modality.Capacidade,
	).Scan(&modality.ID, &modality.NextBib, &modality.CreatedAt, &modality.UpdatedAt)
}

// GetByID retrieves a modality by ID.
func (r *ModalityRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Modality, error) {
	var m model.Modality
	err := r.pool.QueryRow(ctx,
		`SELECT id, event_id, nome, distancia_km, capacidade, next_bib, created_at, updated_at
		 FROM modalities WHERE id = $1`, id,
	).Scan(&m.ID, &m.EventID, &m.Nome, &m.DistanciaKm, &m.Capacidade, &m.NextBib, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByEvent retrieves all modalities of an event.
func (r *ModalityRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]model.Modality, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, event_id, nome, distancia_km, capacidade, next_bib, created_at, updated_at
		 FROM modalities WHERE event_id = $1 ORDER BY distancia_km`, eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modalities []model.Modality
	for rows.Next() {
		var m model.Modality
		if err := rows.Scan(&m.ID, &m.EventID, &m.Nome, &m.DistanciaKm, &m.Capacidade, &m.NextBib, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		modalities = append(modalities, m)
	}
	return modalities, rows.Err()
}

// Update modifies an existing modality.
func (r *ModalityRepository) Update(ctx context.Context, modality *model.Modality) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE modalities
		 SET nome = $1, distancia_km = $2, capacidade = $3, updated_at = now()
		 WHERE id = $4`,
		modality.Nome, modality.DistanciaKm, modality.Capacidade, modality.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a modality by ID, ensuring it belongs to the given event.
func (r *ModalityRepository) Delete(ctx context.Context, id, eventID uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM modalities WHERE id = $1 AND event_id = $2`, id, eventID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// NextBib atomically advances and returns the modality's bib sequence.
func (r *ModalityRepository) NextBib(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error) {
	var bib int
	err := tx.QueryRow(ctx,
		`UPDATE modalities SET next_bib = next_bib + 1 WHERE id = $1 RETURNING next_bib`, id,
	).Scan(&bib)
	return bib, err
}

// CountConfirmed returns the number of confirmed registrations of a modality,
// used for capacity enforcement.
func (r *ModalityRepository) CountConfirmed(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE modality_id = $1 AND status = $2`,
		id, model.RegistrationStatusConfirmed,
	).Scan(&count)
	return count, err
}
