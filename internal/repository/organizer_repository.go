package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velocita/velocita-backend/internal/model"
)

// OrganizerRepository handles organizer data access.
type OrganizerRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizerRepository creates a new OrganizerRepository.
func NewOrganizerRepository(pool *pgxpool.Pool) *OrganizerRepository {
	return &OrganizerRepository{pool: pool}
}

// Create inserts a new organizer account.
func (r *OrganizerRepository) Create(ctx context.Context, organizer *model.Organizer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO organizers (nome, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		organizer.Nome, organizer.Email, organizer.PasswordHash,
	).Scan(&organizer.ID, &organizer.CreatedAt, &organizer.UpdatedAt)
}

// GetByID retrieves an organizer by ID.
func (r *OrganizerRepository) GetByID(ctx context.Context, id int) (*model.Organizer, error) {
	var o model.Organizer
	err := r.pool.QueryRow(ctx,
		`SELECT id, nome, email, password_hash, created_at, updated_at
		 FROM organizers WHERE id = $1`, id,
	).Scan(&o.ID, &o.Nome, &o.Email, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByEmail retrieves an organizer by email.
func (r *OrganizerRepository) GetByEmail(ctx context.Context, email string) (*model.Organizer, error) {
	var o model.Organizer
	err := r.pool.QueryRow(ctx,
		`SELECT id, nome, email, password_hash, created_at, updated_at
		 FROM organizers WHERE email = $1`, email,
	).Scan(&o.ID, &o.Nome, &o.Email, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
