package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velocita/velocita-backend/internal/model"
)

// AthleteRepository handles athlete data access.
type AthleteRepository struct {
	pool *pgxpool.Pool
}

// NewAthleteRepository creates a new AthleteRepository.
func NewAthleteRepository(pool *pgxpool.Pool) *AthleteRepository {
	return &AthleteRepository{pool: pool}
}

// Create inserts a new athlete account.
func (r *AthleteRepository) Create(ctx context.Context, athlete *model.Athlete) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO athletes (cpf, nome, email, data_nascimento, sexo, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		athlete.CPF, athlete.Nome, athlete.Email, athlete.DataNascimento, athlete.Sexo, athlete.PasswordHash,
	).Scan(&athlete.ID, &athlete.CreatedAt, &athlete.UpdatedAt)
}

// GetByID retrieves an athlete by ID.
func (r *AthleteRepository) GetByID(ctx context.Context, id int) (*model.Athlete, error) {
	var a model.Athlete
	err := r.pool.QueryRow(ctx,
		`SELECT id, cpf, nome, email, data_nascimento, sexo, password_hash, created_at, updated_at
		 FROM athletes WHERE id = $1`, id,
	).Scan(&a.ID, &a.CPF, &a.Nome, &a.Email, &a.DataNascimento, &a.Sexo, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByCPF retrieves an athlete by the digits-only CPF.
func (r *AthleteRepository) GetByCPF(ctx context.Context, cpf string) (*model.Athlete, error) {
	var a model.Athlete
	err := r.pool.QueryRow(ctx,
		`SELECT id, cpf, nome, email, data_nascimento, sexo, password_hash, created_at, updated_at
		 FROM athletes WHERE cpf = $1`, cpf,
	).Scan(&a.ID, &a.CPF, &a.Nome, &a.Email, &a.DataNascimento, &a.Sexo, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
