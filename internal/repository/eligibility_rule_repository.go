package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velocita/velocita-backend/internal/model"
)

// EligibilityRuleRepository handles eligibility rule data access.
type EligibilityRuleRepository struct {
	pool *pgxpool.Pool
}

// NewEligibilityRuleRepository creates a new EligibilityRuleRepository.
func NewEligibilityRuleRepository(pool *pgxpool.Pool) *EligibilityRuleRepository {
	return &EligibilityRuleRepository{pool: pool}
}

// ListByModality retrieves all rules of a modality in evaluation order.
func (r *EligibilityRuleRepository) ListByModality(ctx context.Context, modalityID uuid.UUID) ([]model.EligibilityRule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, modality_id, nome, position, config, created_at, updated_at
		 FROM eligibility_rules
		 WHERE modality_id = $1
		 ORDER BY position, created_at`, modalityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []model.EligibilityRule
	for rows.Next() {
		var rule model.EligibilityRule
		if err := rows.Scan(&rule.ID, &rule.ModalityID, &rule.Nome, &rule.Position, &rule.Config, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Create inserts a new rule.
func (r *EligibilityRuleRepository) Create(ctx context.Context, rule *model.EligibilityRule) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO eligibility_rules (modality_id, nome, position, config)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		rule.ModalityID, rule.Nome, rule.Position, rule.Config,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

// Update modifies an existing rule, ensuring it belongs to the modality.
func (r *EligibilityRuleRepository) Update(ctx context.Context, rule *model.EligibilityRule) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE eligibility_rules
		 SET nome = $1, position = $2, config = $3, updated_at = now()
		 WHERE id = $4 AND modality_id = $5`,
		rule.Nome, rule.Position, rule.Config, rule.ID, rule.ModalityID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a rule by ID, ensuring it belongs to the modality.
func (r *EligibilityRuleRepository) Delete(ctx context.Context, id, modalityID uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM eligibility_rules WHERE id = $1 AND modality_id = $2`, id, modalityID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
