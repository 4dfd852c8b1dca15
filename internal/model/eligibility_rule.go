package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EligibilityRule is one configured external check attached to a modality.
// Config holds the engine-shaped rule document (type, request, validation,
// on_error, error_message, save_fields) as stored in the JSONB column; rules
// are evaluated in Position order.
type EligibilityRule struct {
	ID         uuid.UUID       `json:"id"`
	ModalityID uuid.UUID       `json:"modality_id"`
	Nome       string          `json:"nome"`
	Position   int             `json:"position"`
	Config     json.RawMessage `json:"config"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateEligibilityRuleRequest is the payload for adding a rule to a modality.
type CreateEligibilityRuleRequest struct {
	Nome     string          `json:"nome" binding:"required,min=2,max=120"`
	Position *int            `json:"position" binding:"omitempty,min=0"`
	Config   json.RawMessage `json:"config" binding:"required"`
}

// UpdateEligibilityRuleRequest is the payload for updating a rule.
type UpdateEligibilityRuleRequest struct {
	Nome     string          `json:"nome" binding:"omitempty,min=2,max=120"`
	Position *int            `json:"position" binding:"omitempty,min=0"`
	Config   json.RawMessage `json:"config" binding:"omitempty"`
}
