package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EligibilityCheck is an audit record of one engine run for a registration
// attempt, persisted asynchronously by the audit worker.
type EligibilityCheck struct {
	ID            int64           `json:"id"`
	AthleteID     int             `json:"athlete_id"`
	ModalityID    uuid.UUID       `json:"modality_id"`
	Eligible      bool            `json:"eligible"`
	Messages      []string        `json:"messages"`
	ExtractedData json.RawMessage `json:"extracted_data,omitempty"`
	DurationMs    int64           `json:"duration_ms"`
	CheckedAt     time.Time       `json:"checked_at"`
}
