package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RegistrationStatus enumerates the states of a registration.
type RegistrationStatus string

const (
	RegistrationStatusConfirmed RegistrationStatus = "CONFIRMADA"
	RegistrationStatusCancelled RegistrationStatus = "CANCELADA"
)

// Registration links an athlete to a modality with an assigned bib number.
// ExtractedData carries whatever the eligibility rules captured from external
// responses, persisted for audit/export.
type Registration struct {
	ID            uuid.UUID          `json:"id"`
	AthleteID     int                `json:"athlete_id"`
	ModalityID    uuid.UUID          `json:"modality_id"`
	Status        RegistrationStatus `json:"status"`
	BibNumber     int                `json:"bib_number"`
	ExtractedData json.RawMessage    `json:"extracted_data,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CreateRegistrationRequest is the payload for registering into a modality.
type CreateRegistrationRequest struct {
	ModalityID uuid.UUID `json:"modality_id" binding:"required"`
}
