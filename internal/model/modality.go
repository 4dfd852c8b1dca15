package model

import (
	"time"

	"github.com/google/uuid"
)

// Modality is a race distance/category inside an event (5km, 10km, 21km...).
// NextBib is the per-modality bib number sequence cursor.
type Modality struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	Nome        string    `json:"nome"`
	DistanciaKm float64   `json:"distancia_km"`
	Capacidade  int       `json:"capacidade"`
	NextBib     int       `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateModalityRequest is the payload for creating a modality.
type CreateModalityRequest struct {
	Nome        string  `json:"nome" binding:"required,min=2,max=80"`
	DistanciaKm float64 `json:"distancia_km" binding:"required,gt=0"`
	Capacidade  int     `json:"capacidade" binding:"required,min=1"`
}

// UpdateModalityRequest is the payload for updating a modality.
type UpdateModalityRequest struct {
	Nome        string   `json:"nome" binding:"omitempty,min=2,max=80"`
	DistanciaKm *float64 `json:"distancia_km" binding:"omitempty,gt=0"`
	Capacidade  *int     `json:"capacidade" binding:"omitempty,min=1"`
}
