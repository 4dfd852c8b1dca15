package model

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus enumerates the lifecycle states of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusClosed    EventStatus = "CLOSED"
	EventStatusArchived  EventStatus = "ARCHIVED"
)

// Event represents a race event owned by an organizer.
type Event struct {
	ID          uuid.UUID   `json:"id"`
	OrganizerID int         `json:"organizer_id"`
	Nome        string      `json:"nome"`
	Cidade      string      `json:"cidade"`
	UF          string      `json:"uf"`
	Data        time.Time   `json:"data"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Nome   string    `json:"nome" binding:"required,min=3,max=160"`
	Cidade string    `json:"cidade" binding:"required,min=2,max=80"`
	UF     string    `json:"uf" binding:"required,len=2"`
	Data   time.Time `json:"data" binding:"required"`
}

// UpdateEventRequest is the payload for updating an existing event.
type UpdateEventRequest struct {
	Nome   string     `json:"nome" binding:"omitempty,min=3,max=160"`
	Cidade string     `json:"cidade" binding:"omitempty,min=2,max=80"`
	UF     string     `json:"uf" binding:"omitempty,len=2"`
	Data   *time.Time `json:"data" binding:"omitempty"`
}
