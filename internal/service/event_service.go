package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/repository"
)

// ErrNotEventOwner is returned when an organizer touches an event they do
// not own.
var ErrNotEventOwner = errors.New("organizer does not own this event")

// EventService handles event business logic.
type EventService struct {
	eventRepo    *repository.EventRepository
	modalityRepo *repository.ModalityRepository
	log          zerolog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo *repository.EventRepository, modalityRepo *repository.ModalityRepository, log zerolog.Logger) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		modalityRepo: modalityRepo,
		log:          log.With().Str("component", "event_service").Logger(),
	}
}

// GetByID retrieves an event by ID.
func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// GetOwned retrieves an event and verifies organizer ownership.
func (s *EventService) GetOwned(ctx context.Context, id uuid.UUID, organizerID int) (*model.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, ErrNotEventOwner
	}
	return event, nil
}

// ListByOrganizer retrieves all events owned by an organizer.
func (s *EventService) ListByOrganizer(ctx context.Context, organizerID int) ([]model.Event, error) {
	return s.eventRepo.ListByOrganizer(ctx, organizerID)
}

// ListPublished retrieves the public catalog of published events.
func (s *EventService) ListPublished(ctx context.Context) ([]model.Event, error) {
	return s.eventRepo.ListPublished(ctx)
}

// ListModalities retrieves the modalities of an event.
func (s *EventService) ListModalities(ctx context.Context, eventID uuid.UUID) ([]model.Modality, error) {
	return s.modalityRepo.ListByEvent(ctx, eventID)
}

// Create stores a new event in DRAFT status.
func (s *EventService) Create(ctx context.Context, event *model.Event) error {
	event.Status = model.EventStatusDraft
	return s.eventRepo.Create(ctx, event)
}

// Update modifies an event after verifying ownership.
func (s *EventService) Update(ctx context.Context, event *model.Event, organizerID int) error {
	if _, err := s.GetOwned(ctx, event.ID, organizerID); err != nil {
		return err
	}
	return s.eventRepo.Update(ctx, event)
}

// Publish opens an event for registrations.
func (s *EventService) Publish(ctx context.Context, id uuid.UUID, organizerID int) error {
	if _, err := s.GetOwned(ctx, id, organizerID); err != nil {
		return err
	}
	if err := s.eventRepo.UpdateStatus(ctx, id, model.EventStatusPublished); err != nil {
		return err
	}
	s.log.Info().Str("event_id", id.String()).Msg("event published")
	return nil
}

// Close stops an event from accepting new registrations.
func (s *EventService) Close(ctx context.Context, id uuid.UUID, organizerID int) error {
	if _, err := s.GetOwned(ctx, id, organizerID); err != nil {
		return err
	}
	return s.eventRepo.UpdateStatus(ctx, id, model.EventStatusClosed)
}

// Delete removes an event after verifying ownership.
func (s *EventService) Delete(ctx context.Context, id uuid.UUID, organizerID int) error {
	if _, err := s.GetOwned(ctx, id, organizerID); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}
