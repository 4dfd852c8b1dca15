package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/repository"
)

// ModalityService handles modality business logic.
type ModalityService struct {
	modalityRepo *repository.ModalityRepository
	eventService *EventService
}

// NewModalityService creates a new ModalityService.
func NewModalityService(modalityRepo *repository.ModalityRepository, eventService *EventService) *ModalityService {
	return &ModalityService{modalityRepo: modalityRepo, eventService: eventService}
}

// GetByID retrieves a modality by ID.
func (s *ModalityService) GetByID(ctx context.Context, id uuid.UUID) (*model.Modality, error) {
	return s.modalityRepo.GetByID(ctx, id)
}

// Create adds a modality to an event after verifying event ownership.
func (s *ModalityService) Create(ctx context.Context, modality *model.Modality, organizerID int) error {
	if _, err := s.eventService.GetOwned(ctx, modality.EventID, organizerID); err != nil {
		return err
	}
	return s.modalityRepo.Create(ctx, modality)
}

// Update modifies a modality after verifying event ownership.
func (s *ModalityService) Update(ctx context.Context, modality *model.Modality, organizerID int) error {
	current, err := s.modalityRepo.GetByID(ctx, modality.ID)
	if err != nil {
		return err
	}
	if _, err := s.eventService.GetOwned(ctx, current.EventID, organizerID); err != nil {
		return err
	}
	return s.modalityRepo.Update(ctx, modality)
}

// Delete removes a modality after verifying event ownership.
func (s *ModalityService) Delete(ctx context.Context, id uuid.UUID, organizerID int) error {
	modality, err := s.modalityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.eventService.GetOwned(ctx, modality.EventID, organizerID); err != nil {
		return err
	}
	return s.modalityRepo.Delete(ctx, id, modality.EventID)
}

// VerifyOwnership checks that a modality belongs to an event owned by the
// organizer and returns it.
func (s *ModalityService) VerifyOwnership(ctx context.Context, id uuid.UUID, organizerID int) (*model.Modality, error) {
	modality, err := s.modalityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.eventService.GetOwned(ctx, modality.EventID, organizerID); err != nil {
		return nil, err
	}
	return modality, nil
}
