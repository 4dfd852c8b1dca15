package service

import (
	"context"

	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/repository"
)

// OrganizerService handles organizer account business logic.
type OrganizerService struct {
	organizerRepo *repository.OrganizerRepository
}

// NewOrganizerService creates a new OrganizerService.
func NewOrganizerService(organizerRepo *repository.OrganizerRepository) *OrganizerService {
	return &OrganizerService{organizerRepo: organizerRepo}
}

// GetByID retrieves an organizer by ID.
func (s *OrganizerService) GetByID(ctx context.Context, id int) (*model.Organizer, error) {
	return s.organizerRepo.GetByID(ctx, id)
}

// GetByEmail retrieves an organizer by email.
func (s *OrganizerService) GetByEmail(ctx context.Context, email string) (*model.Organizer, error) {
	return s.organizerRepo.GetByEmail(ctx, email)
}

// Create stores a new organizer account.
func (s *OrganizerService) Create(ctx context.Context, organizer *model.Organizer) error {
	return s.organizerRepo.Create(ctx, organizer)
}
