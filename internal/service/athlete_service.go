package service

import (
	"context"
	"strings"
	"time"

	"github.com/velocita/velocita-backend/internal/eligibility"
	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/repository"
)

// AthleteService handles athlete account business logic.
type AthleteService struct {
	athleteRepo *repository.AthleteRepository
}

// NewAthleteService creates a new AthleteService.
func NewAthleteService(athleteRepo *repository.AthleteRepository) *AthleteService {
	return &AthleteService{athleteRepo: athleteRepo}
}

// GetByID retrieves an athlete by ID.
func (s *AthleteService) GetByID(ctx context.Context, id int) (*model.Athlete, error) {
	return s.athleteRepo.GetByID(ctx, id)
}

// GetByCPF retrieves an athlete by CPF; the input may be punctuated.
func (s *AthleteService) GetByCPF(ctx context.Context, cpf string) (*model.Athlete, error) {
	return s.athleteRepo.GetByCPF(ctx, NormalizeCPF(cpf))
}

// Create stores a new athlete account. The CPF is normalized to digits-only
// before persisting so lookups are canonical.
func (s *AthleteService) Create(ctx context.Context, athlete *model.Athlete) error {
	athlete.CPF = NormalizeCPF(athlete.CPF)
	return s.athleteRepo.Create(ctx, athlete)
}

// NormalizeCPF strips formatting punctuation from a CPF, keeping digits only.
func NormalizeCPF(cpf string) string {
	var b strings.Builder
	b.Grow(len(cpf))
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CheckData converts a stored athlete into the engine's check subject.
// Optional fields stay absent (nil) when not filled in.
func (s *AthleteService) CheckData(athlete *model.Athlete) eligibility.AthleteData {
	data := eligibility.AthleteData{
		CPF:  athlete.CPF,
		Nome: athlete.Nome,
	}
	if athlete.Email != nil {
		data.Email = athlete.Email
	}
	if athlete.DataNascimento != nil {
		nascimento := athlete.DataNascimento.Format(time.DateOnly)
		data.DataNascimento = &nascimento
	}
	if athlete.Sexo != nil {
		sexo := string(*athlete.Sexo)
		data.Sexo = &sexo
	}
	return data
}
