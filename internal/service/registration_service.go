package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/velocita/velocita-backend/internal/config"
	"github.com/velocita/velocita-backend/internal/eligibility"
	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/repository"
	ws "github.com/velocita/velocita-backend/internal/websocket"
)

// Registration flow errors.
var (
	ErrEventNotOpen        = errors.New("event is not open for registrations")
	ErrModalityFull        = errors.New("modality capacity exhausted")
	ErrAlreadyRegistered   = errors.New("athlete already registered in modality")
	ErrRegistrationNotOpen = errors.New("registration is not active")
)

// NotEligibleError carries the eligibility verdict messages back to the
// handler, which renders them as a 403 with the ATLETA_NAO_ELEGIVEL code.
type NotEligibleError struct {
	Messages []string
}

func (e *NotEligibleError) Error() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return "athlete not eligible"
}

// RegistrationService orchestrates the registration workflow: it loads the
// modality's configured rules, runs the eligibility engine and, on a positive
// verdict, creates the registration with an atomically assigned bib number.
type RegistrationService struct {
	regRepo      *repository.RegistrationRepository
	modalityRepo *repository.ModalityRepository
	eventRepo    *repository.EventRepository
	ruleRepo     *repository.EligibilityRuleRepository
	athleteSvc   *AthleteService
	engine       *eligibility.Engine
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	regRepo *repository.RegistrationRepository,
	modalityRepo *repository.ModalityRepository,
	eventRepo *repository.EventRepository,
	ruleRepo *repository.EligibilityRuleRepository,
	athleteSvc *AthleteService,
	engine *eligibility.Engine,
	rdb *redis.Client,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		regRepo:      regRepo,
		modalityRepo: modalityRepo,
		eventRepo:    eventRepo,
		ruleRepo:     ruleRepo,
		athleteSvc:   athleteSvc,
		engine:       engine,
		rdb:          rdb,
		log:          log.With().Str("component", "registration_service").Logger(),
	}
}

// Register runs the full registration workflow for an athlete joining a
// modality. The eligibility check is a single synchronous call; its verdict
// decides whether the registration is created at all.
func (s *RegistrationService) Register(ctx context.Context, athleteID int, modalityID uuid.UUID) (*model.Registration, error) {
	modality, err := s.modalityRepo.GetByID(ctx, modalityID)
	if err != nil {
		return nil, fmt.Errorf("get modality: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, modality.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Status != model.EventStatusPublished {
		return nil, ErrEventNotOpen
	}

	already, err := s.regRepo.HasConfirmed(ctx, athleteID, modalityID)
	if err != nil {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}
	if already {
		return nil, ErrAlreadyRegistered
	}

	confirmed, err := s.modalityRepo.CountConfirmed(ctx, modalityID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	if confirmed >= modality.Capacidade {
		return nil, ErrModalityFull
	}

	athlete, err := s.athleteSvc.GetByID(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("get athlete: %w", err)
	}

	result, durationMs, err := s.runEligibilityCheck(ctx, athlete, modalityID)
	if err != nil {
		return nil, err
	}

	s.enqueueAudit(ctx, athlete.ID, modalityID, result, durationMs)

	if !result.Eligible {
		s.publishMonitorEvent(ctx, event.ID, modalityID, athlete.CPF, 0, ws.EventRegistrationRejected, false)
		return nil, &NotEligibleError{Messages: result.Messages}
	}

	var extracted []byte
	if len(result.ExtractedData) > 0 {
		if extracted, err = json.Marshal(result.ExtractedData); err != nil {
			return nil, fmt.Errorf("marshal extracted data: %w", err)
		}
	}

	// Bib assignment and insert share a transaction so a failed insert never
	// burns a bib number.
	tx, err := s.regRepo.Pool().Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	bib, err := s.modalityRepo.NextBib(ctx, tx, modalityID)
	if err != nil {
		return nil, fmt.Errorf("assign bib: %w", err)
	}

	reg := &model.Registration{
		AthleteID:     athlete.ID,
		ModalityID:    modalityID,
		Status:        model.RegistrationStatusConfirmed,
		BibNumber:     bib,
		ExtractedData: extracted,
	}
	if err := s.regRepo.CreateTx(ctx, tx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.log.Info().
		Str("cpf", eligibility.MaskCPF(athlete.CPF)).
		Str("modality_id", modalityID.String()).
		Int("bib", bib).
		Msg("registration confirmed")

	s.publishMonitorEvent(ctx, event.ID, modalityID, athlete.CPF, bib, ws.EventRegistrationCreated, true)

	return reg, nil
}

// ListByAthlete retrieves the athlete's own registrations.
func (s *RegistrationService) ListByAthlete(ctx context.Context, athleteID int) ([]model.Registration, error) {
	return s.regRepo.ListByAthlete(ctx, athleteID)
}

// Cancel cancels an athlete's own registration. The bib number is not
// returned to the pool.
func (s *RegistrationService) Cancel(ctx context.Context, id uuid.UUID, athleteID int) error {
	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reg.AthleteID != athleteID {
		return pgx.ErrNoRows
	}
	if reg.Status != model.RegistrationStatusConfirmed {
		return ErrRegistrationNotOpen
	}

	if err := s.regRepo.Cancel(ctx, id, athleteID); err != nil {
		return err
	}

	if modality, err := s.modalityRepo.GetByID(ctx, reg.ModalityID); err == nil {
		if athlete, err := s.athleteSvc.GetByID(ctx, athleteID); err == nil {
			s.publishMonitorEvent(ctx, modality.EventID, reg.ModalityID, athlete.CPF, reg.BibNumber, ws.EventRegistrationCancelled, true)
		}
	}
	return nil
}

// ListByModality retrieves the registrations of a modality for organizers.
func (s *RegistrationService) ListByModality(ctx context.Context, modalityID uuid.UUID) ([]model.Registration, error) {
	return s.regRepo.ListByModality(ctx, modalityID)
}

// runEligibilityCheck loads and decodes the modality's stored rules and runs
// the engine. Rules whose stored config no longer decodes are skipped with an
// error log instead of blocking every registration of the modality.
func (s *RegistrationService) runEligibilityCheck(ctx context.Context, athlete *model.Athlete, modalityID uuid.UUID) (eligibility.Result, int64, error) {
	stored, err := s.ruleRepo.ListByModality(ctx, modalityID)
	if err != nil {
		return eligibility.Result{}, 0, fmt.Errorf("list rules: %w", err)
	}

	rules := make([]eligibility.Rule, 0, len(stored))
	for _, doc := range stored {
		rule, err := DecodeRule(doc)
		if err != nil {
			s.log.Error().Err(err).Str("rule_id", doc.ID.String()).Msg("stored rule config no longer decodes, skipping")
			continue
		}
		rules = append(rules, rule)
	}

	start := time.Now()
	result := s.engine.ExecuteCheck(ctx, s.athleteSvc.CheckData(athlete), rules)
	return result, time.Since(start).Milliseconds(), nil
}

// enqueueAudit pushes the check outcome onto the Redis audit queue; the audit
// worker persists it. Audit loss is logged but never fails a registration.
func (s *RegistrationService) enqueueAudit(ctx context.Context, athleteID int, modalityID uuid.UUID, result eligibility.Result, durationMs int64) {
	check := model.EligibilityCheck{
		AthleteID:  athleteID,
		ModalityID: modalityID,
		Eligible:   result.Eligible,
		Messages:   result.Messages,
		DurationMs: durationMs,
		CheckedAt:  time.Now().UTC(),
	}
	if len(result.ExtractedData) > 0 {
		if extracted, err := json.Marshal(result.ExtractedData); err == nil {
			check.ExtractedData = extracted
		}
	}

	payload, err := json.Marshal(check)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal audit payload")
		return
	}
	if err := s.rdb.LPush(ctx, config.WorkerKey.EligibilityAuditQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("enqueue eligibility audit failed")
	}
}

// publishMonitorEvent pushes a live event to organizer dashboards. Best
// effort only.
func (s *RegistrationService) publishMonitorEvent(ctx context.Context, eventID, modalityID uuid.UUID, cpf string, bib int, kind ws.Event, eligible bool) {
	payload, err := json.Marshal(ws.MonitorEvent{
		Event:      kind,
		EventID:    eventID.String(),
		ModalityID: modalityID.String(),
		AthleteCPF: eligibility.MaskCPF(cpf),
		BibNumber:  bib,
		Eligible:   eligible,
	})
	if err != nil {
		return
	}
	channel := config.CacheKey.EventMonitorChannel(eventID.String())
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("channel", channel).Msg("publish monitor event failed")
	}
}
