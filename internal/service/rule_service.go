package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/velocita/velocita-backend/internal/eligibility"
	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/repository"
)

// ErrInvalidRuleConfig wraps all rule-config validation failures.
var ErrInvalidRuleConfig = errors.New("invalid rule config")

// ruleParamNames are the athlete fields a rule may reference in
// request.params and URL placeholders.
var ruleParamNames = map[string]struct{}{
	"cpf":            {},
	"nome":           {},
	"email":          {},
	"dataNascimento": {},
	"sexo":           {},
}

// RuleService handles eligibility rule configuration for modalities.
type RuleService struct {
	ruleRepo        *repository.EligibilityRuleRepository
	modalityService *ModalityService
}

// NewRuleService creates a new RuleService.
func NewRuleService(ruleRepo *repository.EligibilityRuleRepository, modalityService *ModalityService) *RuleService {
	return &RuleService{ruleRepo: ruleRepo, modalityService: modalityService}
}

// ListByModality retrieves the rules of a modality in evaluation order,
// verifying organizer ownership.
func (s *RuleService) ListByModality(ctx context.Context, modalityID uuid.UUID, organizerID int) ([]model.EligibilityRule, error) {
	if _, err := s.modalityService.VerifyOwnership(ctx, modalityID, organizerID); err != nil {
		return nil, err
	}
	return s.ruleRepo.ListByModality(ctx, modalityID)
}

// Create validates and stores a new rule.
func (s *RuleService) Create(ctx context.Context, rule *model.EligibilityRule, organizerID int) error {
	if _, err := s.modalityService.VerifyOwnership(ctx, rule.ModalityID, organizerID); err != nil {
		return err
	}
	if err := ValidateRuleConfig(rule.Config); err != nil {
		return err
	}
	return s.ruleRepo.Create(ctx, rule)
}

// Update validates and modifies an existing rule.
func (s *RuleService) Update(ctx context.Context, rule *model.EligibilityRule, organizerID int) error {
	if _, err := s.modalityService.VerifyOwnership(ctx, rule.ModalityID, organizerID); err != nil {
		return err
	}
	if len(rule.Config) > 0 {
		if err := ValidateRuleConfig(rule.Config); err != nil {
			return err
		}
	}
	return s.ruleRepo.Update(ctx, rule)
}

// Delete removes a rule.
func (s *RuleService) Delete(ctx context.Context, id, modalityID uuid.UUID, organizerID int) error {
	if _, err := s.modalityService.VerifyOwnership(ctx, modalityID, organizerID); err != nil {
		return err
	}
	return s.ruleRepo.Delete(ctx, id, modalityID)
}

// DecodeRule converts a stored rule document into the engine shape.
func DecodeRule(stored model.EligibilityRule) (eligibility.Rule, error) {
	var rule eligibility.Rule
	if err := json.Unmarshal(stored.Config, &rule); err != nil {
		return eligibility.Rule{}, fmt.Errorf("decode rule %s: %w", stored.ID, err)
	}
	return rule, nil
}

// ValidateRuleConfig checks a rule document before it is stored, so broken
// configs are rejected at write time instead of surprising athletes at
// registration time. Evaluation-time forward compatibility (skipping unknown
// rule types) is the engine's concern; the admin surface only accepts the
// types it knows how to build.
func ValidateRuleConfig(raw json.RawMessage) error {
	var rule eligibility.Rule
	if err := json.Unmarshal(raw, &rule); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRuleConfig, err)
	}

	if rule.Type != eligibility.RuleTypeAPIRest {
		return fmt.Errorf("%w: tipo desconhecido %q", ErrInvalidRuleConfig, rule.Type)
	}

	if rule.Request.URL == "" {
		return fmt.Errorf("%w: request.url é obrigatória", ErrInvalidRuleConfig)
	}
	if u, err := url.Parse(rule.Request.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: request.url deve ser http(s)", ErrInvalidRuleConfig)
	}

	switch rule.Request.Method {
	case "", http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("%w: método %q não suportado", ErrInvalidRuleConfig, rule.Request.Method)
	}

	for _, param := range rule.Request.Params {
		if _, ok := ruleParamNames[param]; !ok {
			return fmt.Errorf("%w: parâmetro desconhecido %q", ErrInvalidRuleConfig, param)
		}
	}

	if rule.Request.TimeoutMs < 0 || rule.Request.TimeoutMs > eligibility.MaxTimeoutMs {
		return fmt.Errorf("%w: timeout_ms fora do intervalo permitido", ErrInvalidRuleConfig)
	}

	if auth := rule.Request.Auth; auth != nil {
		switch auth.Type {
		case "", eligibility.AuthNone, eligibility.AuthAPIKeyHeader, eligibility.AuthAPIKeyQuery, eligibility.AuthBearerToken:
		default:
			return fmt.Errorf("%w: tipo de autenticação %q desconhecido", ErrInvalidRuleConfig, auth.Type)
		}
	}

	switch rule.Validation.Mode {
	case "", eligibility.ModeHTTPStatus:
	case eligibility.ModeJSONCompare:
		if rule.Validation.Path == "" {
			return fmt.Errorf("%w: validation.path é obrigatório no modo json_compare", ErrInvalidRuleConfig)
		}
	default:
		return fmt.Errorf("%w: modo de validação %q desconhecido", ErrInvalidRuleConfig, rule.Validation.Mode)
	}

	switch rule.OnError {
	case "", eligibility.OnErrorBlock, eligibility.OnErrorAllow:
	default:
		return fmt.Errorf("%w: on_error %q desconhecido", ErrInvalidRuleConfig, rule.OnError)
	}

	return nil
}
