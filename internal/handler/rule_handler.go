package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velocita/velocita-backend/internal/middleware"
	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/response"
	"github.com/velocita/velocita-backend/internal/service"
	"github.com/velocita/velocita-backend/internal/validator"
)

// RuleHandler handles eligibility rule configuration on modalities.
type RuleHandler struct {
	ruleService *service.RuleService
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleService *service.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// List godoc
// GET /api/v1/organizer/modalities/:modalityId/rules
// Rules are returned in evaluation order.
func (h *RuleHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	modalityID, ok := parseUUIDParam(c, "modalityId")
	if !ok {
		return
	}

	rules, err := h.ruleService.ListByModality(c.Request.Context(), modalityID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

// Create godoc
// POST /api/v1/organizer/modalities/:modalityId/rules
func (h *RuleHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	modalityID, ok := parseUUIDParam(c, "modalityId")
	if !ok {
		return
	}

	var req model.CreateEligibilityRuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	rule := &model.EligibilityRule{
		ModalityID: modalityID,
		Nome:       req.Nome,
		Config:     req.Config,
	}
	if req.Position != nil {
		rule.Position = *req.Position
	}

	if err := h.ruleService.Create(c.Request.Context(), rule, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rule": rule})
}

// Update godoc
// PUT /api/v1/organizer/modalities/:modalityId/rules/:ruleId
func (h *RuleHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	modalityID, ok := parseUUIDParam(c, "modalityId")
	if !ok {
		return
	}
	ruleID, ok := parseUUIDParam(c, "ruleId")
	if !ok {
		return
	}

	var req model.UpdateEligibilityRuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	rules, err := h.ruleService.ListByModality(c.Request.Context(), modalityID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	var rule *model.EligibilityRule
	for i := range rules {
		if rules[i].ID == ruleID {
			rule = &rules[i]
			break
		}
	}
	if rule == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.Nome != "" {
		rule.Nome = req.Nome
	}
	if req.Position != nil {
		rule.Position = *req.Position
	}
	if len(req.Config) > 0 {
		rule.Config = req.Config
	}

	if err := h.ruleService.Update(c.Request.Context(), rule, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rule": rule})
}

// Delete godoc
// DELETE /api/v1/organizer/modalities/:modalityId/rules/:ruleId
func (h *RuleHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	modalityID, ok := parseUUIDParam(c, "modalityId")
	if !ok {
		return
	}
	ruleID, ok := parseUUIDParam(c, "ruleId")
	if !ok {
		return
	}

	if err := h.ruleService.Delete(c.Request.Context(), ruleID, modalityID, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
