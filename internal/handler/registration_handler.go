package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velocita/velocita-backend/internal/middleware"
	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/repository"
	"github.com/velocita/velocita-backend/internal/response"
	"github.com/velocita/velocita-backend/internal/service"
	"github.com/velocita/velocita-backend/internal/validator"
)

// RegistrationHandler handles registration endpoints and the organizer's
// eligibility-check audit listing.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
	modalityService     *service.ModalityService
	checkRepo           *repository.EligibilityCheckRepository
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(
	registrationService *service.RegistrationService,
	modalityService *service.ModalityService,
	checkRepo *repository.EligibilityCheckRepository,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		modalityService:     modalityService,
		checkRepo:           checkRepo,
	}
}

// Register godoc
// POST /api/v1/registrations
// Runs the eligibility check and, on a positive verdict, confirms the
// registration with an assigned bib number. A negative verdict is a 403
// carrying every failing rule's message.
func (h *RegistrationHandler) Register(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateRegistrationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	reg, err := h.registrationService.Register(c.Request.Context(), claims.UserID, req.ModalityID)
	if err != nil {
		var notEligible *service.NotEligibleError
		switch {
		case errors.As(err, &notEligible):
			response.FailWithMessages(c, http.StatusForbidden, response.ErrAthleteNotEligible, notEligible.Messages)
		case errors.Is(err, service.ErrEventNotOpen):
			response.Fail(c, http.StatusConflict, response.ErrEventNotPublished)
		case errors.Is(err, service.ErrModalityFull):
			response.Fail(c, http.StatusConflict, response.ErrModalityFull)
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyRegistered)
		default:
			failFromError(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"registration": reg})
}

// ListMine godoc
// GET /api/v1/registrations
// Lists the authenticated athlete's registrations.
func (h *RegistrationHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)

	regs, err := h.registrationService.ListByAthlete(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"registrations": regs})
}

// Cancel godoc
// POST /api/v1/registrations/:registrationId/cancel
// Cancels the athlete's own registration. The bib number is not reused.
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseUUIDParam(c, "registrationId")
	if !ok {
		return
	}

	if err := h.registrationService.Cancel(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, service.ErrRegistrationNotOpen) {
			response.Fail(c, http.StatusConflict, response.ErrRegistrationNotActive)
			return
		}
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListByModality godoc
// GET /api/v1/organizer/modalities/:modalityId/registrations
// Organizer view of a modality's registrations.
func (h *RegistrationHandler) ListByModality(c *gin.Context) {
	claims := middleware.GetClaims(c)
	modalityID, ok := parseUUIDParam(c, "modalityId")
	if !ok {
		return
	}

	if _, err := h.modalityService.VerifyOwnership(c.Request.Context(), modalityID, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}

	regs, err := h.registrationService.ListByModality(c.Request.Context(), modalityID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"registrations": regs})
}

// ListChecks godoc
// GET /api/v1/organizer/modalities/:modalityId/checks?limit=50
// Organizer view of the modality's eligibility-check audit trail, newest
// first.
func (h *RegistrationHandler) ListChecks(c *gin.Context) {
	claims := middleware.GetClaims(c)
	modalityID, ok := parseUUIDParam(c, "modalityId")
	if !ok {
		return
	}

	if _, err := h.modalityService.VerifyOwnership(c.Request.Context(), modalityID, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}

	checks, err := h.checkRepo.ListByModality(c.Request.Context(), modalityID, limit)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"checks": checks})
}
