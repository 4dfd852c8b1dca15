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

// ModalityHandler handles modality CRUD under an organizer's events.
type ModalityHandler struct {
	modalityService *service.ModalityService
	eventService    *service.EventService
}

// NewModalityHandler creates a new ModalityHandler.
func NewModalityHandler(modalityService *service.ModalityService, eventService *service.EventService) *ModalityHandler {
	return &ModalityHandler{modalityService: modalityService, eventService: eventService}
}

// Create godoc
// POST /api/v1/organizer/events/:eventId/modalities
func (h *ModalityHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var req model.CreateModalityRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	modality := &model.Modality{
		EventID:     eventID,
		Nome:        req.Nome,
		DistanciaKm: req.DistanciaKm,
		Capacidade:  req.Capacidade,
	}
	if err := h.modalityService.Create(c.Request.Context(), modality, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"modality": modality})
}

// List godoc
// GET /api/v1/organizer/events/:eventId/modalities
func (h *ModalityHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	if _, err := h.eventService.GetOwned(c.Request.Context(), eventID, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}

	modalities, err := h.eventService.ListModalities(c.Request.Context(), eventID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"modalities": modalities})
}

// Update godoc
// PUT /api/v1/organizer/modalities/:modalityId
func (h *ModalityHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	modalityID, ok := parseUUIDParam(c, "modalityId")
	if !ok {
		return
	}

	var req model.UpdateModalityRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	modality, err := h.modalityService.VerifyOwnership(c.Request.Context(), modalityID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	if req.Nome != "" {
		modality.Nome = req.Nome
	}
	if req.DistanciaKm != nil {
		modality.DistanciaKm = *req.DistanciaKm
	}
	if req.Capacidade != nil {
		modality.Capacidade = *req.Capacidade
	}

	if err := h.modalityService.Update(c.Request.Context(), modality, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"modality": modality})
}

// Delete godoc
// DELETE /api/v1/organizer/modalities/:modalityId
func (h *ModalityHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	modalityID, ok := parseUUIDParam(c, "modalityId")
	if !ok {
		return
	}

	if err := h.modalityService.Delete(c.Request.Context(), modalityID, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
