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

// EventHandler handles event CRUD and lifecycle endpoints.
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListPublished godoc
// GET /api/v1/events
// Public catalog of published events.
func (h *EventHandler) ListPublished(c *gin.Context) {
	events, err := h.eventService.ListPublished(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// GetPublished godoc
// GET /api/v1/events/:eventId
// Public event detail with its modalities. Draft events are not exposed.
func (h *EventHandler) GetPublished(c *gin.Context) {
	id, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	if event.Status == model.EventStatusDraft {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	modalities, err := h.eventService.ListModalities(c.Request.Context(), event.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"event":      event,
		"modalities": modalities,
	})
}

// Create godoc
// POST /api/v1/organizer/events
func (h *EventHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	event := &model.Event{
		OrganizerID: claims.UserID,
		Nome:        req.Nome,
		Cidade:      req.Cidade,
		UF:          req.UF,
		Data:        req.Data,
		Status:      model.EventStatusDraft,
	}
	if err := h.eventService.Create(c.Request.Context(), event); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"event": event})
}

// ListMine godoc
// GET /api/v1/organizer/events
func (h *EventHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)

	events, err := h.eventService.ListByOrganizer(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// Get godoc
// GET /api/v1/organizer/events/:eventId
func (h *EventHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	event, err := h.eventService.GetOwned(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": event})
}

// Update godoc
// PUT /api/v1/organizer/events/:eventId
func (h *EventHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var req model.UpdateEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	event, err := h.eventService.GetOwned(c.Request.Context(), id, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	if req.Nome != "" {
		event.Nome = req.Nome
	}
	if req.Cidade != "" {
		event.Cidade = req.Cidade
	}
	if req.UF != "" {
		event.UF = req.UF
	}
	if req.Data != nil {
		event.Data = *req.Data
	}

	if err := h.eventService.Update(c.Request.Context(), event, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": event})
}

// Publish godoc
// POST /api/v1/organizer/events/:eventId/publish
// Opens the event for registrations.
func (h *EventHandler) Publish(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	if err := h.eventService.Publish(c.Request.Context(), id, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": model.EventStatusPublished})
}

// Close godoc
// POST /api/v1/organizer/events/:eventId/close
// Closes the event for new registrations.
func (h *EventHandler) Close(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	if err := h.eventService.Close(c.Request.Context(), id, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": model.EventStatusClosed})
}

// Delete godoc
// DELETE /api/v1/organizer/events/:eventId
func (h *EventHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
