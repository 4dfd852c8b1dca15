package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/velocita/velocita-backend/internal/middleware"
	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/response"
	"github.com/velocita/velocita-backend/internal/service"
	"github.com/velocita/velocita-backend/internal/validator"
)

// AuthHandler handles authentication endpoints for athletes and organizers.
type AuthHandler struct {
	authService      *service.AuthService
	athleteService   *service.AthleteService
	organizerService *service.OrganizerService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	athleteService *service.AthleteService,
	organizerService *service.OrganizerService,
) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		athleteService:   athleteService,
		organizerService: organizerService,
	}
}

// AthleteSignup godoc
// POST /api/v1/auth/athlete/signup
// Creates an athlete account.
func (h *AuthHandler) AthleteSignup(c *gin.Context) {
	var req model.AthleteSignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	athlete := &model.Athlete{
		CPF:          service.NormalizeCPF(req.CPF),
		Nome:         req.Nome,
		Email:        req.Email,
		Sexo:         req.Sexo,
		PasswordHash: hash,
	}
	if req.DataNascimento != nil {
		nascimento, err := time.Parse(time.DateOnly, *req.DataNascimento)
		if err != nil {
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, map[string]string{
				"data_nascimento": "Data de nascimento inválida.",
			})
			return
		}
		athlete.DataNascimento = &nascimento
	}

	if err := h.athleteService.Create(c.Request.Context(), athlete); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"athlete": athlete})
}

// AthleteLogin godoc
// POST /api/v1/auth/athlete/login
// Authenticates an athlete by CPF and password.
func (h *AuthHandler) AthleteLogin(c *gin.Context) {
	var req model.AthleteLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	athlete, err := h.athleteService.GetByCPF(c.Request.Context(), req.CPF)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.authService.CheckPassword(athlete.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateToken(c.Request.Context(), service.TokenTypeAthlete, athlete.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.AthleteLoginResponse{
		Token:   token,
		Athlete: *athlete,
	})
}

// AthleteLogout godoc
// POST /api/v1/auth/athlete/logout
// Invalidates the athlete's active session.
func (h *AuthHandler) AthleteLogout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), service.TokenTypeAthlete, claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// GetAthleteProfile godoc
// GET /api/v1/auth/athlete/me
// Returns the authenticated athlete's profile.
func (h *AuthHandler) GetAthleteProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	athlete, err := h.athleteService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"athlete": athlete})
}

// OrganizerLogin godoc
// POST /api/v1/auth/organizer/login
// Authenticates an organizer by e-mail and password.
func (h *AuthHandler) OrganizerLogin(c *gin.Context) {
	var req model.OrganizerLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	organizer, err := h.organizerService.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.authService.CheckPassword(organizer.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateToken(c.Request.Context(), service.TokenTypeOrganizer, organizer.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.OrganizerLoginResponse{
		Token:     token,
		Organizer: *organizer,
	})
}

// OrganizerLogout godoc
// POST /api/v1/auth/organizer/logout
// Invalidates the organizer's active session.
func (h *AuthHandler) OrganizerLogout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), service.TokenTypeOrganizer, claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// GetOrganizerProfile godoc
// GET /api/v1/auth/organizer/me
// Returns the authenticated organizer's profile.
func (h *AuthHandler) GetOrganizerProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	organizer, err := h.organizerService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"organizer": organizer})
}
