package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/velocita/velocita-backend/internal/config"
	"github.com/velocita/velocita-backend/internal/handler"
	"github.com/velocita/velocita-backend/internal/middleware"
	"github.com/velocita/velocita-backend/internal/response"
	"github.com/velocita/velocita-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Event        *handler.EventHandler
	Modality     *handler.ModalityHandler
	Rule         *handler.RuleHandler
	Registration *handler.RegistrationHandler
	Monitor      *handler.MonitorHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1")
	{
		publicAPI.GET("/events", handlers.Event.ListPublished)
		publicAPI.GET("/events/:eventId", handlers.Event.GetPublished)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/athlete/signup", handlers.Auth.AthleteSignup)
		auth.POST("/athlete/login", handlers.Auth.AthleteLogin)
		auth.POST("/organizer/login", handlers.Auth.OrganizerLogin)

		// Authenticated profile routes
		auth.POST("/athlete/logout", middleware.RequireAthleteJWT(authService), handlers.Auth.AthleteLogout)
		auth.GET("/athlete/me", middleware.RequireAthleteJWT(authService), handlers.Auth.GetAthleteProfile)
		auth.POST("/organizer/logout", middleware.RequireOrganizerJWT(authService), handlers.Auth.OrganizerLogout)
		auth.GET("/organizer/me", middleware.RequireOrganizerJWT(authService), handlers.Auth.GetOrganizerProfile)
	}

	// ─── 2. Athlete Group (JWT + Active Session) ───────────────────────
	athleteAPI := router.Group("/api/v1")
	athleteAPI.Use(
		middleware.RequireAthleteJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		athleteAPI.POST("/registrations", handlers.Registration.Register)
		athleteAPI.GET("/registrations", handlers.Registration.ListMine)
		athleteAPI.POST("/registrations/:registrationId/cancel", handlers.Registration.Cancel)
	}

	// ─── 3. Organizer Group (JWT) ──────────────────────────────────────
	organizerAPI := router.Group("/api/v1/organizer")
	organizerAPI.Use(middleware.RequireOrganizerJWT(authService))
	{
		// Events
		organizerAPI.POST("/events", handlers.Event.Create)
		organizerAPI.GET("/events", handlers.Event.ListMine)
		organizerAPI.GET("/events/:eventId", handlers.Event.Get)
		organizerAPI.PUT("/events/:eventId", handlers.Event.Update)
		organizerAPI.DELETE("/events/:eventId", handlers.Event.Delete)
		organizerAPI.POST("/events/:eventId/publish", handlers.Event.Publish)
		organizerAPI.POST("/events/:eventId/close", handlers.Event.Close)

		// Modalities
		organizerAPI.POST("/events/:eventId/modalities", handlers.Modality.Create)
		organizerAPI.GET("/events/:eventId/modalities", handlers.Modality.List)
		organizerAPI.PUT("/modalities/:modalityId", handlers.Modality.Update)
		organizerAPI.DELETE("/modalities/:modalityId", handlers.Modality.Delete)

		// Eligibility rules
		organizerAPI.GET("/modalities/:modalityId/rules", handlers.Rule.List)
		organizerAPI.POST("/modalities/:modalityId/rules", handlers.Rule.Create)
		organizerAPI.PUT("/modalities/:modalityId/rules/:ruleId", handlers.Rule.Update)
		organizerAPI.DELETE("/modalities/:modalityId/rules/:ruleId", handlers.Rule.Delete)

		// Registrations & audit trail
		organizerAPI.GET("/modalities/:modalityId/registrations", handlers.Registration.ListByModality)
		organizerAPI.GET("/modalities/:modalityId/checks", handlers.Registration.ListChecks)
	}

	// ─── 4. WebSocket Group (Organizer WS Auth) ────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireOrganizerWSAuth(authService))
	{
		ws.GET("/organizer/events/:eventId/monitor", handlers.Monitor.EventMonitorStream)
	}

	return router
}
