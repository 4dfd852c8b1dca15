package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/velocita/velocita-backend/internal/config"
	"github.com/velocita/velocita-backend/internal/database"
	"github.com/velocita/velocita-backend/internal/eligibility"
	"github.com/velocita/velocita-backend/internal/handler"
	"github.com/velocita/velocita-backend/internal/logger"
	"github.com/velocita/velocita-backend/internal/repository"
	"github.com/velocita/velocita-backend/internal/router"
	"github.com/velocita/velocita-backend/internal/service"
	"github.com/velocita/velocita-backend/internal/validator"
	"github.com/velocita/velocita-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Velocità Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	athleteRepo := repository.NewAthleteRepository(pool)
	organizerRepo := repository.NewOrganizerRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	modalityRepo := repository.NewModalityRepository(pool)
	ruleRepo := repository.NewEligibilityRuleRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)
	checkRepo := repository.NewEligibilityCheckRepository(pool)

	// ─── Initialize Eligibility Engine ─────────────────────────────────
	// The engine gets a dedicated client without a global timeout; each
	// rule carries its own deadline.
	engine := eligibility.NewEngine(&http.Client{}, log, cfg.EligibilityMaxBodyBytes)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	athleteService := service.NewAthleteService(athleteRepo)
	organizerService := service.NewOrganizerService(organizerRepo)
	eventService := service.NewEventService(eventRepo, modalityRepo, log)
	modalityService := service.NewModalityService(modalityRepo, eventService)
	ruleService := service.NewRuleService(ruleRepo, modalityService)
	registrationService := service.NewRegistrationService(
		regRepo, modalityRepo, eventRepo, ruleRepo, athleteService, engine, rdb, log,
	)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, athleteService, organizerService),
		Event:        handler.NewEventHandler(eventService),
		Modality:     handler.NewModalityHandler(modalityService, eventService),
		Rule:         handler.NewRuleHandler(ruleService),
		Registration: handler.NewRegistrationHandler(registrationService, modalityService, checkRepo),
		Monitor:      handler.NewMonitorHandler(rdb, eventService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	auditWorker := worker.NewAuditWorker(pool, rdb, log)
	go auditWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the audit worker and let its final batch flush.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
