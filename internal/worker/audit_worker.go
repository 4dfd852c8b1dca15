package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/velocita/velocita-backend/internal/config"
	"github.com/velocita/velocita-backend/internal/model"
	"github.com/velocita/velocita-backend/internal/repository"
)

const (
	AuditBatchSize    = 50
	AuditBatchTimeout = 2 * time.Second
	AuditPollTimeout  = 1 * time.Second
)

// AuditWorker drains eligibility-check audit events from the Redis queue
// into PostgreSQL. Audit persistence is off the registration hot path; a
// slow database never delays an athlete's registration.
type AuditWorker struct {
	checkRepo *repository.EligibilityCheckRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewAuditWorker creates a new AuditWorker.
func NewAuditWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *AuditWorker {
	return &AuditWorker{
		checkRepo: repository.NewEligibilityCheckRepository(pool),
		rdb:       rdb,
		log:       log.With().Str("component", "audit_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled, flushing batches by
// size or age.
func (w *AuditWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AuditWorker started")

	batch := make([]*model.EligibilityCheck, 0, AuditBatchSize)
	lastFlush := time.Now()

	for {
		select {
		case <-ctx.Done():
			w.flush(batch)
			w.log.Info().Msg("AuditWorker stopped")
			return
		default:
		}

		raw, err := w.rdb.BRPop(ctx, AuditPollTimeout, config.WorkerKey.EligibilityAuditQueue).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
				w.log.Error().Err(err).Msg("audit queue pop failed")
				time.Sleep(time.Second)
			}
		} else if len(raw) == 2 {
			var check model.EligibilityCheck
			if err := json.Unmarshal([]byte(raw[1]), &check); err != nil {
				w.log.Error().Err(err).Msg("discarding malformed audit payload")
			} else {
				batch = append(batch, &check)
			}
		}

		if len(batch) >= AuditBatchSize || (len(batch) > 0 && time.Since(lastFlush) >= AuditBatchTimeout) {
			w.flush(batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}
	}
}

// flush writes the batch with a fresh context so shutdown still persists
// pending records.
func (w *AuditWorker) flush(batch []*model.EligibilityCheck) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := w.checkRepo.InsertBatch(ctx, batch); err != nil {
		w.log.Error().Err(err).Int("batch", len(batch)).Msg("persist audit batch failed")
		return
	}
	w.log.Debug().Int("batch", len(batch)).Msg("audit batch persisted")
}
