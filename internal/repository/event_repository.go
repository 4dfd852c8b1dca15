package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velocita/velocita-backend/internal/model"
)

// EventRepository handles event data access.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Create inserts a new event in DRAFT status.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO events (organizer_id, nome, cidade, uf, data, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		event.OrganizerID, event.Nome, event.Cidade, event.UF, event.Data, event.Status,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

// GetByID retrieves an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var e model.Event
	err := r.pool.QueryRow(ctx,
		`SELECT id, organizer_id, nome, cidade, uf, data, status, created_at, updated_at
		 FROM events WHERE id = $1`, id,
	).Scan(&e.ID, &e.OrganizerID, &e.Nome, &e.Cidade, &e.UF, &e.Data, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByOrganizer retrieves all events owned by an organizer.
func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int) ([]model.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, organizer_id, nome, cidade, uf, data, status, created_at, updated_at
		 FROM events WHERE organizer_id = $1 ORDER BY data`, organizerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListPublished retrieves the public catalog of published events.
func (r *EventRepository) ListPublished(ctx context.Context) ([]model.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, organizer_id, nome, cidade, uf, data, status, created_at, updated_at
		 FROM events WHERE status = $1 ORDER BY data`, model.EventStatusPublished,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Update modifies an existing event.
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE events
		 SET nome = $1, cidade = $2, uf = $3, data = $4, updated_at = now()
		 WHERE id = $5`,
		event.Nome, event.Cidade, event.UF, event.Data, event.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStatus transitions an event's lifecycle status.
func (r *EventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.EventStatus) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE events SET status = $1, updated_at = now() WHERE id = $2`, status, id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes an event by ID.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEvents(rows pgx.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.OrganizerID, &e.Nome, &e.Cidade, &e.UF, &e.Data, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
