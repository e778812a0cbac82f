package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
)

// EventReadRepository handles event read operations.
type EventReadRepository struct {
	db *sqlx.DB
}

func NewEventReadRepository(db *sqlx.DB) *EventReadRepository {
	return &EventReadRepository{db: db}
}

// GetByID finds an event by primary key. Returns (nil, nil) when absent.
func (r *EventReadRepository) GetByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	const query = `
		SELECT event_id, title, type, event_date, college_id, created_by, created_at
		FROM events
		WHERE event_id = $1
	`

	var event models.Event
	err := r.db.GetContext(ctx, &event, query, eventID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{eventID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// List returns all events ordered by event date ascending.
func (r *EventReadRepository) List(ctx context.Context) ([]models.Event, error) {
	const query = `
		SELECT event_id, title, type, event_date, college_id, created_by, created_at
		FROM events
		ORDER BY event_date ASC
	`

	var events []models.Event
	err := r.db.SelectContext(ctx, &events, query)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"count", len(events),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return events, nil
}

// EventWriteRepository handles event write operations.
type EventWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewEventWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *EventWriteRepository {
	return &EventWriteRepository{db: db, txGetter: txGetter}
}

func (r *EventWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new event and returns the stored row.
func (r *EventWriteRepository) Save(ctx context.Context, event *models.Event) (*models.Event, error) {
	const query = `
		INSERT INTO events (event_id, title, type, event_date, college_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING event_id, title, type, event_date, college_id, created_by, created_at
	`
	args := []any{uuid.New(), event.Title, event.Type, event.EventDate, event.CollegeID, event.CreatedBy}

	var saved models.Event
	err := sqlx.GetContext(ctx, r.executor(ctx), &saved, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{event.Title, event.Type, event.CollegeID, event.CreatedBy},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// Update patches title, type and event date of an existing event; nil
// fields keep their current value. Returns ErrNotFound when the event
// does not exist.
func (r *EventWriteRepository) Update(ctx context.Context, eventID uuid.UUID, title *string, eventType *models.EventType, eventDate *time.Time) (*models.Event, error) {
	const query = `
		UPDATE events
		SET title      = COALESCE($2, title),
		    type       = COALESCE($3, type),
		    event_date = COALESCE($4, event_date)
		WHERE event_id = $1
		RETURNING event_id, title, type, event_date, college_id, created_by, created_at
	`

	var updated models.Event
	err := sqlx.GetContext(ctx, r.executor(ctx), &updated, query, eventID, title, eventType, eventDate)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{eventID, title, eventType, eventDate},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes an event; its registrations go with it via the
// ON DELETE CASCADE foreign key. Returns ErrNotFound when absent.
func (r *EventWriteRepository) Delete(ctx context.Context, eventID uuid.UUID) error {
	const query = `DELETE FROM events WHERE event_id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, eventID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query executed",
		"query", query,
		"args", []any{eventID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
