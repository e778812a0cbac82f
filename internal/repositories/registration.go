package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
)

// RegistrationReadRepository handles registration read operations.
type RegistrationReadRepository struct {
	db *sqlx.DB
}

func NewRegistrationReadRepository(db *sqlx.DB) *RegistrationReadRepository {
	return &RegistrationReadRepository{db: db}
}

// GetByEventAndStudent finds the registration for an (event, student)
// pair. Returns (nil, nil) when the student is not registered.
func (r *RegistrationReadRepository) GetByEventAndStudent(ctx context.Context, eventID uuid.UUID, studentID int64) (*models.Registration, error) {
	const query = `
		SELECT registration_id, event_id, student_id, attended, registered_at
		FROM registrations
		WHERE event_id = $1 AND student_id = $2
	`

	var reg models.Registration
	err := r.db.GetContext(ctx, &reg, query, eventID, studentID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{eventID, studentID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

// registrationRow is the scan target for registrations joined with
// their student.
type registrationRow struct {
	RegistrationID uuid.UUID    `db:"registration_id"`
	EventID        uuid.UUID    `db:"event_id"`
	StudentID      int64        `db:"student_id"`
	Attended       bool         `db:"attended"`
	RegisteredAt   sql.NullTime `db:"registered_at"`
	Username       string       `db:"username"`
	Email          string       `db:"email"`
	FullName       string       `db:"full_name"`
}

// ListByEvent returns all registrations for an event, each with the
// registered student's identity attached, ordered by registration time.
func (r *RegistrationReadRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error) {
	const query = `
		SELECT r.registration_id, r.event_id, r.student_id, r.attended, r.registered_at,
		       u.username, u.email, u.full_name
		FROM registrations r
		JOIN users u ON u.id = r.student_id
		WHERE r.event_id = $1
		ORDER BY r.registered_at
	`

	var rows []registrationRow
	err := r.db.SelectContext(ctx, &rows, query, eventID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{eventID},
		"count", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	regs := make([]models.Registration, len(rows))
	for i, row := range rows {
		regs[i] = models.Registration{
			RegistrationID: row.RegistrationID,
			EventID:        row.EventID,
			StudentID:      row.StudentID,
			Attended:       row.Attended,
			RegisteredAt:   row.RegisteredAt.Time,
			Student: &models.User{
				ID:       row.StudentID,
				Username: row.Username,
				Email:    row.Email,
				FullName: row.FullName,
			},
		}
	}
	return regs, nil
}

// RegistrationWriteRepository handles registration write operations.
type RegistrationWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewRegistrationWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *RegistrationWriteRepository {
	return &RegistrationWriteRepository{db: db, txGetter: txGetter}
}

func (r *RegistrationWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new registration with attended=false. The database
// UNIQUE (event_id, student_id) constraint is the final arbiter against
// concurrent duplicates; its violation surfaces as ErrConflict.
func (r *RegistrationWriteRepository) Save(ctx context.Context, eventID uuid.UUID, studentID int64) (*models.Registration, error) {
	const query = `
		INSERT INTO registrations (registration_id, event_id, student_id, attended, registered_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING registration_id, event_id, student_id, attended, registered_at
	`

	var reg models.Registration
	err := sqlx.GetContext(ctx, r.executor(ctx), &reg, query, uuid.New(), eventID, studentID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{eventID, studentID},
		"error", err,
	)

	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

// SetAttended marks a registration as attended. Setting true when
// already true yields the same row. Returns ErrNotFound when the
// registration does not exist.
func (r *RegistrationWriteRepository) SetAttended(ctx context.Context, registrationID uuid.UUID) (*models.Registration, error) {
	const query = `
		UPDATE registrations
		SET attended = TRUE
		WHERE registration_id = $1
		RETURNING registration_id, event_id, student_id, attended, registered_at
	`

	var reg models.Registration
	err := sqlx.GetContext(ctx, r.executor(ctx), &reg, query, registrationID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{registrationID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &reg, nil
}
