package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
)

// CollegeRepository handles find-or-create access to colleges.
type CollegeRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewCollegeRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *CollegeRepository {
	return &CollegeRepository{db: db, txGetter: txGetter}
}

func (r *CollegeRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// FindOrCreate returns the college with the given name, inserting it
// first if absent. The upsert makes concurrent callers converge on a
// single row: the no-op DO UPDATE lets RETURNING yield the existing
// row instead of nothing.
func (r *CollegeRepository) FindOrCreate(ctx context.Context, name string) (*models.College, error) {
	const query = `
		INSERT INTO colleges (college_id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING college_id, name
	`

	var college models.College
	err := sqlx.GetContext(ctx, r.executor(ctx), &college, query, uuid.New(), name)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &college, nil
}
