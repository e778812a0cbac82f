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

// userRow is the scan target for user queries joined with colleges.
type userRow struct {
	ID           int64          `db:"id"`
	CollegeID    *uuid.UUID     `db:"college_id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     string         `db:"full_name"`
	Role         models.Role    `db:"role"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    sql.NullTime   `db:"created_at"`
	LastLogin    sql.NullTime   `db:"last_login"`
	CollegeName  sql.NullString `db:"college_name"`
}

func (r userRow) toModel() *models.User {
	user := &models.User{
		ID:           r.ID,
		CollegeID:    r.CollegeID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FullName:     r.FullName,
		Role:         r.Role,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt.Time,
	}
	if r.LastLogin.Valid {
		t := r.LastLogin.Time
		user.LastLogin = &t
	}
	if r.CollegeID != nil && r.CollegeName.Valid {
		user.College = &models.College{CollegeID: *r.CollegeID, Name: r.CollegeName.String}
	}
	return user
}

const userSelectColumns = `
	u.id, u.college_id, u.username, u.email, u.password_hash, u.full_name,
	u.role, u.is_active, u.created_at, u.last_login,
	c.name AS college_name
`

// UserReadRepository handles user read operations.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByIdentifier finds a user whose username or email equals identifier.
// Returns (nil, nil) when no user matches.
func (r *UserReadRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	const query = `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN colleges c ON c.college_id = u.college_id
		WHERE u.username = $1 OR u.email = $1
		LIMIT 1
	`

	var row userRow
	err := r.db.GetContext(ctx, &row, query, identifier)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{identifier},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

// GetByID finds a user by primary key. Returns (nil, nil) when absent.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN colleges c ON c.college_id = u.college_id
		WHERE u.id = $1
	`

	var row userRow
	err := r.db.GetContext(ctx, &row, query, id)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

// List returns all users ordered by creation time.
func (r *UserReadRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN colleges c ON c.college_id = u.college_id
		ORDER BY u.created_at
	`

	var rows []userRow
	err := r.db.SelectContext(ctx, &rows, query)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"count", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	users := make([]models.User, len(rows))
	for i, row := range rows {
		users[i] = *row.toModel()
	}
	return users, nil
}

// UserWriteRepository handles user write operations.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user and returns the generated id and creation
// timestamp. A duplicate username or email surfaces as ErrConflict.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	const query = `
		INSERT INTO users (college_id, username, email, password_hash, full_name, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW())
		RETURNING id, created_at
	`
	args := []any{user.CollegeID, user.Username, user.Email, user.PasswordHash, user.FullName, user.Role}

	var out struct {
		ID        int64        `db:"id"`
		CreatedAt sql.NullTime `db:"created_at"`
	}
	err := sqlx.GetContext(ctx, r.executor(ctx), &out, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.Username, user.Email, user.Role},
		"error", err,
	)

	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	saved := *user
	saved.ID = out.ID
	saved.CreatedAt = out.CreatedAt.Time
	saved.IsActive = true
	return &saved, nil
}

// UpdateLastLogin stamps the user's last_login with the current time.
func (r *UserWriteRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	const query = `UPDATE users SET last_login = NOW() WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query executed",
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Delete removes a user. Returns ErrNotFound when no row matched.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query executed",
		"query", query,
		"args", []any{id},
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
