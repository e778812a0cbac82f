package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error variables
var (
	// ErrConflict is returned when an insert violates a unique constraint.
	ErrConflict = errors.New("unique constraint violation")

	// ErrNotFound is returned when a write targets a row that does not exist.
	ErrNotFound = errors.New("row not found")
)

// isUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
