package models

import "github.com/google/uuid"

// College represents a college record in the database.
// Colleges are created implicitly, find-or-create by name, when a user
// or event references one that does not exist yet.
type College struct {
	CollegeID uuid.UUID `json:"id" db:"college_id"` // Primary key
	Name      string    `json:"name" db:"name"`     // Unique name
}
