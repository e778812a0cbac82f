package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration represents a student's registration for an event.
// The pair (event_id, student_id) is unique: a student may register
// for a given event at most once. Registrations are never deleted on
// their own, only via cascading event deletion.
type Registration struct {
	RegistrationID uuid.UUID `json:"registration_id" db:"registration_id"` // Primary key
	EventID        uuid.UUID `json:"event_id" db:"event_id"`               // Registered event
	StudentID      int64     `json:"student_id" db:"student_id"`           // Registered student
	Attended       bool      `json:"attended" db:"attended"`               // Set true on check-in, one-directional
	RegisteredAt   time.Time `json:"registered_at" db:"registered_at"`     // Registration timestamp
	Student        *User     `json:"student,omitempty" db:"-"`             // Populated for admin views
}

// RegistrationMessage is the payload published to the registration
// audit stream on registration and check-in.
type RegistrationMessage struct {
	RegistrationID string `json:"registration_id"`
	EventID        string `json:"event_id"`
	StudentID      int64  `json:"student_id"`
	Action         string `json:"action"` // "registered" or "checked_in"
	Timestamp      int64  `json:"timestamp"`
}
