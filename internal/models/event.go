package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType is the closed set of event types.
type EventType string

const (
	EventTypeWorkshop EventType = "WORKSHOP"
	EventTypeFest     EventType = "FEST"
	EventTypeSeminar  EventType = "SEMINAR"
	EventTypeTechTalk EventType = "TECH_TALK"
)

// ParseEventType converts a string into an EventType. Matching is
// case-insensitive and treats spaces as underscores, so "Tech Talk"
// and "TECH_TALK" are equivalent.
func ParseEventType(s string) (EventType, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_")
	switch EventType(normalized) {
	case EventTypeWorkshop:
		return EventTypeWorkshop, nil
	case EventTypeFest:
		return EventTypeFest, nil
	case EventTypeSeminar:
		return EventTypeSeminar, nil
	case EventTypeTechTalk:
		return EventTypeTechTalk, nil
	default:
		return "", fmt.Errorf("invalid event type %q: must be one of WORKSHOP, FEST, SEMINAR, TECH_TALK", s)
	}
}

// Event represents an event record in the database. Every event belongs
// to exactly one college and was created by exactly one admin user.
type Event struct {
	EventID       uuid.UUID      `json:"event_id" db:"event_id"`     // Primary key
	Title         string         `json:"title" db:"title"`           // Event title
	Type          EventType      `json:"type" db:"type"`             // WORKSHOP, FEST, SEMINAR or TECH_TALK
	EventDate     time.Time      `json:"event_date" db:"event_date"` // Scheduled date/time, timezone-aware
	CollegeID     uuid.UUID      `json:"college_id" db:"college_id"` // Owning college
	CreatedBy     int64          `json:"created_by" db:"created_by"` // Admin who created the event
	CreatedAt     time.Time      `json:"created_at" db:"created_at"` // Creation timestamp
	Registrations []Registration `json:"registrations,omitempty" db:"-"`
}
