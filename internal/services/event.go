package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/repositories"
)

// Error variables
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidEventType = errors.New("invalid event type")
	ErrInvalidEventDate = errors.New("invalid event date: use ISO 8601 format")
)

// EventReader defines read-only operations for events.
type EventReader interface {
	GetByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
}

// EventWriter defines write operations for events.
type EventWriter interface {
	Save(ctx context.Context, event *models.Event) (*models.Event, error)
	Update(ctx context.Context, eventID uuid.UUID, title *string, eventType *models.EventType, eventDate *time.Time) (*models.Event, error)
	Delete(ctx context.Context, eventID uuid.UUID) error
}

// EventCache caches the event listing.
type EventCache interface {
	Get(ctx context.Context) ([]models.Event, error)
	Set(ctx context.Context, events []models.Event) error
	Invalidate(ctx context.Context) error
}

// CreateEventInput carries the fields for event creation.
type CreateEventInput struct {
	Title       string
	Type        string
	EventDate   string
	CollegeName string
}

// UpdateEventInput carries the patchable event fields; nil means keep.
type UpdateEventInput struct {
	Title     *string
	Type      *string
	EventDate *string
}

// EventService handles event directory operations.
type EventService struct {
	reader        EventReader
	writer        EventWriter
	colleges      CollegeFinder
	registrations RegistrationReader
	cache         EventCache
}

// NewEventService creates a new EventService instance. The cache may
// be nil, in which case every listing hits the database.
func NewEventService(
	reader EventReader,
	writer EventWriter,
	colleges CollegeFinder,
	registrations RegistrationReader,
	cache EventCache,
) *EventService {
	return &EventService{
		reader:        reader,
		writer:        writer,
		colleges:      colleges,
		registrations: registrations,
		cache:         cache,
	}
}

// Create creates an event owned by the named college, creating the
// college first if it does not exist yet.
func (svc *EventService) Create(ctx context.Context, in CreateEventInput, createdBy int64) (*models.Event, error) {
	eventType, err := models.ParseEventType(in.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventType, in.Type)
	}

	eventDate, err := time.Parse(time.RFC3339, in.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventDate, in.EventDate)
	}

	college, err := svc.colleges.FindOrCreate(ctx, in.CollegeName)
	if err != nil {
		logger.Log.Errorw("failed to find or create college", "name", in.CollegeName, "err", err)
		return nil, err
	}

	event, err := svc.writer.Save(ctx, &models.Event{
		Title:     in.Title,
		Type:      eventType,
		EventDate: eventDate,
		CollegeID: college.CollegeID,
		CreatedBy: createdBy,
	})
	if err != nil {
		logger.Log.Errorw("failed to save event", "title", in.Title, "err", err)
		return nil, err
	}

	svc.invalidateCache(ctx)

	logger.Log.Infow("event created",
		"event_id", event.EventID, "title", event.Title, "college", college.Name, "created_by", createdBy)
	return event, nil
}

// List returns all events ordered by event date ascending, served from
// the cache when possible. Cache failures fall through to the database.
func (svc *EventService) List(ctx context.Context) ([]models.Event, error) {
	if svc.cache != nil {
		if cached, err := svc.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	events, err := svc.reader.List(ctx)
	if err != nil {
		return nil, err
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, events); err != nil {
			logger.Log.Warnw("failed to cache event listing", "err", err)
		}
	}

	return events, nil
}

// Get returns a single event, optionally with its registrations.
func (svc *EventService) Get(ctx context.Context, eventID uuid.UUID, includeRegistrations bool) (*models.Event, error) {
	event, err := svc.reader.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if includeRegistrations {
		regs, err := svc.registrations.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		event.Registrations = regs
	}

	return event, nil
}

// Update patches an event's title, type and date. The owning college
// and creator are immutable.
func (svc *EventService) Update(ctx context.Context, eventID uuid.UUID, in UpdateEventInput) (*models.Event, error) {
	var eventType *models.EventType
	if in.Type != nil {
		parsed, err := models.ParseEventType(*in.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEventType, *in.Type)
		}
		eventType = &parsed
	}

	var eventDate *time.Time
	if in.EventDate != nil {
		parsed, err := time.Parse(time.RFC3339, *in.EventDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEventDate, *in.EventDate)
		}
		eventDate = &parsed
	}

	event, err := svc.writer.Update(ctx, eventID, in.Title, eventType, eventDate)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		logger.Log.Errorw("failed to update event", "event_id", eventID, "err", err)
		return nil, err
	}

	svc.invalidateCache(ctx)
	return event, nil
}

// Delete removes an event and, via cascade, all its registrations.
func (svc *EventService) Delete(ctx context.Context, eventID uuid.UUID) error {
	if err := svc.writer.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		logger.Log.Errorw("failed to delete event", "event_id", eventID, "err", err)
		return err
	}

	svc.invalidateCache(ctx)

	logger.Log.Infow("event deleted", "event_id", eventID)
	return nil
}

// Dashboard returns all events with their registrations and student
// details attached.
func (svc *EventService) Dashboard(ctx context.Context) ([]models.Event, error) {
	events, err := svc.reader.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range events {
		regs, err := svc.registrations.ListByEvent(ctx, events[i].EventID)
		if err != nil {
			return nil, err
		}
		events[i].Registrations = regs
	}

	return events, nil
}

func (svc *EventService) invalidateCache(ctx context.Context) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Invalidate(ctx); err != nil {
		logger.Log.Warnw("failed to invalidate event cache", "err", err)
	}
}
