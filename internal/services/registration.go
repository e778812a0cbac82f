package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/repositories"
)

// Error variables
var (
	ErrInvalidStudent       = errors.New("user not found or is not a student")
	ErrAlreadyRegistered    = errors.New("student is already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
)

// RegistrationReader defines read-only operations for registrations.
type RegistrationReader interface {
	GetByEventAndStudent(ctx context.Context, eventID uuid.UUID, studentID int64) (*models.Registration, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error)
}

// RegistrationWriter defines write operations for registrations.
type RegistrationWriter interface {
	Save(ctx context.Context, eventID uuid.UUID, studentID int64) (*models.Registration, error)
	SetAttended(ctx context.Context, registrationID uuid.UUID) (*models.Registration, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// RegistrationService enforces the registration ledger invariants and
// publishes audit messages.
type RegistrationService struct {
	events      EventReader
	users       UserReader
	reader      RegistrationReader
	writer      RegistrationWriter
	kafkaWriter KafkaWriter
}

// NewRegistrationService creates a new RegistrationService. The Kafka
// writer may be nil; publishing is then skipped.
func NewRegistrationService(
	events EventReader,
	users UserReader,
	reader RegistrationReader,
	writer RegistrationWriter,
	kafkaWriter KafkaWriter,
) *RegistrationService {
	return &RegistrationService{
		events:      events,
		users:       users,
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

// Register registers a student for an event. The existence check on
// the (event, student) pair is advisory; the database unique constraint
// is the final arbiter, so a losing concurrent writer still gets
// ErrAlreadyRegistered.
func (svc *RegistrationService) Register(ctx context.Context, eventID uuid.UUID, studentID int64) (*models.Registration, error) {
	event, err := svc.events.GetByID(ctx, eventID)
	if err != nil {
		logger.Log.Errorw("failed to look up event", "event_id", eventID, "err", err)
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	student, err := svc.users.GetByID(ctx, studentID)
	if err != nil {
		logger.Log.Errorw("failed to look up student", "student_id", studentID, "err", err)
		return nil, err
	}
	if student == nil || student.Role != models.RoleUser {
		return nil, ErrInvalidStudent
	}

	existing, err := svc.reader.GetByEventAndStudent(ctx, eventID, studentID)
	if err != nil {
		logger.Log.Errorw("failed to check existing registration", "event_id", eventID, "student_id", studentID, "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	reg, err := svc.writer.Save(ctx, eventID, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrAlreadyRegistered
		}
		logger.Log.Errorw("failed to save registration", "event_id", eventID, "student_id", studentID, "err", err)
		return nil, err
	}

	svc.publish(ctx, reg, "registered")

	logger.Log.Infow("student registered",
		"registration_id", reg.RegistrationID, "event_id", eventID, "student_id", studentID)
	return reg, nil
}

// MarkAttendance marks a registration as attended. Re-marking an
// already attended registration yields the same observable result.
func (svc *RegistrationService) MarkAttendance(ctx context.Context, registrationID uuid.UUID) (*models.Registration, error) {
	reg, err := svc.writer.SetAttended(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		logger.Log.Errorw("failed to mark attendance", "registration_id", registrationID, "err", err)
		return nil, err
	}

	svc.publish(ctx, reg, "checked_in")

	logger.Log.Infow("attendance marked", "registration_id", registrationID)
	return reg, nil
}

// publish sends a registration audit message to Kafka.
func (svc *RegistrationService) publish(ctx context.Context, reg *models.Registration, action string) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing",
			"registration_id", reg.RegistrationID, "action", action)
		return
	}

	msg := models.RegistrationMessage{
		RegistrationID: reg.RegistrationID.String(),
		EventID:        reg.EventID.String(),
		StudentID:      reg.StudentID,
		Action:         action,
		Timestamp:      time.Now().Unix(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		logger.Log.Errorw("failed to marshal registration message",
			"registration_id", reg.RegistrationID, "error", err)
		return
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.RegistrationID),
		Value: data,
	}); err != nil {
		logger.Log.Errorw("failed to publish registration message",
			"registration_id", reg.RegistrationID, "action", action, "error", err)
	} else {
		logger.Log.Infow("registration message published",
			"registration_id", reg.RegistrationID, "action", action)
	}
}
