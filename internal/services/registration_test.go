package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/repositories"
	"github.com/campusops/college-events/internal/services"
)

func TestRegistrationService_Register(t *testing.T) {
	eventID := uuid.New()
	event := &models.Event{EventID: eventID, Title: "Go Workshop"}
	student := &models.User{ID: 1, Username: "alice", Role: models.RoleUser, IsActive: true}
	admin := &models.User{ID: 2, Username: "root", Role: models.RoleAdmin, IsActive: true}
	reg := &models.Registration{RegistrationID: uuid.New(), EventID: eventID, StudentID: 1}

	tests := []struct {
		name        string
		studentID   int64
		event       *models.Event
		eventErr    error
		student     *models.User
		studentErr  error
		existing    *models.Registration
		existingErr error
		saved       *models.Registration
		saveErr     error
		wantErr     error
	}{
		{
			name:      "successful registration",
			studentID: 1,
			event:     event,
			student:   student,
			saved:     reg,
		},
		{
			name:      "event not found",
			studentID: 1,
			event:     nil,
			wantErr:   services.ErrEventNotFound,
		},
		{
			name:      "student not found",
			studentID: 404,
			event:     event,
			student:   nil,
			wantErr:   services.ErrInvalidStudent,
		},
		{
			name:      "admin cannot register",
			studentID: 2,
			event:     event,
			student:   admin,
			wantErr:   services.ErrInvalidStudent,
		},
		{
			name:      "already registered",
			studentID: 1,
			event:     event,
			student:   student,
			existing:  reg,
			wantErr:   services.ErrAlreadyRegistered,
		},
		{
			name:      "concurrent duplicate loses on the unique constraint",
			studentID: 1,
			event:     event,
			student:   student,
			saveErr:   repositories.ErrConflict,
			wantErr:   services.ErrAlreadyRegistered,
		},
		{
			name:      "event lookup error",
			studentID: 1,
			eventErr:  errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			studentID: 1,
			event:     event,
			student:   student,
			saveErr:   errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockEvents := services.NewMockEventReader(ctrl)
			mockUsers := services.NewMockUserReader(ctrl)
			mockReader := services.NewMockRegistrationReader(ctrl)
			mockWriter := services.NewMockRegistrationWriter(ctrl)
			mockKafka := services.NewMockKafkaWriter(ctrl)

			svc := services.NewRegistrationService(mockEvents, mockUsers, mockReader, mockWriter, mockKafka)

			mockEvents.EXPECT().GetByID(gomock.Any(), eventID).Return(tt.event, tt.eventErr)

			if tt.eventErr == nil && tt.event != nil {
				mockUsers.EXPECT().GetByID(gomock.Any(), tt.studentID).Return(tt.student, tt.studentErr)
			}
			if tt.eventErr == nil && tt.event != nil &&
				tt.student != nil && tt.student.Role == models.RoleUser {
				mockReader.EXPECT().
					GetByEventAndStudent(gomock.Any(), eventID, tt.studentID).
					Return(tt.existing, tt.existingErr)
			}
			if tt.eventErr == nil && tt.event != nil &&
				tt.student != nil && tt.student.Role == models.RoleUser &&
				tt.existing == nil && tt.existingErr == nil {
				mockWriter.EXPECT().Save(gomock.Any(), eventID, tt.studentID).Return(tt.saved, tt.saveErr)
			}
			if tt.wantErr == nil {
				mockKafka.EXPECT().
					WriteMessages(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
						assert.Len(t, msgs, 1)
						var payload models.RegistrationMessage
						assert.NoError(t, json.Unmarshal(msgs[0].Value, &payload))
						assert.Equal(t, tt.saved.RegistrationID.String(), payload.RegistrationID)
						assert.Equal(t, "registered", payload.Action)
						return nil
					})
			}

			got, err := svc.Register(context.Background(), eventID, tt.studentID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.saved, got)
			}
		})
	}
}

func TestRegistrationService_MarkAttendance(t *testing.T) {
	registrationID := uuid.New()
	reg := &models.Registration{RegistrationID: registrationID, EventID: uuid.New(), StudentID: 1, Attended: true}

	tests := []struct {
		name    string
		updated *models.Registration
		setErr  error
		wantErr error
	}{
		{
			name:    "successful check-in",
			updated: reg,
		},
		{
			name:    "registration not found",
			setErr:  repositories.ErrNotFound,
			wantErr: services.ErrRegistrationNotFound,
		},
		{
			name:    "writer error",
			setErr:  errors.New("db error"),
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockWriter := services.NewMockRegistrationWriter(ctrl)
			mockKafka := services.NewMockKafkaWriter(ctrl)

			svc := services.NewRegistrationService(nil, nil, nil, mockWriter, mockKafka)

			mockWriter.EXPECT().SetAttended(gomock.Any(), registrationID).Return(tt.updated, tt.setErr)

			if tt.wantErr == nil {
				mockKafka.EXPECT().
					WriteMessages(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
						var payload models.RegistrationMessage
						assert.NoError(t, json.Unmarshal(msgs[0].Value, &payload))
						assert.Equal(t, "checked_in", payload.Action)
						return nil
					})
			}

			got, err := svc.MarkAttendance(context.Background(), registrationID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.True(t, got.Attended)
			}
		})
	}
}

func TestRegistrationService_PublishWithoutKafka(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventID := uuid.New()
	event := &models.Event{EventID: eventID, Title: "Go Workshop"}
	student := &models.User{ID: 1, Username: "alice", Role: models.RoleUser, IsActive: true}
	reg := &models.Registration{RegistrationID: uuid.New(), EventID: eventID, StudentID: 1}

	mockEvents := services.NewMockEventReader(ctrl)
	mockUsers := services.NewMockUserReader(ctrl)
	mockReader := services.NewMockRegistrationReader(ctrl)
	mockWriter := services.NewMockRegistrationWriter(ctrl)

	svc := services.NewRegistrationService(mockEvents, mockUsers, mockReader, mockWriter, nil)

	mockEvents.EXPECT().GetByID(gomock.Any(), eventID).Return(event, nil)
	mockUsers.EXPECT().GetByID(gomock.Any(), int64(1)).Return(student, nil)
	mockReader.EXPECT().GetByEventAndStudent(gomock.Any(), eventID, int64(1)).Return(nil, nil)
	mockWriter.EXPECT().Save(gomock.Any(), eventID, int64(1)).Return(reg, nil)

	got, err := svc.Register(context.Background(), eventID, 1)
	assert.NoError(t, err)
	assert.Equal(t, reg, got)
}
