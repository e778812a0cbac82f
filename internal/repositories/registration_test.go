package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/campusops/college-events/internal/models"
)

func seedEventAndStudent(t *testing.T, db *sqlx.DB) (*models.Event, *models.User) {
	t.Helper()
	ctx := context.Background()

	admin, college := seedAdminAndCollege(t, db)

	student, err := NewUserWriteRepository(db, nil).Save(ctx, &models.User{
		Username:     "alice",
		Email:        "alice@college.edu",
		PasswordHash: "hashed",
		FullName:     "Alice Kumar",
		Role:         models.RoleUser,
	})
	assert.NoError(t, err)

	event, err := NewEventWriteRepository(db, nil).Save(ctx, &models.Event{
		Title:     "Go Workshop",
		Type:      models.EventTypeWorkshop,
		EventDate: time.Now().Add(48 * time.Hour).UTC(),
		CollegeID: college.CollegeID,
		CreatedBy: admin.ID,
	})
	assert.NoError(t, err)

	return event, student
}

func TestRegistrationWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	event, student := seedEventAndStudent(t, db)

	repo := NewRegistrationWriteRepository(db, nil)

	reg, err := repo.Save(ctx, event.EventID, student.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, reg.RegistrationID)
	assert.Equal(t, event.EventID, reg.EventID)
	assert.Equal(t, student.ID, reg.StudentID)
	assert.False(t, reg.Attended)
	assert.False(t, reg.RegisteredAt.IsZero())

	t.Run("second insert for the same pair conflicts", func(t *testing.T) {
		_, err := repo.Save(ctx, event.EventID, student.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestRegistrationReadRepository_GetByEventAndStudent(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	event, student := seedEventAndStudent(t, db)

	writeRepo := NewRegistrationWriteRepository(db, nil)
	readRepo := NewRegistrationReadRepository(db)

	t.Run("absent pair", func(t *testing.T) {
		reg, err := readRepo.GetByEventAndStudent(ctx, event.EventID, student.ID)
		assert.NoError(t, err)
		assert.Nil(t, reg)
	})

	saved, err := writeRepo.Save(ctx, event.EventID, student.ID)
	assert.NoError(t, err)

	t.Run("existing pair", func(t *testing.T) {
		reg, err := readRepo.GetByEventAndStudent(ctx, event.EventID, student.ID)
		assert.NoError(t, err)
		assert.NotNil(t, reg)
		assert.Equal(t, saved.RegistrationID, reg.RegistrationID)
	})
}

func TestRegistrationReadRepository_ListByEvent(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	event, student := seedEventAndStudent(t, db)

	other, err := NewUserWriteRepository(db, nil).Save(ctx, &models.User{
		Username:     "bob",
		Email:        "bob@college.edu",
		PasswordHash: "hashed",
		FullName:     "Bob Singh",
		Role:         models.RoleUser,
	})
	assert.NoError(t, err)

	writeRepo := NewRegistrationWriteRepository(db, nil)
	readRepo := NewRegistrationReadRepository(db)

	_, err = writeRepo.Save(ctx, event.EventID, student.ID)
	assert.NoError(t, err)
	_, err = writeRepo.Save(ctx, event.EventID, other.ID)
	assert.NoError(t, err)

	regs, err := readRepo.ListByEvent(ctx, event.EventID)
	assert.NoError(t, err)
	assert.Len(t, regs, 2)

	for _, reg := range regs {
		assert.NotNil(t, reg.Student)
		assert.NotEmpty(t, reg.Student.Username)
		assert.NotEmpty(t, reg.Student.Email)
	}

	empty, err := readRepo.ListByEvent(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRegistrationWriteRepository_SetAttended(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	event, student := seedEventAndStudent(t, db)

	repo := NewRegistrationWriteRepository(db, nil)

	saved, err := repo.Save(ctx, event.EventID, student.ID)
	assert.NoError(t, err)
	assert.False(t, saved.Attended)

	marked, err := repo.SetAttended(ctx, saved.RegistrationID)
	assert.NoError(t, err)
	assert.True(t, marked.Attended)

	t.Run("marking twice keeps the row attended", func(t *testing.T) {
		again, err := repo.SetAttended(ctx, saved.RegistrationID)
		assert.NoError(t, err)
		assert.True(t, again.Attended)
	})

	t.Run("missing registration", func(t *testing.T) {
		_, err := repo.SetAttended(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
