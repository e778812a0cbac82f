package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusops/college-events/internal/models"
)

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	saved, err := repo.Save(ctx, &models.User{
		Username:     "alice",
		Email:        "alice@college.edu",
		PasswordHash: "hashed",
		FullName:     "Alice Kumar",
		Role:         models.RoleUser,
	})
	assert.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.True(t, saved.IsActive)
	assert.False(t, saved.CreatedAt.IsZero())

	t.Run("duplicate username", func(t *testing.T) {
		_, err := repo.Save(ctx, &models.User{
			Username:     "alice",
			Email:        "other@college.edu",
			PasswordHash: "hashed",
			FullName:     "Other Alice",
			Role:         models.RoleUser,
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Save(ctx, &models.User{
			Username:     "alice2",
			Email:        "alice@college.edu",
			PasswordHash: "hashed",
			FullName:     "Alice Two",
			Role:         models.RoleUser,
		})
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestUserReadRepository_GetByIdentifier(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	colleges := NewCollegeRepository(db, nil)
	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)

	college, err := colleges.FindOrCreate(ctx, "IIT Delhi")
	assert.NoError(t, err)

	_, err = writeRepo.Save(ctx, &models.User{
		CollegeID:    &college.CollegeID,
		Username:     "charlie",
		Email:        "charlie@college.edu",
		PasswordHash: "hashed",
		FullName:     "Charlie",
		Role:         models.RoleUser,
	})
	assert.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		user, err := readRepo.GetByIdentifier(ctx, "charlie")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("by email", func(t *testing.T) {
		user, err := readRepo.GetByIdentifier(ctx, "charlie@college.edu")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("college is joined in", func(t *testing.T) {
		user, err := readRepo.GetByIdentifier(ctx, "charlie")
		assert.NoError(t, err)
		assert.NotNil(t, user.College)
		assert.Equal(t, "IIT Delhi", user.College.Name)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		user, err := readRepo.GetByIdentifier(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)

	saved, err := writeRepo.Save(ctx, &models.User{
		Username:     "dave",
		Email:        "dave@college.edu",
		PasswordHash: "hashed",
		FullName:     "Dave",
		Role:         models.RoleAdmin,
	})
	assert.NoError(t, err)

	user, err := readRepo.GetByID(ctx, saved.ID)
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Nil(t, user.College)

	missing, err := readRepo.GetByID(ctx, 99999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserWriteRepository_UpdateLastLogin(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)

	saved, err := writeRepo.Save(ctx, &models.User{
		Username:     "erin",
		Email:        "erin@college.edu",
		PasswordHash: "hashed",
		FullName:     "Erin",
		Role:         models.RoleUser,
	})
	assert.NoError(t, err)
	assert.Nil(t, saved.LastLogin)

	assert.NoError(t, writeRepo.UpdateLastLogin(ctx, saved.ID))

	user, err := readRepo.GetByID(ctx, saved.ID)
	assert.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}

func TestUserWriteRepository_Delete(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)

	saved, err := writeRepo.Save(ctx, &models.User{
		Username:     "frank",
		Email:        "frank@college.edu",
		PasswordHash: "hashed",
		FullName:     "Frank",
		Role:         models.RoleUser,
	})
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.Delete(ctx, saved.ID))

	user, err := readRepo.GetByID(ctx, saved.ID)
	assert.NoError(t, err)
	assert.Nil(t, user)

	assert.ErrorIs(t, writeRepo.Delete(ctx, saved.ID), ErrNotFound)
}

func TestUserReadRepository_List(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)

	for _, u := range []string{"u1", "u2", "u3"} {
		_, err := writeRepo.Save(ctx, &models.User{
			Username:     u,
			Email:        u + "@college.edu",
			PasswordHash: "hashed",
			FullName:     u,
			Role:         models.RoleUser,
		})
		assert.NoError(t, err)
	}

	users, err := readRepo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 3)
}
