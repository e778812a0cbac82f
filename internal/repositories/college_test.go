package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollegeRepository_FindOrCreate(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewCollegeRepository(db, nil)
	ctx := context.Background()

	first, err := repo.FindOrCreate(ctx, "IIT Delhi")
	assert.NoError(t, err)
	assert.NotEqual(t, "", first.CollegeID.String())
	assert.Equal(t, "IIT Delhi", first.Name)

	t.Run("second call returns the same row", func(t *testing.T) {
		second, err := repo.FindOrCreate(ctx, "IIT Delhi")
		assert.NoError(t, err)
		assert.Equal(t, first.CollegeID, second.CollegeID)

		var count int
		assert.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM colleges"))
		assert.Equal(t, 1, count)
	})

	t.Run("distinct names get distinct rows", func(t *testing.T) {
		other, err := repo.FindOrCreate(ctx, "NIT Trichy")
		assert.NoError(t, err)
		assert.NotEqual(t, first.CollegeID, other.CollegeID)
	})
}
