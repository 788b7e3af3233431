package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunitour/internal/models/db_models"
)

func TestCityRepository_UpsertKeepsID(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewCityRepository(db)

	first := &db_models.City{Slug: "tunis", Name: "Tunis"}
	require.NoError(t, repo.Create(ctx, first))

	require.NoError(t, repo.Upsert(ctx, &db_models.City{Slug: "tunis", Name: "Tunis City", Region: "Tunis"}))

	got, err := repo.GetBySlug(ctx, "tunis")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Tunis City", got.Name)
	assert.Equal(t, "Tunis", got.Region)

	deleted, err := repo.Delete(ctx, "tunis")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "tunis")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGuideRepository_CityLinks(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewGuideRepository(db)

	amira := &db_models.Guide{UserID: uuid.New(), DisplayName: "Amira", Languages: db_models.StringList{"ar", "fr"}}
	youssef := &db_models.Guide{UserID: uuid.New(), DisplayName: "Youssef"}
	require.NoError(t, repo.Save(ctx, amira))
	require.NoError(t, repo.Save(ctx, youssef))

	require.NoError(t, repo.ReplaceCityLinks(ctx, amira.ID, []string{"tunis", "sidi-bou-said"}))
	require.NoError(t, repo.LinkCity(ctx, "tunis", youssef.ID))
	require.NoError(t, repo.LinkCity(ctx, "tunis", youssef.ID))

	guides, err := repo.ListByCityLinks(ctx, "tunis")
	require.NoError(t, err)
	require.Len(t, guides, 2)
	assert.Equal(t, "Amira", guides[0].DisplayName)
	assert.Equal(t, db_models.StringList{"ar", "fr"}, guides[0].Languages)

	require.NoError(t, repo.ReplaceCityLinks(ctx, amira.ID, []string{"djerba"}))
	guides, err = repo.ListByCityLinks(ctx, "tunis")
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, "Youssef", guides[0].DisplayName)

	byUser, err := repo.GetByUserID(ctx, amira.UserID)
	require.NoError(t, err)
	require.NotNil(t, byUser)
	assert.Equal(t, amira.ID, byUser.ID)
}
