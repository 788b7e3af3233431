package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"tunitour/internal/models/db_models"
	"tunitour/pkg/utils"
)

func TestContentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewContentRepository(db)

	zitouna := &db_models.Content{Name: "Zitouna Mosque", CitySlug: "tunis", Attributes: datatypes.JSON(`{"era":"8th century"}`)}
	bardo := &db_models.Content{Name: "Bardo Museum", CitySlug: "tunis"}
	elJem := &db_models.Content{Name: "El Jem Amphitheatre", CitySlug: "el-jem"}
	for _, c := range []*db_models.Content{zitouna, bardo, elJem} {
		require.NoError(t, repo.Create(ctx, utils.CategoryAttractions, c))
		assert.NotEqual(t, uuid.Nil, c.ID)
	}

	got, err := repo.GetByID(ctx, utils.CategoryAttractions, zitouna.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Zitouna Mosque", got.Name)
	assert.JSONEq(t, `{"era":"8th century"}`, string(got.Attributes))

	missing, err := repo.GetByID(ctx, utils.CategoryRestaurants, zitouna.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	tunis, err := repo.ListByCity(ctx, utils.CategoryAttractions, "tunis")
	require.NoError(t, err)
	require.Len(t, tunis, 2)
	assert.Equal(t, "Bardo Museum", tunis[0].Name)

	page, err := repo.List(ctx, utils.CategoryAttractions, "", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Zitouna Mosque", page[0].Name)

	bardo.Description = "Mosaics"
	require.NoError(t, repo.Update(ctx, utils.CategoryAttractions, bardo))
	got, err = repo.GetByID(ctx, utils.CategoryAttractions, bardo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mosaics", got.Description)

	require.NoError(t, repo.Delete(ctx, utils.CategoryAttractions, elJem.ID))
	got, err = repo.GetByID(ctx, utils.CategoryAttractions, elJem.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	exists, err := repo.ExistsUnscoped(ctx, utils.CategoryAttractions, elJem.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestContentRepository_UpdateMissingRow(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewContentRepository(db)

	err := repo.Update(context.Background(), utils.CategoryActivities, &db_models.Content{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		Name:      "Ghost",
	})
	assert.Error(t, err)
}
