package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/request_models"
	"tunitour/pkg/utils"
)

func newContentService(e *testEnv) ContentServiceInterface {
	return NewContentService(e.content, e.tables, "Tunisia", zap.NewNop())
}

func TestResolveContent_CanonicalFirst(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	svc := newContentService(e)

	row := &db_models.Content{Name: "Medina of Tunis", CitySlug: "tunis"}
	require.NoError(t, e.content.Create(ctx, utils.CategoryAttractions, row))

	item, err := svc.ResolveContent(ctx, utils.CategoryAttractions, row.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Medina of Tunis", item.Name)
	assert.Equal(t, "attractions", item.SourceTable)
}

func TestResolveContent_FallsBackToCityTables(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.legacyCityTables(t)
	svc := newContentService(e)

	item, err := svc.ResolveContent(ctx, utils.CategoryAttractions, "7")
	require.NoError(t, err)
	assert.Equal(t, "Bardo Museum", item.Name)
	assert.Equal(t, "attractions_tunis", item.SourceTable)
	assert.Equal(t, "tunis", item.CitySlug)

	item, err = svc.ResolveContent(ctx, utils.CategoryRestaurants, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "Au Bon Vieux Temps", item.Name)
	assert.Equal(t, "sidi-bou-said", item.CitySlug)
	assert.Equal(t, "Tunisian", item.Attributes["cuisine"])
}

func TestResolveContent_NotFound(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.legacyCityTables(t)
	svc := newContentService(e)

	for _, id := range []string{"", "  ", "404", uuid.NewString()} {
		_, err := svc.ResolveContent(ctx, utils.CategoryAttractions, id)
		assert.ErrorIs(t, err, utils.ErrContentNotFound, "id %q", id)
	}

	// the id exists, but only under another category
	_, err := svc.ResolveContent(ctx, utils.CategoryActivities, "7")
	assert.ErrorIs(t, err, utils.ErrContentNotFound)
}

func TestAggregateCity_MergesAndSorts(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.legacyCityTables(t)
	svc := newContentService(e)

	canonical := &db_models.Content{Name: "Cap Carthage Lookout", CitySlug: "sidi-bou-said"}
	require.NoError(t, e.content.Create(ctx, utils.CategoryAttractions, canonical))
	elsewhere := &db_models.Content{Name: "Zaytuna", CitySlug: "tunis"}
	require.NoError(t, e.content.Create(ctx, utils.CategoryAttractions, elsewhere))

	got, err := svc.AggregateCity(ctx, "Sidi Bou Said")
	require.NoError(t, err)
	assert.Equal(t, "sidi-bou-said", got.CitySlug)

	names := make([]string, 0, len(got.Attractions))
	for _, a := range got.Attractions {
		names = append(names, a.Name)
		assert.Equal(t, "sidi-bou-said", a.CitySlug)
	}
	assert.Equal(t, []string{"", "Café des Nattes", "Cap Carthage Lookout", "Dar Ennejma Ezzahra"}, names)

	require.Len(t, got.Restaurants, 1)
	assert.Equal(t, "Au Bon Vieux Temps", got.Restaurants[0].Name)
	assert.NotNil(t, got.Activities)
	assert.Empty(t, got.Activities)
}

func TestAggregateCity_CanonicalWinsOnSharedID(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	svc := newContentService(e)

	id := uuid.New()
	row := &db_models.Content{Name: "Canonical Souk", CitySlug: "djerba"}
	row.ID = id
	require.NoError(t, e.content.Create(ctx, utils.CategoryActivities, row))
	e.exec(t,
		`CREATE TABLE activities_djerba (id TEXT PRIMARY KEY, name TEXT)`,
		`INSERT INTO activities_djerba (id, name) VALUES ('`+id.String()+`', 'Legacy Souk'), ('x', 'Jet ski')`,
	)

	got, err := svc.AggregateCity(ctx, "djerba")
	require.NoError(t, err)
	require.Len(t, got.Activities, 2)
	assert.Equal(t, "Canonical Souk", got.Activities[0].Name)
	assert.Equal(t, "Jet ski", got.Activities[1].Name)
}

func TestResolveContent_SkipsBrokenCityTable(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.exec(t,
		`CREATE TABLE attractions_broken (name TEXT)`,
		`INSERT INTO attractions_broken (name) VALUES ('no id column')`,
	)
	core, logs := observer.New(zap.WarnLevel)
	svc := NewContentService(e.content, e.tables, "Tunisia", zap.New(core))

	_, err := svc.ResolveContent(ctx, utils.CategoryAttractions, "7")
	assert.ErrorIs(t, err, utils.ErrContentNotFound)
	failed := logs.FilterMessage("per-city lookup failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "attractions_broken", failed[0].ContextMap()["table"])

	e.legacyCityTables(t)
	item, err := svc.ResolveContent(ctx, utils.CategoryAttractions, "7")
	require.NoError(t, err)
	assert.Equal(t, "Bardo Museum", item.Name)
}

func TestAggregateCity_AfterMigrationListsEachItemOnce(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.legacyCityTables(t)
	require.NoError(t, e.cities.Create(ctx, &db_models.City{Slug: "sidi-bou-said", Name: "Sidi Bou Saïd"}))
	_, err := NewMigrateService(e.content, e.tables, e.cities, "Tunisia", zap.NewNop()).MigrateCity(ctx, "sidi-bou-said")
	require.NoError(t, err)

	got, err := newContentService(e).AggregateCity(ctx, "sidi-bou-said")
	require.NoError(t, err)

	var names, sources []string
	for _, a := range got.Attractions {
		names = append(names, a.Name)
		sources = append(sources, a.SourceTable)
	}
	// the nameless row is never migrated, so it still comes from the city table
	assert.Equal(t, []string{"", "Café des Nattes", "Dar Ennejma Ezzahra"}, names)
	assert.Equal(t, []string{"attractions_sidi_bou_said", "attractions", "attractions"}, sources)

	require.Len(t, got.Restaurants, 1)
	assert.Equal(t, "restaurants", got.Restaurants[0].SourceTable)
}

func TestAggregateCity_EmptySlug(t *testing.T) {
	svc := newContentService(newTestEnv(t))
	_, err := svc.AggregateCity(context.Background(), "  ")
	assert.ErrorIs(t, err, utils.ErrCityNotFound)
}

func TestContentCRUD(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	svc := newContentService(e)

	_, err := svc.CreateContent(ctx, utils.CategoryRestaurants, request_models.UpsertContentRequest{Name: "  "})
	var verrs utils.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"Name is required"}, verrs.Messages())

	created, err := svc.CreateContent(ctx, utils.CategoryRestaurants, request_models.UpsertContentRequest{
		Name:       "Dar El Jeld",
		CitySlug:   "Tunis",
		Attributes: map[string]interface{}{"cuisine": "Tunisian"},
	})
	require.NoError(t, err)
	assert.Equal(t, "tunis", created.CitySlug)
	assert.Equal(t, utils.BuildMapLink("Dar El Jeld", "tunis", "Tunisia"), created.GoogleMapLink)
	assert.Equal(t, "Tunisian", created.Attributes["cuisine"])

	updated, err := svc.UpdateContent(ctx, utils.CategoryRestaurants, created.ID, request_models.UpsertContentRequest{
		Name:          "Dar El Jeld",
		CitySlug:      "tunis",
		GoogleMapLink: "https://maps.example/jeld",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://maps.example/jeld", updated.GoogleMapLink)

	list, err := svc.ListContent(ctx, utils.CategoryRestaurants, "tunis", 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteContent(ctx, utils.CategoryRestaurants, created.ID))
	assert.ErrorIs(t, svc.DeleteContent(ctx, utils.CategoryRestaurants, created.ID), utils.ErrContentNotFound)
	_, err = svc.UpdateContent(ctx, utils.CategoryRestaurants, "not-a-uuid", request_models.UpsertContentRequest{Name: "x"})
	assert.ErrorIs(t, err, utils.ErrContentNotFound)
}
