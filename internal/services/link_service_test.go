package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tunitour/internal/models/db_models"
	"tunitour/pkg/utils"
)

func TestGenerateMapLinks_FillsOnlyMissing(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.exec(t,
		`CREATE TABLE restaurants_sidi_bou_said (id INTEGER PRIMARY KEY, name TEXT, city_name TEXT, google_map_link TEXT)`,
		`INSERT INTO restaurants_sidi_bou_said (id, name, city_name, google_map_link) VALUES
			(1, 'Au Bon Vieux Temps', NULL, NULL),
			(2, 'Dar Zarrouk', 'Sidi Bou Saïd', ''),
			(3, 'Kept', NULL, 'https://maps.example/kept'),
			(4, NULL, NULL, NULL)`,
	)
	svc := NewLinkService(e.tables, "Tunisia", zap.NewNop())

	report, err := svc.GenerateMapLinks(ctx, "restaurants_sidi_bou_said")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Failed)

	row, err := e.tables.FindRowByID(ctx, "restaurants_sidi_bou_said", "1")
	require.NoError(t, err)
	assert.Equal(t, utils.BuildMapLink("Au Bon Vieux Temps", "sidi bou said", "Tunisia"), row["google_map_link"])

	row, err = e.tables.FindRowByID(ctx, "restaurants_sidi_bou_said", "2")
	require.NoError(t, err)
	assert.Equal(t, utils.BuildMapLink("Dar Zarrouk", "Sidi Bou Saïd", "Tunisia"), row["google_map_link"])

	row, err = e.tables.FindRowByID(ctx, "restaurants_sidi_bou_said", "3")
	require.NoError(t, err)
	assert.Equal(t, "https://maps.example/kept", row["google_map_link"])
}

func TestGenerateMapLinks_Batches(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.exec(t, `CREATE TABLE attractions_djerba (id INTEGER PRIMARY KEY, name TEXT, google_map_link TEXT)`)
	values := make([]string, 0, 250)
	for i := 1; i <= 250; i++ {
		values = append(values, fmt.Sprintf("(%d, 'Spot %d', NULL)", i, i))
	}
	e.exec(t, `INSERT INTO attractions_djerba (id, name, google_map_link) VALUES `+strings.Join(values, ", "))
	svc := NewLinkService(e.tables, "Tunisia", zap.NewNop())

	report, err := svc.GenerateMapLinks(ctx, "attractions_djerba")
	require.NoError(t, err)
	assert.Equal(t, 250, report.Updated)

	missing, err := e.tables.RowsMissing(ctx, "attractions_djerba", "google_map_link")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestGenerateMapLinks_Errors(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.exec(t, `CREATE TABLE activities_tozeur (id INTEGER PRIMARY KEY, name TEXT)`)
	svc := NewLinkService(e.tables, "Tunisia", zap.NewNop())

	_, err := svc.GenerateMapLinks(ctx, "accounts")
	assert.ErrorIs(t, err, utils.ErrTableNotFound)

	_, err = svc.GenerateMapLinks(ctx, "activities_kairouan")
	assert.ErrorIs(t, err, utils.ErrTableNotFound)

	_, err = svc.GenerateMapLinks(ctx, "activities_tozeur")
	assert.ErrorIs(t, err, utils.ErrColumnMissing)
}

func TestGenerateAllMapLinks(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.exec(t, `CREATE TABLE activities_tozeur (id INTEGER PRIMARY KEY, name TEXT)`)
	require.NoError(t, e.content.Create(ctx, utils.CategoryAttractions, &db_models.Content{Name: "Medina", CitySlug: "tunis"}))
	svc := NewLinkService(e.tables, "Tunisia", zap.NewNop())

	reports, err := svc.GenerateAllMapLinks(ctx)
	require.NoError(t, err)

	byTable := map[string]int{}
	for i, r := range reports {
		byTable[r.Table] = i
	}
	assert.Len(t, reports, 4)
	assert.Contains(t, reports[byTable["activities_tozeur"]].Error, "required column is missing")
	assert.Equal(t, 1, reports[byTable["attractions"]].Updated)
	assert.Empty(t, reports[byTable["restaurants"]].Error)
}
