package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/response_models"
	"tunitour/pkg/utils"
)

func newPatchService(e *testEnv) SchemaPatchServiceInterface {
	return NewSchemaPatchService(e.tables, e.patches, e.cities, e.guides, zap.NewNop())
}

func stepsFor(report response_models.PatchReport, target, action string) []response_models.PatchStep {
	var out []response_models.PatchStep
	for _, s := range report.Steps {
		if s.Target == target && s.Action == action {
			out = append(out, s)
		}
	}
	return out
}

func TestListPatches_RegistryOrder(t *testing.T) {
	svc := newPatchService(newTestEnv(t))

	var names []string
	for _, p := range svc.ListPatches() {
		names = append(names, p.Name)
		assert.NotEmpty(t, p.Description)
	}
	assert.Equal(t, []string{"city_slug", "city_name", "google_map_link", "booking_content_refs", "city_guides"}, names)
}

func TestRunPatches_AllAreIdempotent(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.legacyCityTables(t)
	require.NoError(t, e.cities.Create(ctx, &db_models.City{Slug: "sidi-bou-said", Name: "Sidi Bou Saïd"}))
	svc := newPatchService(e)

	report, err := svc.RunPatches(ctx)
	require.NoError(t, err)
	assert.True(t, report.Success, "%+v", report.Steps)

	added := stepsFor(report, "attractions_sidi_bou_said.city_slug", "add_column")
	require.Len(t, added, 1)
	fill := stepsFor(report, "attractions_sidi_bou_said.city_slug", "backfill")
	require.Len(t, fill, 1)
	assert.Equal(t, "3 rows", fill[0].Detail)

	// canonical tables already carry the column from the model
	present := stepsFor(report, "attractions.city_slug", "ensure_column")
	require.Len(t, present, 1)
	assert.Equal(t, "already present", present[0].Detail)

	// no city row for tunis, so city_name is added but left empty
	assert.Empty(t, stepsFor(report, "attractions_tunis.city_name", "backfill"))

	row, err := e.tables.FindRowByID(ctx, "attractions_sidi_bou_said", "1")
	require.NoError(t, err)
	assert.Equal(t, "sidi-bou-said", row["city_slug"])
	assert.Equal(t, "Sidi Bou Saïd", row["city_name"])
	_, hasLink := row["google_map_link"]
	assert.True(t, hasLink)

	again, err := svc.RunPatches(ctx)
	require.NoError(t, err)
	assert.True(t, again.Success)
	assert.Empty(t, stepsFor(again, "attractions_sidi_bou_said.city_slug", "add_column"))
	refill := stepsFor(again, "attractions_sidi_bou_said.city_slug", "backfill")
	require.Len(t, refill, 1)
	assert.Equal(t, "0 rows", refill[0].Detail)

	runs, err := svc.ListRuns(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, runs, len(report.Steps)+len(again.Steps))
}

func TestRunPatches_UnknownNameRunsNothing(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	svc := newPatchService(e)

	_, err := svc.RunPatches(ctx, "city_slug", "drop_everything")
	assert.ErrorIs(t, err, utils.ErrUnknownPatch)

	runs, err := svc.ListRuns(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunPatches_FailedStepsDoNotStopTheRun(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.exec(t, `DROP TABLE bookings`)
	svc := newPatchService(e)

	report, err := svc.RunPatches(ctx, "booking_content_refs")
	require.NoError(t, err)
	assert.False(t, report.Success)
	require.Len(t, report.Steps, 3)
	for _, s := range report.Steps {
		assert.Contains(t, s.Error, utils.ErrTableNotFound.Error())
	}

	runs, err := svc.ListRuns(ctx, "booking_content_refs", 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.False(t, runs[0].Success)
}

func TestRunPatches_CityGuidesFromLocations(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	guide := &db_models.Guide{UserID: uuid.New(), DisplayName: "Amira", Locations: db_models.StringList{"Sidi Bou Said", "Tunis", " "}}
	require.NoError(t, e.guides.Save(ctx, guide))
	svc := newPatchService(e)

	report, err := svc.RunPatches(ctx, "city_guides")
	require.NoError(t, err)
	assert.True(t, report.Success)
	fill := stepsFor(report, "city_guides", "backfill")
	require.Len(t, fill, 1)
	assert.Equal(t, "2 links", fill[0].Detail)

	linked, err := e.guides.ListByCityLinks(ctx, "sidi-bou-said")
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, guide.ID, linked[0].ID)
}
