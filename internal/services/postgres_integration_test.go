//go:build integration

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"tunitour/internal/models/db_models"
	"tunitour/pkg/realtime"
	"tunitour/pkg/utils"
)

// startPostgres runs a throwaway PostgreSQL and returns its DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tunitour"),
		postgres.WithUsername("tunitour"),
		postgres.WithPassword("tunitour"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestPostgres_PatchLinkResolveMigrate(t *testing.T) {
	ctx := context.Background()
	e := newTestEnvAt(t, startPostgres(t))
	e.legacyCityTables(t)
	log := zap.NewNop()

	patches := NewSchemaPatchService(e.tables, e.patches, e.cities, e.guides, log)
	report, err := patches.RunPatches(ctx)
	require.NoError(t, err)
	assert.True(t, report.Success, "%+v", report.Steps)

	again, err := patches.RunPatches(ctx)
	require.NoError(t, err)
	assert.True(t, again.Success, "%+v", again.Steps)

	links := NewLinkService(e.tables, "Tunisia", log)
	reports, err := links.GenerateAllMapLinks(ctx)
	require.NoError(t, err)
	for _, r := range reports {
		assert.Zero(t, r.Failed, r.Table)
	}
	row, err := e.tables.FindRowByID(ctx, "attractions_sidi_bou_said", "1")
	require.NoError(t, err)
	link, _ := row["google_map_link"].(string)
	assert.True(t, strings.HasPrefix(link, "https://www.google.com/maps/search/?api=1&query="), link)

	content := newContentService(e)
	item, err := content.ResolveContent(ctx, utils.CategoryAttractions, "7")
	require.NoError(t, err)
	assert.Equal(t, "Bardo Museum", item.Name)
	assert.Equal(t, "attractions_tunis", item.SourceTable)

	item, err = content.ResolveContent(ctx, utils.CategoryRestaurants, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "Au Bon Vieux Temps", item.Name)

	require.NoError(t, e.cities.Create(ctx, &db_models.City{Slug: "sidi-bou-said", Name: "Sidi Bou Saïd"}))
	migrate := NewMigrateService(e.content, e.tables, e.cities, "Tunisia", log)
	m, err := migrate.MigrateCity(ctx, "sidi-bou-said")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Categories[0].Copied)

	migrated, err := content.ResolveContent(ctx, utils.CategoryAttractions,
		uuid.NewSHA1(uuid.NameSpaceURL, []byte("attractions_sidi_bou_said/1")).String())
	require.NoError(t, err)
	assert.Equal(t, "attractions", migrated.SourceTable)
}

func TestPostgres_NotifyBridge(t *testing.T) {
	dsn := startPostgres(t)
	e := newTestEnvAt(t, dsn)
	log := zap.NewNop()

	hub := realtime.NewHub(log)
	sub := hub.Subscribe(realtime.Filter{Table: "reviews", CitySlug: "tunis"}, 8)
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- realtime.NewPGBridge(dsn, "tunitour_test", hub, log).Run(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	notifier := realtime.NewPGNotifier(e.sdb, "tunitour_test")
	event := realtime.Event{Type: realtime.Insert, Table: "reviews", Record: map[string]any{"id": "rv-1", "city_slug": "tunis"}}

	// the listener connects asynchronously, so keep notifying until one lands
	var got realtime.Event
	require.Eventually(t, func() bool {
		if err := notifier.Publish(ctx, event); err != nil {
			return false
		}
		select {
		case got = <-sub.C:
			return true
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 20*time.Second, 100*time.Millisecond)
	assert.Equal(t, "rv-1", got.Record["id"])
}
