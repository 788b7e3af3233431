package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunitour/pkg/utils"
)

func seedCityTable(t *testing.T) TableRepository {
	t.Helper()
	db, sdb := newTestDB(t)
	exec(t, sdb,
		`CREATE TABLE attractions_sidi_bou_said (id INTEGER PRIMARY KEY, name TEXT, description TEXT, google_map_link TEXT)`,
		`INSERT INTO attractions_sidi_bou_said (id, name, description, google_map_link) VALUES
			(1, 'Dar Ennejma Ezzahra', 'Palace', 'https://maps.example/1'),
			(2, 'Café des Nattes', '', NULL),
			(3, 'Blue Doors', NULL, '')`,
		`CREATE TABLE restaurants_tunis (id TEXT PRIMARY KEY, name TEXT)`,
	)
	return NewTableRepository(db, sdb)
}

func TestTableRepository_Discovery(t *testing.T) {
	ctx := context.Background()
	repo := seedCityTable(t)

	tables, err := repo.CityTables(ctx, utils.CategoryAttractions)
	require.NoError(t, err)
	assert.Equal(t, []string{"attractions_sidi_bou_said"}, tables)

	ok, err := repo.HasTable(ctx, "restaurants_tunis")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasTable(ctx, "activities_tunis")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.HasColumn(ctx, "attractions_sidi_bou_said", "Google_Map_Link")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasColumn(ctx, "restaurants_tunis", "google_map_link")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTableRepository_FindRowByIDComparesAsText(t *testing.T) {
	ctx := context.Background()
	repo := seedCityTable(t)

	row, err := repo.FindRowByID(ctx, "attractions_sidi_bou_said", "2")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "Café des Nattes", row["name"])

	row, err = repo.FindRowByID(ctx, "attractions_sidi_bou_said", "99")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestTableRepository_ListAndMissing(t *testing.T) {
	ctx := context.Background()
	repo := seedCityTable(t)

	rows, err := repo.ListRows(ctx, "attractions_sidi_bou_said", "name")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Blue Doors", rows[0]["name"])

	missing, err := repo.RowsMissing(ctx, "attractions_sidi_bou_said", "google_map_link")
	require.NoError(t, err)
	assert.Len(t, missing, 2)
}

func TestTableRepository_ColumnWrites(t *testing.T) {
	ctx := context.Background()
	repo := seedCityTable(t)
	table := "attractions_sidi_bou_said"

	require.NoError(t, repo.AddColumn(ctx, table, "city_slug", "TEXT"))
	n, err := repo.BackfillColumn(ctx, table, "city_slug", "sidi-bou-said")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = repo.BackfillColumn(ctx, table, "city_slug", "other")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.UpdateColumnByIDs(ctx, table, "google_map_link", map[string]string{"2": "link-2", "3": "link-3"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, repo.UpdateColumnForID(ctx, table, "description", "3", "Painted doors"))

	missing, err := repo.RowsMissing(ctx, table, "google_map_link")
	require.NoError(t, err)
	assert.Empty(t, missing)

	row, err := repo.FindRowByID(ctx, table, "3")
	require.NoError(t, err)
	assert.Equal(t, "link-3", row["google_map_link"])
	assert.Equal(t, "Painted doors", row["description"])
	assert.Equal(t, "sidi-bou-said", row["city_slug"])
}

func TestTableRepository_UpdateColumnByIDsEmpty(t *testing.T) {
	repo := seedCityTable(t)
	n, err := repo.UpdateColumnByIDs(context.Background(), "restaurants_tunis", "name", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
