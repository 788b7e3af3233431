package services

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/infra"
	"tunitour/internal/repositories"
)

type testEnv struct {
	db  *gorm.DB
	sdb *sqlx.DB

	tables   repositories.TableRepository
	content  repositories.ContentRepository
	cities   repositories.CityRepository
	guides   repositories.GuideRepository
	bookings repositories.BookingRepository
	accounts repositories.AccountRepository
	reviews  repositories.ReviewRepository
	media    repositories.MediaRepository
	patches  repositories.SchemaPatchRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvAt(t, "sqlite://"+filepath.Join(t.TempDir(), "svc.db"))
}

func newTestEnvAt(t *testing.T, dsn string) *testEnv {
	t.Helper()
	cfg := &infra.Config{PostgresURL: dsn}
	db, err := infra.InitPostgresql(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { infra.ClosePostgresql(db, zap.NewNop()) })
	require.NoError(t, infra.AutoMigrate(db))

	sdb, err := infra.NewSQLX(db)
	require.NoError(t, err)

	return &testEnv{
		db:       db,
		sdb:      sdb,
		tables:   repositories.NewTableRepository(db, sdb),
		content:  repositories.NewContentRepository(db),
		cities:   repositories.NewCityRepository(db),
		guides:   repositories.NewGuideRepository(db),
		bookings: repositories.NewBookingRepository(db),
		accounts: repositories.NewAccountRepository(db),
		reviews:  repositories.NewReviewRepository(db),
		media:    repositories.NewMediaRepository(db),
		patches:  repositories.NewSchemaPatchRepository(db),
	}
}

func (e *testEnv) exec(t *testing.T, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		_, err := e.sdb.Exec(s)
		require.NoError(t, err, s)
	}
}

// legacyCityTables creates per-city tables shaped like the hand-made ones they replace.
func (e *testEnv) legacyCityTables(t *testing.T) {
	e.exec(t,
		`CREATE TABLE attractions_sidi_bou_said (id INTEGER PRIMARY KEY, name TEXT, description TEXT, entry_fee TEXT, created_at TEXT)`,
		`INSERT INTO attractions_sidi_bou_said (id, name, description, entry_fee, created_at) VALUES
			(1, 'Dar Ennejma Ezzahra', 'Baron d''Erlanger palace', '5 TND', '2023-01-01'),
			(2, 'Café des Nattes', '', NULL, NULL),
			(3, '', 'nameless', NULL, NULL)`,
		`CREATE TABLE restaurants_sidi_bou_said (id TEXT PRIMARY KEY, title TEXT, cuisine TEXT)`,
		`INSERT INTO restaurants_sidi_bou_said (id, title, cuisine) VALUES ('r-1', 'Au Bon Vieux Temps', 'Tunisian')`,
		`CREATE TABLE attractions_tunis (id INTEGER PRIMARY KEY, name TEXT)`,
		`INSERT INTO attractions_tunis (id, name) VALUES (7, 'Bardo Museum')`,
	)
}
