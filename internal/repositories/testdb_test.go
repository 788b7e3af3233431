package repositories

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/infra"
)

func newTestDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()
	cfg := &infra.Config{PostgresURL: "sqlite://" + filepath.Join(t.TempDir(), "repo.db")}
	db, err := infra.InitPostgresql(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { infra.ClosePostgresql(db, zap.NewNop()) })

	require.NoError(t, infra.AutoMigrate(db))
	sdb, err := infra.NewSQLX(db)
	require.NoError(t, err)
	return db, sdb
}

func exec(t *testing.T, sdb *sqlx.DB, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		_, err := sdb.Exec(s)
		require.NoError(t, err, s)
	}
}
