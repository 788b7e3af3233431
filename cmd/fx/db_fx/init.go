package db_fx

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/infra"
)

var Module = fx.Provide(
	provideDB, provideSQLX)

func provideDB(lc fx.Lifecycle, cfg *infra.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := infra.AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Info("schema migrated")
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	return db, nil
}

func provideSQLX(db *gorm.DB) (*sqlx.DB, error) {
	return infra.NewSQLX(db)
}
