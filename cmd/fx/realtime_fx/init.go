package realtime_fx

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/infra"
	"tunitour/pkg/realtime"
)

var Module = fx.Options(
	fx.Provide(provideHub, providePublisher),
	fx.Invoke(startBridge),
)

func provideHub(log *zap.Logger) *realtime.Hub {
	return realtime.NewHub(log.Named("realtime"))
}

// providePublisher goes through pg_notify on PostgreSQL so every instance sees the change.
func providePublisher(db *gorm.DB, sdb *sqlx.DB, hub *realtime.Hub, cfg *infra.Config) realtime.Publisher {
	if infra.IsPostgres(db) {
		return realtime.NewPGNotifier(sdb, cfg.RealtimeChannel)
	}
	return realtime.LocalPublisher{Hub: hub}
}

func startBridge(lc fx.Lifecycle, db *gorm.DB, hub *realtime.Hub, cfg *infra.Config, log *zap.Logger) {
	if !infra.IsPostgres(db) {
		return
	}

	bridge := realtime.NewPGBridge(cfg.PostgresURL, cfg.RealtimeChannel, hub, log.Named("realtime"))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
					log.Error("realtime bridge stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
