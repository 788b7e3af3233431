package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tunitour/cmd/fx/account_fx"
	"tunitour/cmd/fx/admin_fx"
	"tunitour/cmd/fx/booking_fx"
	"tunitour/cmd/fx/community_fx"
	"tunitour/cmd/fx/config_fx"
	"tunitour/cmd/fx/content_fx"
	"tunitour/cmd/fx/controllers_fx"
	"tunitour/cmd/fx/db_fx"
	"tunitour/cmd/fx/guide_fx"
	"tunitour/cmd/fx/mail_fx"
	"tunitour/cmd/fx/memcache_fx"
	"tunitour/cmd/fx/realtime_fx"
	"tunitour/cmd/fx/storage_fx"
	"tunitour/internal/infra"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		storage_fx.Module,
		realtime_fx.Module,
		content_fx.Module,
		guide_fx.Module,
		admin_fx.Module,
		booking_fx.Module,
		community_fx.Module,
		account_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
