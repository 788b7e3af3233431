package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/cmd/fx/admin_fx"
	"tunitour/internal/infra"
	"tunitour/internal/repositories"
	"tunitour/internal/services"
)

var (
	dbURL      string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "tourctl",
	Short: "Maintenance jobs for the TuniTour content database",
	Long: `tourctl runs the same data-maintenance jobs the admin API exposes:

  patch    - list and run schema patches
  links    - fill missing Google Maps links
  migrate  - copy a city's per-city tables into the canonical tables
  seed     - load cities from a YAML file
  enrich   - write missing descriptions with the configured AI provider`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to POSTGRES_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// env holds the services a command needs, built without the HTTP stack.
type env struct {
	cfg    *infra.Config
	log    *zap.Logger
	db     *gorm.DB
	closer []func() error

	patches  services.SchemaPatchServiceInterface
	links    services.LinkServiceInterface
	migrate  services.MigrateServiceInterface
	cities   services.CityServiceInterface
	enricher services.EnrichServiceInterface
}

func openEnv(ctx context.Context) (*env, error) {
	cfg := infra.LoadConfig()
	if dbURL != "" {
		cfg.PostgresURL = dbURL
	}
	if !jsonOutput {
		cfg.LogFormat = "console"
	}

	log, err := infra.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	db, err := infra.InitPostgresql(cfg, log)
	if err != nil {
		return nil, err
	}
	sdb, err := infra.NewSQLX(db)
	if err != nil {
		infra.ClosePostgresql(db, log)
		return nil, err
	}

	writer, closeWriter, err := admin_fx.NewDescriptionWriter(ctx, cfg)
	if err != nil {
		infra.ClosePostgresql(db, log)
		return nil, err
	}

	tableRepo := repositories.NewTableRepository(db, sdb)
	contentRepo := repositories.NewContentRepository(db)
	cityRepo := repositories.NewCityRepository(db)

	e := &env{
		cfg: cfg,
		log: log,
		db:  db,
		patches: services.NewSchemaPatchService(tableRepo, repositories.NewSchemaPatchRepository(db), cityRepo,
			repositories.NewGuideRepository(db), log.Named("patches")),
		links:    services.NewLinkService(tableRepo, cfg.MapCountry, log.Named("links")),
		migrate:  services.NewMigrateService(contentRepo, tableRepo, cityRepo, cfg.MapCountry, log.Named("migrate")),
		cities:   services.NewCityService(cityRepo, log.Named("cities")),
		enricher: services.NewEnrichService(tableRepo, writer, log.Named("enrich")),
	}
	if closeWriter != nil {
		e.closer = append(e.closer, closeWriter)
	}
	return e, nil
}

func (e *env) Close() {
	for _, c := range e.closer {
		if err := c(); err != nil {
			e.log.Warn("close failed", zap.Error(err))
		}
	}
	infra.ClosePostgresql(e.db, e.log)
	_ = e.log.Sync()
}

// withEnv opens the database for the duration of fn.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(ctx, e)
}
