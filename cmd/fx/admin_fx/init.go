package admin_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/infra"
	"tunitour/internal/repositories"
	"tunitour/internal/services"
)

var Module = fx.Provide(
	provideSchemaPatchRepo,
	provideSchemaPatchService,
	provideLinkService,
	provideMigrateService,
	provideDescriptionWriter,
	provideEnrichService)

func provideSchemaPatchRepo(db *gorm.DB) repositories.SchemaPatchRepository {
	return repositories.NewSchemaPatchRepository(db)
}

func provideSchemaPatchService(
	tableRepo repositories.TableRepository,
	patchRepo repositories.SchemaPatchRepository,
	cityRepo repositories.CityRepository,
	guideRepo repositories.GuideRepository,
	log *zap.Logger,
) services.SchemaPatchServiceInterface {
	return services.NewSchemaPatchService(tableRepo, patchRepo, cityRepo, guideRepo, log.Named("patches"))
}

func provideLinkService(tableRepo repositories.TableRepository, cfg *infra.Config, log *zap.Logger) services.LinkServiceInterface {
	return services.NewLinkService(tableRepo, cfg.MapCountry, log.Named("links"))
}

func provideMigrateService(
	contentRepo repositories.ContentRepository,
	tableRepo repositories.TableRepository,
	cityRepo repositories.CityRepository,
	cfg *infra.Config,
	log *zap.Logger,
) services.MigrateServiceInterface {
	return services.NewMigrateService(contentRepo, tableRepo, cityRepo, cfg.MapCountry, log.Named("migrate"))
}

// provideDescriptionWriter returns nil when ENRICH_PROVIDER is none.
func provideDescriptionWriter(lc fx.Lifecycle, cfg *infra.Config, log *zap.Logger) (services.DescriptionWriter, error) {
	w, closer, err := NewDescriptionWriter(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		lc.Append(fx.Hook{OnStop: func(ctx context.Context) error { return closer() }})
	}
	if w == nil {
		log.Info("description enrichment disabled")
	}
	return w, nil
}

// NewDescriptionWriter picks the provider named by ENRICH_PROVIDER. It is shared with tourctl.
func NewDescriptionWriter(ctx context.Context, cfg *infra.Config) (services.DescriptionWriter, func() error, error) {
	switch cfg.EnrichProvider {
	case "", "none":
		return nil, nil, nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil, fmt.Errorf("OPENAI_API_KEY is required when ENRICH_PROVIDER=openai")
		}
		return services.NewOpenAIDescriptionWriter(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.MapCountry), nil, nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil, fmt.Errorf("GEMINI_API_KEY is required when ENRICH_PROVIDER=gemini")
		}
		w, err := services.NewGeminiDescriptionWriter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MapCountry)
		if err != nil {
			return nil, nil, err
		}
		return w, w.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported enrich provider: %s. Use 'openai', 'gemini' or 'none'", cfg.EnrichProvider)
	}
}

func provideEnrichService(tableRepo repositories.TableRepository, writer services.DescriptionWriter, log *zap.Logger) services.EnrichServiceInterface {
	return services.NewEnrichService(tableRepo, writer, log.Named("enrich"))
}
