package content_fx

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/infra"
	"tunitour/internal/repositories"
	"tunitour/internal/services"
)

var Module = fx.Provide(
	provideContentRepo, provideTableRepo, provideCityRepo,
	provideContentService, provideCityService)

func provideContentRepo(db *gorm.DB) repositories.ContentRepository {
	return repositories.NewContentRepository(db)
}

func provideTableRepo(db *gorm.DB, sdb *sqlx.DB) repositories.TableRepository {
	return repositories.NewTableRepository(db, sdb)
}

func provideCityRepo(db *gorm.DB) repositories.CityRepository {
	return repositories.NewCityRepository(db)
}

func provideContentService(
	contentRepo repositories.ContentRepository,
	tableRepo repositories.TableRepository,
	cfg *infra.Config,
	log *zap.Logger,
) services.ContentServiceInterface {
	return services.NewContentService(contentRepo, tableRepo, cfg.MapCountry, log.Named("content"))
}

func provideCityService(cityRepo repositories.CityRepository, log *zap.Logger) services.CityServiceInterface {
	return services.NewCityService(cityRepo, log.Named("cities"))
}
