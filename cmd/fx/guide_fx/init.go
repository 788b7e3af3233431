package guide_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/repositories"
	"tunitour/internal/services"
)

var Module = fx.Provide(
	provideGuideRepo, provideGuideService)

func provideGuideRepo(db *gorm.DB) repositories.GuideRepository {
	return repositories.NewGuideRepository(db)
}

func provideGuideService(guideRepo repositories.GuideRepository, log *zap.Logger) services.GuideServiceInterface {
	return services.NewGuideService(guideRepo, log.Named("guides"))
}
