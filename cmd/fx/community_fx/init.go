package community_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/repositories"
	"tunitour/internal/services"
	"tunitour/pkg/realtime"
	"tunitour/pkg/storage"
)

var Module = fx.Provide(
	provideReviewRepo, provideMediaRepo,
	provideReviewService, provideMediaService)

func provideReviewRepo(db *gorm.DB) repositories.ReviewRepository {
	return repositories.NewReviewRepository(db)
}

func provideMediaRepo(db *gorm.DB) repositories.MediaRepository {
	return repositories.NewMediaRepository(db)
}

func provideReviewService(reviewRepo repositories.ReviewRepository, publisher realtime.Publisher, log *zap.Logger) services.ReviewServiceInterface {
	return services.NewReviewService(reviewRepo, publisher, log.Named("reviews"))
}

func provideMediaService(mediaRepo repositories.MediaRepository, bucket storage.Bucket, publisher realtime.Publisher, log *zap.Logger) services.MediaServiceInterface {
	return services.NewMediaService(mediaRepo, bucket, publisher, log.Named("media"))
}
