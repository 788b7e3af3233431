package booking_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/repositories"
	"tunitour/internal/services"
	"tunitour/pkg/realtime"
)

var Module = fx.Provide(
	provideBookingRepo, provideBookingService)

func provideBookingRepo(db *gorm.DB) repositories.BookingRepository {
	return repositories.NewBookingRepository(db)
}

func provideBookingService(
	bookingRepo repositories.BookingRepository,
	guideRepo repositories.GuideRepository,
	accountRepo repositories.AccountRepository,
	content services.ContentServiceInterface,
	mail services.IMailService,
	publisher realtime.Publisher,
	log *zap.Logger,
) services.BookingServiceInterface {
	return services.NewBookingService(bookingRepo, guideRepo, accountRepo, content, mail, publisher, log.Named("bookings"))
}
