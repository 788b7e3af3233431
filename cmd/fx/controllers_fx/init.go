package controllers_fx

import (
	"go.uber.org/fx"

	"tunitour/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewContentController),
	fx.Provide(controllers.NewCityController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewGuideController),
	fx.Provide(controllers.NewBookingController),
	fx.Provide(controllers.NewCommunityController),
	fx.Provide(controllers.NewAccountController))
