package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tunitour/internal/api/controllers"
	"tunitour/internal/infra"
	"tunitour/pkg/middleware"
	"tunitour/pkg/utils"
)

type routeControllers struct {
	content   *controllers.ContentController
	city      *controllers.CityController
	admin     *controllers.AdminController
	guide     *controllers.GuideController
	booking   *controllers.BookingController
	community *controllers.CommunityController
	account   *controllers.AccountController
}

func ProvideRouter(
	cfg *infra.Config,
	log *zap.Logger,
	jwt *utils.JWTManager,
	contentController *controllers.ContentController,
	cityController *controllers.CityController,
	adminController *controllers.AdminController,
	guideController *controllers.GuideController,
	bookingController *controllers.BookingController,
	communityController *controllers.CommunityController,
	accountController *controllers.AccountController,
) *gin.Engine {
	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = 12 << 20
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.ZapLogger(log.Named("http")))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	if cfg.LocalStorage() {
		r.Static("/storage", cfg.StorageDir)
	}

	RegisterRoutes(r, jwt, routeControllers{
		content:   contentController,
		city:      cityController,
		admin:     adminController,
		guide:     guideController,
		booking:   bookingController,
		community: communityController,
		account:   accountController,
	})

	return r
}

func RegisterRoutes(r *gin.Engine, jwt *utils.JWTManager, rc routeControllers) {
	auth := middleware.JWTAuthMiddleware(jwt)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", rc.account.SignUp)
	authGroup.POST("/signin", rc.account.SignIn)
	authGroup.POST("/forgot-password", rc.account.ForgotPassword)
	authGroup.POST("/reset-password", rc.account.ResetPassword)
	authGroup.GET("/me", auth, rc.account.Me)

	contentGroup := api.Group("/content")
	contentGroup.GET("/:category", rc.content.ListContent)
	contentGroup.GET("/:category/:id", rc.content.GetContent)

	cities := api.Group("/cities")
	cities.GET("", rc.city.ListCities)
	cities.GET("/:slug", rc.city.GetCity)
	cities.GET("/:slug/content", rc.content.GetCityContent)
	cities.GET("/:slug/guides", rc.guide.ListGuidesForCity)
	cities.GET("/:slug/reviews", rc.community.ListReviews)
	cities.POST("/:slug/reviews", auth, rc.community.CreateReview)
	cities.GET("/:slug/reviews/live", rc.community.LiveReviews)
	cities.GET("/:slug/media", rc.community.ListMedia)
	cities.POST("/:slug/media", auth, rc.community.UploadMedia)
	cities.GET("/:slug/media/live", rc.community.LiveMedia)

	api.DELETE("/reviews/:id", auth, rc.community.DeleteReview)
	api.DELETE("/media/:id", auth, rc.community.DeleteMedia)

	guides := api.Group("/guides")
	guides.PUT("/me", auth, middleware.RoleMiddleware("guide"), rc.guide.UpsertMyProfile)
	guides.GET("/:id", rc.guide.GetGuide)

	bookings := api.Group("/bookings", auth)
	bookings.POST("", rc.booking.CreateBooking)
	bookings.GET("", rc.booking.ListMyBookings)
	bookings.GET("/:id", rc.booking.GetBooking)
	bookings.PATCH("/:id/status", rc.booking.UpdateBookingStatus)

	admin := api.Group("/admin", auth, middleware.RoleMiddleware("admin"))
	admin.GET("/patches", rc.admin.ListPatches)
	admin.GET("/patches/runs", rc.admin.ListPatchRuns)
	admin.POST("/patches/run", rc.admin.RunPatches)
	admin.POST("/patches/:name/run", rc.admin.RunPatch)
	admin.POST("/map-links", rc.admin.GenerateAllMapLinks)
	admin.POST("/map-links/:table", rc.admin.GenerateMapLinks)
	admin.POST("/migrate-city/:slug", rc.admin.MigrateCity)
	admin.POST("/enrich/:table", rc.admin.EnrichDescriptions)

	admin.POST("/cities", rc.city.CreateCity)
	admin.PUT("/cities/:slug", rc.city.UpdateCity)
	admin.DELETE("/cities/:slug", rc.city.DeleteCity)

	admin.POST("/content/:category", rc.content.CreateContent)
	admin.PUT("/content/:category/:id", rc.content.UpdateContent)
	admin.DELETE("/content/:category/:id", rc.content.DeleteContent)
}
