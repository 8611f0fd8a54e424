package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignatzorin/classifieds-backend/internal/auth"
	"github.com/ignatzorin/classifieds-backend/internal/config"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/handler"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/middleware"
)

// Handlers собирает все HTTP хэндлеры приложения.
type Handlers struct {
	Health     *handler.HealthHandler
	Listing    *handler.ListingHandler
	Moderation *handler.ModerationHandler
	Report     *handler.ReportHandler
	User       *handler.UserHandler
	Favorite   *handler.FavoriteHandler
	WS         *handler.WSHandler
}

func SetupRouter(cfg *config.Config, tokens *auth.TokenManager, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if strings.HasPrefix(cfg.MediaBaseURL, "/") {
		r.Static(cfg.MediaBaseURL, cfg.MediaStoragePath)
	}

	api := r.Group("/api")
	requireAuth := middleware.Auth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	// Публичные маршруты
	api.GET("/listings", h.Listing.ListListings)
	api.GET("/listings/:id", middleware.UUIDValidator("id"), optionalAuth, h.Listing.GetListing)
	api.POST("/listings/:id/views",
		middleware.UUIDValidator("id"),
		optionalAuth,
		middleware.RateLimit(cfg.RateLimitLimit, cfg.RateLimitPeriod),
		h.Listing.RecordView,
	)
	api.GET("/ws", h.WS.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(requireAuth)
	{
		protected.POST("/listings", h.Listing.CreateListing)
		protected.PUT("/listings/:id", middleware.UUIDValidator("id"), h.Listing.UpdateListing)
		protected.PUT("/listings/:id/active", middleware.UUIDValidator("id"), h.Listing.SetActive)
		protected.POST("/listings/:id/images", middleware.UUIDValidator("id"), h.Listing.UploadImage)
		protected.GET("/listings/:id/contact", middleware.UUIDValidator("id"), h.Listing.GetContact)

		protected.GET("/users/:id", middleware.UUIDValidator("id"), h.User.GetProfile)
		protected.GET("/me/ban", h.User.MyBanStatus)

		protected.GET("/favorites", h.Favorite.List)
		protected.GET("/favorites/:listingId", middleware.UUIDValidator("listingId"), h.Favorite.IsSaved)
		protected.POST("/favorites/:listingId", middleware.UUIDValidator("listingId"), h.Favorite.Save)
		protected.DELETE("/favorites/:listingId", middleware.UUIDValidator("listingId"), h.Favorite.Unsave)

		protected.POST("/reports", middleware.RateLimit(cfg.ReportRateLimit, cfg.RateLimitPeriod), h.Report.CreateReport)
		protected.GET("/reports/listing/:listingId", middleware.UUIDValidator("listingId"), h.Report.GetMyListingReport)
		protected.DELETE("/reports/:id", middleware.UUIDValidator("id"), h.Report.CancelReport)
	}

	admin := api.Group("/admin")
	admin.Use(requireAuth, middleware.RequireAdmin())
	{
		admin.GET("/listings", h.Moderation.ListQueue)
		admin.POST("/listings/:id/approve", middleware.UUIDValidator("id"), h.Moderation.Approve)
		admin.POST("/listings/:id/reject", middleware.UUIDValidator("id"), h.Moderation.Reject)
		admin.PUT("/listings/:id", middleware.UUIDValidator("id"), h.Listing.UpdateListing)
		admin.DELETE("/listings/:id", middleware.UUIDValidator("id"), h.Moderation.Delete)
		admin.POST("/listings/:id/badges/:badgeId", middleware.UUIDValidator("id", "badgeId"), h.Moderation.AttachBadge)
		admin.DELETE("/listings/:id/badges/:badgeId", middleware.UUIDValidator("id", "badgeId"), h.Moderation.DetachBadge)

		admin.GET("/reports", h.Report.ListReports)
		admin.GET("/reports/stats", h.Report.Stats)
		admin.PUT("/reports/:id", middleware.UUIDValidator("id"), h.Report.ResolveReport)
		admin.DELETE("/reports/:id", middleware.UUIDValidator("id"), h.Report.DeleteReport)

		admin.POST("/users/:id/ban", middleware.UUIDValidator("id"), h.User.BanUser)
		admin.DELETE("/users/:id/ban", middleware.UUIDValidator("id"), h.User.UnbanUser)
		admin.PUT("/users/:id/verified", middleware.UUIDValidator("id"), h.User.SetVerified)
	}

	return r
}
