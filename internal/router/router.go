package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jamaney/card-backend/config"
	"github.com/jamaney/card-backend/internal/api"
	"github.com/jamaney/card-backend/internal/middleware"
	"github.com/jamaney/card-backend/internal/service"
)

// SetupRouter configures the application routes. The rate limiter is
// optional and guards the credential endpoints when Redis is available.
func SetupRouter(
	cfg *config.Config,
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	publicHandler *api.PublicHandler,
	mediaHandler *api.MediaHandler,
	authService *service.AuthService,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Locally stored media is served straight from the upload directory;
	// private-bucket media goes through the presigned redirect.
	if cfg.StorageDriver == "local" {
		router.Static("/uploads", cfg.UploadDir)
	}
	if mediaHandler != nil {
		router.GET("/media/:key", mediaHandler.Get)
	}

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	if rateLimiter != nil {
		auth.Use(rateLimiter.RateLimitMiddleware())
	}
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/session", authHandler.ExchangeSession)
	}

	authed := v1.Group("/auth")
	authed.Use(middleware.AuthMiddleware(authService))
	{
		authed.GET("/me", authHandler.Me)
		authed.POST("/logout", authHandler.Logout)
	}

	// Public card surface: lookup by slug and the vCard download.
	v1.GET("/profiles/public/:uniqueLink", publicHandler.GetProfile)
	v1.GET("/profiles/:id/vcard", profileHandler.VCard)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		profiles := protected.Group("/profiles")
		{
			profiles.GET("", profileHandler.ListProfiles)
			profiles.GET("/:id", profileHandler.GetProfile)
			profiles.POST("", profileHandler.CreateProfile)
			profiles.PUT("/:id", profileHandler.UpdateProfile)
			profiles.PATCH("/:id/archive", profileHandler.ToggleArchive)
		}

		protected.POST("/upload", profileHandler.Upload)
	}

	return router
}
