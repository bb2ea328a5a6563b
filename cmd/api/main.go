package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jamaney/card-backend/config"
	"github.com/jamaney/card-backend/internal/api"
	"github.com/jamaney/card-backend/internal/database"
	"github.com/jamaney/card-backend/internal/middleware"
	"github.com/jamaney/card-backend/internal/router"
	"github.com/jamaney/card-backend/internal/server"
	"github.com/jamaney/card-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	var storage service.Storage
	var mediaHandler *api.MediaHandler
	switch cfg.StorageDriver {
	case "s3":
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		if cfg.S3PublicRead {
			if err := s3cfg.SetupBucketPolicy(context.Background()); err != nil {
				log.Printf("Warning: could not apply bucket policy: %v", err)
			}
		}
		s3storage := service.NewS3Storage(s3cfg, cfg.PublicBaseURL, !cfg.S3PublicRead)
		if !cfg.S3PublicRead {
			mediaHandler = api.NewMediaHandler(s3storage)
		}
		storage = s3storage
	default:
		storage = service.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, redisClient, cfg.SessionVerifyURL)
	profileService := service.NewProfileService(db)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     30,
			KeyPrefix: "ratelimit:auth",
		})
	}

	engine := router.SetupRouter(
		cfg,
		api.NewAuthHandler(authService),
		api.NewProfileHandler(profileService, storage),
		api.NewPublicHandler(profileService),
		mediaHandler,
		authService,
		rateLimiter,
	)

	srv := server.New(cfg.ServerHost+":"+cfg.ServerPort, engine)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
