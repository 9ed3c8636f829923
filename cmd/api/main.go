package main

import (
	"context"
	"log"
	"net"

	"github.com/platemind/backend/config"
	"github.com/platemind/backend/internal/api"
	"github.com/platemind/backend/internal/database"
	"github.com/platemind/backend/internal/middleware"
	"github.com/platemind/backend/internal/pipeline"
	"github.com/platemind/backend/internal/server"
	"github.com/platemind/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Redis is optional: without it the API runs with no generation cache
	// and no rate limiting.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("redis unavailable, continuing without cache or rate limits: %v", err)
		redisClient = nil
	}

	aiService, err := service.NewAIService(cfg)
	if err != nil {
		log.Fatalf("failed to initialize AI provider: %v", err)
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewGenerationRateLimiter(redisClient)
	}

	// Image generation is optional and only enabled when configured.
	var images service.IImageService
	if s3Config, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("image generation disabled, S3 not configured: %v", err)
	} else if imageService, err := service.NewImageService(s3Config); err != nil {
		log.Printf("image generation disabled: %v", err)
	} else {
		images = imageService
	}

	srv := server.New(cfg, db, api.Services{
		Auth:        service.NewAuthService(db, cfg.JWTSecret, cfg.GoogleClientID),
		Recipes:     service.NewRecipeService(db, redisClient),
		Images:      images,
		Generator:   pipeline.NewPipeline(aiService),
		RateLimiter: limiter,
	})

	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
