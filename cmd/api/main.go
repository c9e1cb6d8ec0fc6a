package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ta-apply-api/internal/config"
	"github.com/noah-isme/ta-apply-api/internal/database"
	"github.com/noah-isme/ta-apply-api/internal/handler"
	"github.com/noah-isme/ta-apply-api/internal/middleware"
	"github.com/noah-isme/ta-apply-api/internal/repository"
	"github.com/noah-isme/ta-apply-api/internal/router"
	"github.com/noah-isme/ta-apply-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	sessionRepo, cleanup, err := buildSessionRepository(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise session store: %v", err)
	}
	defer cleanup()

	seed, err := repository.LoadPostings(cfg.PostingSeedFile)
	if err != nil {
		log.Fatalf("failed to load posting seed: %v", err)
	}
	postingRepo := repository.NewPostingRepository(seed)

	validate := validator.New(validator.WithRequiredStructEnabled())

	postingService := service.NewPostingService(postingRepo, logger)
	applicationService := service.NewApplicationService(sessionRepo, postingRepo, validate, logger)
	reviewService := service.NewReviewService(sessionRepo, postingRepo, logger)

	postingHandler := handler.NewPostingHandler(postingService, logger)
	applicationHandler := handler.NewApplicationHandler(applicationService, validate, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		PostingHandler:     postingHandler,
		ApplicationHandler: applicationHandler,
		ReviewHandler:      reviewHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildSessionRepository(cfg config.Config, logger zerolog.Logger) (repository.SessionRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		client, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisSessionRepository(client, logger), func() { _ = client.Close() }, nil
	case config.StoreSQLite:
		db, err := database.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(&repository.SessionRecord{}); err != nil {
			return nil, nil, err
		}
		return repository.NewGormSessionRepository(db, logger), func() {}, nil
	case config.StorePostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(&repository.SessionRecord{}); err != nil {
			return nil, nil, err
		}
		return repository.NewGormSessionRepository(db, logger), func() {}, nil
	default:
		return repository.NewMemorySessionRepository(logger), func() {}, nil
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
