package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/ta-apply-api/internal/config"
	"github.com/noah-isme/ta-apply-api/internal/handler"
	"github.com/noah-isme/ta-apply-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PostingHandler     *handler.PostingHandler
	ApplicationHandler *handler.ApplicationHandler
	ReviewHandler      *handler.ReviewHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if cfg.MetricsEnabled {
		app.Get("/metrics", observability.MetricsHandler())
	}

	if deps.PostingHandler != nil {
		deps.PostingHandler.Register(api.Group("/postings"))
	}

	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.Register(api.Group("/applications"))
	}

	if deps.ReviewHandler != nil {
		deps.ReviewHandler.Register(api.Group("/review"))
	}
}
