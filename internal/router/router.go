package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-essay-api/internal/config"
	"github.com/noah-isme/gema-essay-api/internal/handler"
	"github.com/noah-isme/gema-essay-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	EssayHandler  *handler.EssayHandler
	RateLimiter   fiber.Handler
	ExposeMetrics bool
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ExposeMetrics {
		app.Get("/metrics", observability.MetricsHandler())
	}

	if deps.EssayHandler != nil {
		essays := app.Group("/api/v2/essays")
		var guards []fiber.Handler
		if deps.RateLimiter != nil {
			guards = append(guards, deps.RateLimiter)
		}
		deps.EssayHandler.Register(essays, guards...)
	}
}
