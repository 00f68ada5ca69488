package web

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures the application routes. The rate limiter guards
// the API and the playground; health and metrics stay open.
func SetupRoutes(app *fiber.App, handlers *Handlers, rateLimiter *RateLimiter, metrics *Metrics) {
	app.Get("/healthz", handlers.Health)
	app.Get("/metrics", metrics.Handler())

	limited := rateLimiter.Middleware(metrics.rateLimited.Inc)

	app.Get("/", handlers.Home)
	app.Post("/playground", limited, handlers.Playground)

	api := app.Group("/api")
	api.Post("/extract", limited, handlers.Extract)
	api.Post("/parse", limited, handlers.Parse)
	api.Post("/validate", limited, handlers.Validate)
	api.Get("/configs", limited, handlers.Configs)
}
