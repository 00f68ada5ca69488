package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"twittertext/pkg/log"
)

// AppConfig holds the wiring of NewApp.
type AppConfig struct {
	Handlers    *Handlers
	RateLimiter *RateLimiter
	Metrics     *Metrics
	Logger      *log.Logger
	// BodyLimit caps request bodies in bytes; zero keeps Fiber's default.
	BodyLimit int
}

// NewApp returns a Fiber app with the middleware chain and routes installed.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "twittertext",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	app.Use(RequestLoggerMiddleware(cfg.Logger))
	app.Use(cfg.Metrics.Middleware())

	SetupRoutes(app, cfg.Handlers, cfg.RateLimiter, cfg.Metrics)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(errorResponse{Error: fe.Message, Code: "http"})
	}
	return writeError(c, err)
}
