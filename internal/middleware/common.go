package middleware

import (
	"io"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Config customises the middleware registration pipeline.
// AccessLog covers only the routes Observability does not log.
type Config struct {
	Logger          *zerolog.Logger
	AccessLog       bool
	AccessLogOutput io.Writer
	AllowOrigins    string
}

// Register attaches the common middlewares used across the API.
func Register(app *fiber.App, cfg Config) {
	requestLogger := zerolog.New(io.Discard)
	if cfg.Logger != nil {
		requestLogger = *cfg.Logger
	}

	origins := cfg.AllowOrigins
	if origins == "" {
		origins = "*"
	}

	app.Use(recover.New())
	app.Use(CorrelationID())
	app.Use(Observability(requestLogger))
	if cfg.AccessLog {
		output := cfg.AccessLogOutput
		if output == nil {
			output = os.Stdout
		}
		app.Use(logger.New(logger.Config{
			Next:   isAPIRoute,
			Output: output,
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Correlation-ID",
		AllowMethods: "GET,POST,OPTIONS",
	}))
}

func isAPIRoute(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}
