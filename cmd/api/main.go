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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-essay-api/internal/config"
	"github.com/noah-isme/gema-essay-api/internal/database"
	"github.com/noah-isme/gema-essay-api/internal/handler"
	"github.com/noah-isme/gema-essay-api/internal/middleware"
	"github.com/noah-isme/gema-essay-api/internal/router"
	"github.com/noah-isme/gema-essay-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.AppName).Logger()

	var redisClient *redis.Client
	if cfg.CacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
	} else {
		logger.Info().Msg("evaluation cache disabled")
	}

	var natsConn *nats.Conn
	var publisher service.EvaluationPublisher
	if cfg.EventsEnabled() {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		publisher = service.NewNATSEvaluationPublisher(natsConn, cfg.NATSSubject)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	essayService := service.NewEssayService(redisClient, publisher, validate, logger, service.EssayServiceConfig{
		CacheTTL:       cfg.EvaluationCacheTTL,
		UploadMaxBytes: cfg.UploadMaxBytes,
	})
	essayHandler := handler.NewEssayHandler(essayService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AccessLog: cfg.AppEnv != "production"})
	router.Register(app, cfg, router.Dependencies{
		EssayHandler:  essayHandler,
		RateLimiter:   middleware.RateLimit("essays", cfg.RateLimitMax, cfg.RateLimitWindow),
		ExposeMetrics: true,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)

	if natsConn != nil {
		if err := natsConn.Drain(); err != nil {
			log.Printf("failed to drain nats connection: %v", err)
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
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
