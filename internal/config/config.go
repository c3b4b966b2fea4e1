package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the essay grading service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	RedisURL           string
	EvaluationCacheTTL time.Duration
	NATSURL            string
	NATSSubject        string
	RateLimitMax       int
	RateLimitWindow    time.Duration
	UploadMaxBytes     int64
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// CacheEnabled reports whether evaluations should be cached in Redis.
func (c Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.EvaluationCacheTTL > 0
}

// EventsEnabled reports whether evaluation events should be published to NATS.
func (c Config) EventsEnabled() bool {
	return c.NATSURL != "" && c.NATSSubject != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ESSAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GEMA Essay Grader")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("evaluation.cache_ttl", "10m")
	v.SetDefault("nats.subject", "gema.essays.evaluated")
	v.SetDefault("rate_limit.max", 30)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("upload.max_bytes", 256*1024)

	cacheTTL, err := parseDuration(v.GetString("evaluation.cache_ttl"), "10m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid evaluation cache ttl: %w", err)
	}

	window, err := parseDuration(v.GetString("rate_limit.window"), "1m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		RedisURL:           v.GetString("redis.url"),
		EvaluationCacheTTL: cacheTTL,
		NATSURL:            v.GetString("nats.url"),
		NATSSubject:        v.GetString("nats.subject"),
		RateLimitMax:       v.GetInt("rate_limit.max"),
		RateLimitWindow:    window,
		UploadMaxBytes:     v.GetInt64("upload.max_bytes"),
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 30
	}

	if cfg.UploadMaxBytes <= 0 {
		cfg.UploadMaxBytes = 256 * 1024
	}

	return cfg, nil
}

func parseDuration(value, fallback string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	return time.ParseDuration(value)
}
