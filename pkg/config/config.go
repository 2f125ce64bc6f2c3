package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

// Config is the full application configuration, read from the environment.
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	LLM           LLMConfig
	Auth          AuthConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port               string
	RateLimitPerSecond int
	RateLimitBurst     int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type LLMConfig struct {
	APIKey      string
	InlineModel string
	ImagenModel string
}

type AuthConfig struct {
	SessionSecret string
	ShareTokenTTL time.Duration
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	LogLevel       string
}

// Load reads the configuration from the environment. A missing LLM credential
// is a fatal configuration error: it is surfaced here, before any backend
// call is ever attempted.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               envOr("SERVER_PORT", "8080"),
			RateLimitPerSecond: envIntOr("RATE_LIMIT_PER_SECOND", 10),
			RateLimitBurst:     envIntOr("RATE_LIMIT_BURST", 20),
		},
		Database: DatabaseConfig{
			Host:     envOr("DB_HOST", "localhost"),
			Port:     envOr("DB_PORT", "5432"),
			User:     envOr("DB_USER", "postgres"),
			Password: envOr("DB_PASSWORD", "postgres"),
			Name:     envOr("DB_NAME", "loci_canvas"),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
		LLM: LLMConfig{
			APIKey:      os.Getenv("GEMINI_API_KEY"),
			InlineModel: envOr("GEMINI_INLINE_IMAGE_MODEL", "gemini-2.5-flash-image"),
			ImagenModel: envOr("GEMINI_IMAGEN_MODEL", "imagen-4.0-generate-001"),
		},
		Auth: AuthConfig{
			SessionSecret: envOr("SESSION_SECRET", ""),
			ShareTokenTTL: envDurationOr("SHARE_TOKEN_TTL", 30*24*time.Hour),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: envBoolOr("METRICS_ENABLED", true),
			LogLevel:       envOr("LOG_LEVEL", "info"),
		},
	}

	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set: %w", types.ErrConfiguration)
	}
	if cfg.Auth.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set: %w", types.ErrConfiguration)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
