package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Ranking
	DefaultStrategy string
	SuggestLimit    int

	// HTTP API
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// MCP
	MCPAddr      string
	MCPAuthToken string

	// Events
	EventsEnabled           bool
	RabbitMQURL             string
	BreakerFailureThreshold int
	BreakerTimeout          time.Duration
}

// Load reads .env when present, then the environment.
func Load(files ...string) (*Config, error) {
	// A missing .env file is fine; explicitly named files must exist.
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DefaultStrategy: getEnv("DEFAULT_STRATEGY", "smart_balance"),
		SuggestLimit:    getIntEnv("SUGGEST_LIMIT", 3),

		HTTPAddr:         getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		HTTPReadTimeout:  getDurationEnv("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout: getDurationEnv("HTTP_WRITE_TIMEOUT", 15*time.Second),
		HTTPIdleTimeout:  getDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second),

		MCPAddr:      getEnv("MCP_ADDR", "0.0.0.0:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),

		EventsEnabled:           getBoolEnv("EVENTS_ENABLED", true),
		RabbitMQURL:             getEnv("RABBITMQ_URL", ""),
		BreakerFailureThreshold: getIntEnv("BREAKER_FAILURE_THRESHOLD", 5),
		BreakerTimeout:          getDurationEnv("BREAKER_TIMEOUT", 30*time.Second),
	}

	if cfg.SuggestLimit <= 0 {
		return nil, fmt.Errorf("SUGGEST_LIMIT must be positive, got %d", cfg.SuggestLimit)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// BrokerConfigured reports whether ranked events go to RabbitMQ.
func (c *Config) BrokerConfigured() bool {
	return c.EventsEnabled && c.RabbitMQURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
