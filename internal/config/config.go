package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port            string        `env:"PORT"             envDefault:"8080"`
	Host            string        `env:"HOST"             envDefault:"0.0.0.0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// SerpAPI settings. The key is checked per request, not here.
	SerpAPIKey     string `env:"SERP_API_KEY"     json:"-"`
	SerpAPIBaseURL string `env:"SERPAPI_BASE_URL" envDefault:"https://serpapi.com/search"`

	// Gemini settings. The key is checked per request, not here.
	GoogleAPIKey   string `env:"GOOGLE_API_KEY"  json:"-"`
	GeminiModel    string `env:"GEMINI_MODEL"    envDefault:"gemini-2.0-flash-lite"`
	GeminiEndpoint string `env:"GEMINI_ENDPOINT"`

	// Outbound HTTP
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"30s"`
	ExtractTimeout    time.Duration `env:"EXTRACT_TIMEOUT"     envDefault:"15s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Port == "" {
		return &ConfigError{Field: "PORT", Message: "port must not be empty"}
	}
	if c.HTTPClientTimeout <= 0 {
		return &ConfigError{Field: "HTTP_CLIENT_TIMEOUT", Message: "must be positive"}
	}
	if c.ExtractTimeout <= 0 {
		return &ConfigError{Field: "EXTRACT_TIMEOUT", Message: "must be positive"}
	}
	if c.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "SHUTDOWN_TIMEOUT", Message: "must be positive"}
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return &ConfigError{Field: "LOG_FORMAT", Message: "must be json or console"}
	}
	return nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
