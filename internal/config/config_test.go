package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERP_API_KEY", "serp-test-key")
	t.Setenv("GOOGLE_API_KEY", "google-test-key")
	t.Setenv("PORT", "")
	t.Setenv("EXTRACT_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "serp-test-key", cfg.SerpAPIKey)
	assert.Equal(t, "google-test-key", cfg.GoogleAPIKey)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.0-flash-lite", cfg.GeminiModel)
	assert.Equal(t, "https://serpapi.com/search", cfg.SerpAPIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.ExtractTimeout)
}

func TestLoadConfig_MissingKeysAreNotAnError(t *testing.T) {
	t.Setenv("SERP_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.SerpAPIKey)
	assert.Empty(t, cfg.GoogleAPIKey)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.HTTPClientTimeout)
}

func TestConfigValidation(t *testing.T) {
	base := func() Config {
		return Config{
			Port:              "8080",
			HTTPClientTimeout: time.Second,
			ExtractTimeout:    time.Second,
			ShutdownTimeout:   time.Second,
			LogFormat:         "json",
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty port", func(c *Config) { c.Port = "" }, "PORT"},
		{"zero client timeout", func(c *Config) { c.HTTPClientTimeout = 0 }, "HTTP_CLIENT_TIMEOUT"},
		{"negative extract timeout", func(c *Config) { c.ExtractTimeout = -time.Second }, "EXTRACT_TIMEOUT"},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, "SHUTDOWN_TIMEOUT"},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
