package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "LOG_LEVEL", "SYNTHESIZE_PATH", "METRICS_ENABLED",
		"METRICS_PATH", "FULFILLMENT_ENABLED", "WORKER_CONCURRENCY", "REDIS_ADDR", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "/api/synthesize", cfg.Synthesis.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Fulfillment.Enabled)
	assert.Equal(t, 5, cfg.Fulfillment.Concurrency)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SYNTHESIZE_PATH", "/synthesize")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("FULFILLMENT_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "/synthesize", cfg.Synthesis.Path)
	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Fulfillment.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "SERVER_PORT", "http"},
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad bool", "METRICS_ENABLED", "maybe"},
		{"unknown level", "LOG_LEVEL", "verbose"},
		{"relative path", "SYNTHESIZE_PATH", "api/synthesize"},
		{"zero concurrency", "WORKER_CONCURRENCY", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateRouteCollisions(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:      ServerConfig{Host: "0.0.0.0", Port: 8080},
			Log:         LogConfig{Level: "info"},
			Synthesis:   SynthesisConfig{Path: "/api/synthesize"},
			Metrics:     MetricsConfig{Enabled: true, Path: "/metrics"},
			Fulfillment: FulfillmentConfig{Concurrency: 1},
		}
	}
	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Metrics.Path = "/api/synthesize"
	assert.ErrorContains(t, cfg.Validate(), "METRICS_PATH and SYNTHESIZE_PATH must differ")

	cfg.Metrics.Enabled = false
	assert.NoError(t, cfg.Validate(), "a disabled metrics route cannot collide")

	cfg = base()
	cfg.Synthesis.Path = "/healthz"
	assert.ErrorContains(t, cfg.Validate(), "/healthz is reserved")
}

func TestLoadRejectsSharedPath(t *testing.T) {
	t.Setenv("SYNTHESIZE_PATH", "/api")
	t.Setenv("METRICS_PATH", "/api")
	_, err := Load()
	assert.Error(t, err)
}
