package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Log         LogConfig
	Synthesis   SynthesisConfig
	Metrics     MetricsConfig
	Fulfillment FulfillmentConfig
	Redis       RedisConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LogConfig struct {
	Level string // "debug", "info", "warn" or "error"
}

type SynthesisConfig struct {
	Path string // default: "/api/synthesize"
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// FulfillmentConfig controls the optional hand-off of orders to the operator queue.
// Disabled by default so the endpoint stays stateless.
type FulfillmentConfig struct {
	Enabled     bool
	Concurrency int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	concurrency, err := getEnvInt("WORKER_CONCURRENCY", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %w", err)
	}

	metricsEnabled, err := getEnvBool("METRICS_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}

	fulfillmentEnabled, err := getEnvBool("FULFILLMENT_ENABLED", false)
	if err != nil {
		return nil, fmt.Errorf("invalid FULFILLMENT_ENABLED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
		Synthesis: SynthesisConfig{
			Path: getEnv("SYNTHESIZE_PATH", "/api/synthesize"),
		},
		Metrics: MetricsConfig{
			Enabled: metricsEnabled,
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Fulfillment: FulfillmentConfig{
			Enabled:     fulfillmentEnabled,
			Concurrency: concurrency,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("SERVER_PORT out of range: %d", c.Server.Port))
	}
	if _, ok := logLevels[c.Log.Level]; !ok {
		problems = append(problems, fmt.Sprintf("unknown LOG_LEVEL: %q", c.Log.Level))
	}
	if !strings.HasPrefix(c.Synthesis.Path, "/") {
		problems = append(problems, "SYNTHESIZE_PATH must start with /")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "METRICS_PATH must start with /")
	}
	if c.Metrics.Enabled && c.Metrics.Path == c.Synthesis.Path {
		problems = append(problems, "METRICS_PATH and SYNTHESIZE_PATH must differ")
	}
	for _, reserved := range []string{"/healthz", "/readyz"} {
		if c.Synthesis.Path == reserved || (c.Metrics.Enabled && c.Metrics.Path == reserved) {
			problems = append(problems, fmt.Sprintf("%s is reserved for health checks", reserved))
		}
	}
	if c.Fulfillment.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "REDIS_ADDR is required when FULFILLMENT_ENABLED is set")
	}
	if c.Fulfillment.Concurrency <= 0 {
		problems = append(problems, "WORKER_CONCURRENCY must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns the slog level for Log.Level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	if lvl, ok := logLevels[c.Log.Level]; ok {
		return lvl
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseBool(v)
}
