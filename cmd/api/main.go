package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/naijavoice/naijavoice-api/internal/api"
	"github.com/naijavoice/naijavoice-api/internal/config"
	"github.com/naijavoice/naijavoice-api/internal/metrics"
	"github.com/naijavoice/naijavoice-api/internal/queue"
	"github.com/naijavoice/naijavoice-api/internal/synthesis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx := context.Background()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	opts := synthesis.Options{Logger: logger}
	if m != nil {
		opts.Observer = m
	}

	// Fulfillment queue (optional, orders are only logged without it)
	var rdb *redis.Client
	if cfg.Fulfillment.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unavailable, orders will not reach the fulfillment queue until it recovers", "error", err)
		}
		defer rdb.Close()

		qc := queue.NewClient(cfg.Redis)
		defer qc.Close()
		opts.Dispatcher = qc
	}

	svc := synthesis.NewService(opts)

	router := api.NewRouter(cfg, svc, m, rdb)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(), "path", cfg.Synthesis.Path, "fulfillment", cfg.Fulfillment.Enabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
