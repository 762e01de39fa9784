package main

import (
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/naijavoice/naijavoice-api/internal/config"
	"github.com/naijavoice/naijavoice-api/internal/queue"
	"github.com/naijavoice/naijavoice-api/internal/queue/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	srv := asynq.NewServer(
		queue.RedisOpt(cfg.Redis),
		asynq.Config{
			Concurrency: cfg.Fulfillment.Concurrency,
			Queues: map[string]int{
				queue.QueueFulfillment: 1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	registry := queue.NewHandlersRegistry()

	fulfillmentWorker := workers.NewFulfillmentWorker(logger)
	registry.Register(queue.TypeOrderFulfill, asynq.HandlerFunc(fulfillmentWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", cfg.Fulfillment.Concurrency, "redis", cfg.Redis.Addr)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
