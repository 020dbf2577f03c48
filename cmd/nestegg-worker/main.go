package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nestegg/internal/amqp"
	"nestegg/internal/config"
	"nestegg/internal/finance"
	applog "nestegg/internal/log"
	"nestegg/internal/services"
	"nestegg/internal/storage"
	"nestegg/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting nestegg-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			"error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	service := services.NewGoalService(repo, finance.NewCalculator(cfg.ToleranceRatio))
	defer service.Close()

	// The broker is optional: without it the worker still sweeps and logs,
	// it just has nowhere to publish.
	var publisher services.StatusPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP client initialized",
			"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	digestWorker := worker.NewDigestWorker(
		services.NewDigestProcessor(service, publisher),
		cfg.DigestInterval,
	)
	if err := digestWorker.Start(ctx); err != nil {
		logger.Error("Failed to start digest worker", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := digestWorker.Stop(shutdownCtx); err != nil {
		logger.Warn("Digest worker stop timed out", "error", err)
	}
	logger.Info("Worker shutdown complete")
}
