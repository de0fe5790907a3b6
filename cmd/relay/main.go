package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bountyboard/bountyboard-backend/internal/bootstrap"
	"github.com/bountyboard/bountyboard-backend/internal/config"
	"github.com/bountyboard/bountyboard-backend/internal/relay"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

func main() {
	if err := config.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize config: %v", err))
	}

	logger := bootstrap.Logger(logging.RelayProcess)

	relayConfig := bootstrap.RelayConfig()
	logger.Info("Starting reputation relay...",
		"mode", config.IsDevMode(),
		"interval", relayConfig.Interval.String(),
		"batch_size", relayConfig.BatchSize,
		"max_attempts", relayConfig.MaxAttempts,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := bootstrap.Datastore(ctx, logger, false)
	if err != nil {
		logger.Fatalf("Failed to initialize database connection: %v", err)
	}
	defer store.Close()

	chainClient, err := bootstrap.OperatorChain(ctx, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize chain client: %v", err)
	}
	defer chainClient.Close()

	r, err := relay.New(store.Outbox(), chainClient, relayConfig, logger)
	if err != nil {
		logger.Fatalf("Failed to create relay: %v", err)
	}

	// drain what accumulated while the relay was down before waiting for the first tick
	if result, err := r.RunOnce(ctx); err != nil {
		logger.Errorf("Initial relay pass failed: %v", err)
	} else {
		logger.Info("Initial relay pass complete", "delivered", result.Delivered, "failed", result.Failed, "pending", result.Pending)
	}

	if err := r.Start(ctx); err != nil {
		logger.Fatalf("Failed to start relay: %v", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdown
	logger.Info("Received shutdown signal", "signal", sig.String())

	logger.Info("Initiating graceful shutdown...")
	r.Stop()
	logger.Info("Shutdown complete")
}
