package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bountyboard/bountyboard-backend/internal/api"
	"github.com/bountyboard/bountyboard-backend/internal/api/handlers"
	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	"github.com/bountyboard/bountyboard-backend/internal/bootstrap"
	"github.com/bountyboard/bountyboard-backend/internal/config"
	"github.com/bountyboard/bountyboard-backend/internal/faucet"
	"github.com/bountyboard/bountyboard-backend/internal/lifecycle"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/validator"
)

var version = "dev"

func main() {
	if err := config.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize config: %v", err))
	}

	logger := bootstrap.Logger(logging.APIProcess)

	logger.Info("Starting bounty board API...",
		"mode", config.IsDevMode(),
		"port", config.GetAPIPort(),
		"auth_disabled", config.IsAuthDisabled(),
		"reputation_outbox", config.IsReputationOutboxEnabled(),
	)

	ctx := context.Background()

	store, err := bootstrap.Datastore(ctx, logger, config.IsDevMode())
	if err != nil {
		logger.Fatalf("Failed to initialize database connection: %v", err)
	}
	defer store.Close()

	chainClient, err := bootstrap.OperatorChain(ctx, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize chain client: %v", err)
	}
	defer chainClient.Close()

	var notifier lifecycle.ReputationNotifier
	if config.IsReputationOutboxEnabled() {
		notifier = lifecycle.NewOutboxNotifier(chainClient, store.Outbox(), logger)
	} else {
		notifier = lifecycle.NewDirectNotifier(chainClient, logger)
	}

	content := bootstrap.ContentStore(logger)
	deps := handlers.Dependencies{
		Content:      content,
		Health:       store,
		AuthDisabled: config.IsAuthDisabled(),
		Version:      version,
	}
	deps.Lifecycle = lifecycle.NewCoordinator(store, chainClient, content, notifier, logger)

	faucetClient, err := bootstrap.FaucetChain(ctx, logger)
	if err != nil {
		logger.Errorf("Faucet disabled: %v", err)
	} else if faucetClient != nil {
		defer faucetClient.Close()
		deps.Faucet = faucet.New(faucetClient, logger)
	}

	var rateLimiter *middleware.RateLimiter
	redisClient := bootstrap.Redis(logger)
	if redisClient != nil {
		defer redisClient.Close()
		rateLimiter, err = middleware.NewRateLimiter(redisClient, logger)
		if err != nil {
			logger.Errorf("Rate limiting disabled: %v", err)
		}
	}

	authService, err := bootstrap.Auth(redisClient, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize wallet authentication: %v", err)
	}
	deps.Auth = authService

	if err := validator.RegisterGinValidations(); err != nil {
		logger.Fatalf("Failed to register validations: %v", err)
	}

	server := api.NewServer(deps, authService, rateLimiter, api.Options{
		Port:             config.GetAPIPort(),
		RequestTimeout:   config.GetRequestTimeout(),
		AllowedOrigins:   config.GetCORSAllowedOrigins(),
		DevMode:          config.IsDevMode(),
		FaucetRateLimit:  config.GetFaucetRateLimit(),
		FaucetRateWindow: config.GetFaucetRateWindow(),
	}, logger)

	metricsCtx, stopMetrics := context.WithCancel(ctx)
	defer stopMetrics()
	api.StartSystemMetricsCollection(metricsCtx, 5*time.Second)

	var wg sync.WaitGroup
	serverErrors := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting HTTP server...")
		if err := server.Start(); err != nil {
			serverErrors <- fmt.Errorf("HTTP server error: %v", err)
		}
	}()

	logger.Infof("Bounty board API initialized, listening on port %s...", config.GetAPIPort())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("Server error received", "error", err)
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", "signal", sig.String())
	}

	performGracefulShutdown(server, &wg, logger)
}

func performGracefulShutdown(server *api.Server, wg *sync.WaitGroup, logger logging.Logger) {
	logger.Info("Initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), config.GetShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		if err := server.Close(); err != nil {
			logger.Error("Forced HTTP server close error", "error", err)
		}
	}

	wg.Wait()
	logger.Info("Shutdown complete")
}
