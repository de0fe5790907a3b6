// Package relay redelivers reputation updates parked in the outbox
package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bountyboard/bountyboard-backend/pkg/chain"
	"github.com/bountyboard/bountyboard-backend/pkg/datastore"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/retry"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

type Config struct {
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
	RetryConfig *retry.RetryConfig
}

func DefaultConfig() Config {
	return Config{
		Interval:    time.Minute,
		BatchSize:   50,
		MaxAttempts: 10,
		RetryConfig: &retry.RetryConfig{
			MaxRetries:      3,
			InitialDelay:    2 * time.Second,
			MaxDelay:        20 * time.Second,
			BackoffFactor:   2.0,
			JitterFactor:    0.2,
			LogRetryAttempt: true,
			ShouldRetry:     retryable,
		},
	}
}

func (c Config) Validate() error {
	if c.Interval < time.Second {
		return fmt.Errorf("relay interval must be at least 1s, got %s", c.Interval)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("relay batch size must be positive")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("relay max attempts must be positive")
	}
	return nil
}

// missing keys and reverts do not get better by retrying
func retryable(err error, _ int) bool {
	return !errors.Is(err, chain.ErrNoSigner) && !errors.Is(err, chain.ErrTransactionReverted)
}

// Result counts the outcome of one relay pass
type Result struct {
	Delivered int
	Failed    int
	Pending   int64
}

type Relay struct {
	outbox datastore.OutboxRepository
	writer chain.ReputationWriter
	config Config
	logger logging.Logger

	cron    *cron.Cron
	running sync.Mutex
}

func New(outbox datastore.OutboxRepository, writer chain.ReputationWriter, config Config, logger logging.Logger) (*Relay, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.RetryConfig == nil {
		config.RetryConfig = DefaultConfig().RetryConfig
	}
	return &Relay{
		outbox: outbox,
		writer: writer,
		config: config,
		logger: logger,
		cron:   cron.New(),
	}, nil
}

// Start schedules RunOnce every Interval until ctx is cancelled or Stop is called
func (r *Relay) Start(ctx context.Context) error {
	schedule := fmt.Sprintf("@every %s", r.config.Interval)
	if _, err := r.cron.AddFunc(schedule, func() {
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.Errorf("Relay pass failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule relay: %w", err)
	}
	r.cron.Start()
	r.logger.Info("Relay started", "interval", r.config.Interval.String(), "batch_size", r.config.BatchSize)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running pass to finish
func (r *Relay) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce delivers one batch of pending events. Passes never overlap; a pass started
// while another is running returns immediately with an empty result.
func (r *Relay) RunOnce(ctx context.Context) (Result, error) {
	var result Result
	if !r.running.TryLock() {
		r.logger.Debug("Relay pass already running, skipping")
		return result, nil
	}
	defer r.running.Unlock()

	events, err := r.outbox.ListPending(ctx, r.config.BatchSize, r.config.MaxAttempts)
	if err != nil {
		return result, fmt.Errorf("failed to list pending events: %w", err)
	}

	for i := range events {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if r.deliver(ctx, &events[i]) {
			result.Delivered++
		} else {
			result.Failed++
		}
	}

	pending, err := r.outbox.CountPending(ctx, r.config.MaxAttempts)
	if err != nil {
		r.logger.Warnf("Failed to count pending events: %v", err)
	} else {
		result.Pending = pending
		OutboxDepth.Set(float64(pending))
	}

	if len(events) > 0 {
		r.logger.Info("Relay pass finished", "delivered", result.Delivered, "failed", result.Failed, "pending", result.Pending)
	}
	return result, nil
}

func (r *Relay) deliver(ctx context.Context, event *types.ReputationEvent) bool {
	logger := r.logger.With("event_id", event.ID, "request_id", event.RequestID)

	txHash, err := retry.Retry(ctx, func() (string, error) {
		return r.writer.UpdateRequestStatus(ctx, event.CreatorAddress, event.RequestID, event.Completed)
	}, r.config.RetryConfig, logger)
	if err != nil {
		EventsRelayedTotal.WithLabelValues("failed").Inc()
		logger.Warn("Reputation update still failing", "attempts", event.Attempts+1, "error", err)
		if markErr := r.outbox.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
			logger.Error("Failed to record relay failure", "error", markErr)
		}
		return false
	}

	EventsRelayedTotal.WithLabelValues("delivered").Inc()
	if err := r.outbox.MarkDelivered(ctx, event.ID, txHash); err != nil {
		// the update is on chain; a later pass will send it again
		logger.Error("Failed to mark event delivered", "tx_hash", txHash, "error", err)
		return false
	}
	logger.Info("Reputation update relayed", "tx_hash", txHash)
	return true
}
