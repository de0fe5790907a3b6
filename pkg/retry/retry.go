package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

type RetryConfig struct {
	MaxRetries      int           // Maximum number of attempts
	InitialDelay    time.Duration // Initial delay between attempts
	MaxDelay        time.Duration // Maximum delay between attempts
	BackoffFactor   float64       // Multiplier for exponential backoff
	JitterFactor    float64       // Randomization of each delay, as a fraction of it
	LogRetryAttempt bool
	// ShouldRetry stops retrying when it returns false for (error, attempt number)
	ShouldRetry func(error, int) bool
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:      5,
		InitialDelay:    time.Second,
		MaxDelay:        30 * time.Second,
		BackoffFactor:   2.0,
		JitterFactor:    0.2,
		LogRetryAttempt: true,
	}
}

func (c *RetryConfig) Validate() error {
	if c.MaxRetries < 1 {
		return errors.New("MaxRetries must be >= 1")
	}
	if c.InitialDelay <= 0 {
		return errors.New("InitialDelay must be positive")
	}
	if c.MaxDelay <= 0 {
		return errors.New("MaxDelay must be positive")
	}
	if c.BackoffFactor < 1.0 {
		return errors.New("BackoffFactor must be >= 1.0")
	}
	if c.JitterFactor < 0 || c.JitterFactor > 1.0 {
		return errors.New("JitterFactor must be between 0.0 and 1.0")
	}
	return nil
}

// NewBackOff builds the backoff policy described by the config, bounded by ctx
func (c *RetryConfig) NewBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.InitialDelay
	exp.MaxInterval = c.MaxDelay
	exp.Multiplier = c.BackoffFactor
	exp.RandomizationFactor = c.JitterFactor
	exp.MaxElapsedTime = 0
	exp.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.MaxRetries-1)), ctx)
}

// Retry executes operation until it succeeds, the attempts run out or ctx is done
func Retry[T any](ctx context.Context, operation func() (T, error), retryConfig *RetryConfig, logger logging.Logger) (T, error) {
	var zero T

	if retryConfig == nil {
		retryConfig = DefaultRetryConfig()
	} else if err := retryConfig.Validate(); err != nil {
		return zero, fmt.Errorf("invalid retry config: %w", err)
	}

	attempt := 0
	op := func() (T, error) {
		attempt++
		result, err := operation()
		if err == nil {
			return result, nil
		}
		if retryConfig.ShouldRetry != nil && !retryConfig.ShouldRetry(err, attempt) {
			return zero, backoff.Permanent(err)
		}
		return zero, err
	}

	notify := func(err error, next time.Duration) {
		if retryConfig.LogRetryAttempt && logger != nil {
			logger.Warnf("Attempt %d/%d failed: %v. Retrying in %v...", attempt, retryConfig.MaxRetries, err, next)
		}
	}

	result, err := backoff.RetryNotifyWithData(op, retryConfig.NewBackOff(ctx), notify)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return zero, permanent.Err
		}
		if attempt >= retryConfig.MaxRetries {
			return zero, fmt.Errorf("operation failed after %d attempts: %w", attempt, err)
		}
		return zero, err
	}
	return result, nil
}

// RetryFunc is Retry for operations without a result
func RetryFunc(ctx context.Context, operation func() error, config *RetryConfig, logger logging.Logger) error {
	opWithValue := func() (struct{}, error) {
		return struct{}{}, operation()
	}
	_, err := Retry(ctx, opWithValue, config, logger)
	return err
}
