package datastore

import (
	"fmt"
	"time"

	"github.com/bountyboard/bountyboard-backend/pkg/retry"
)

// Config holds the configuration for the PostgreSQL connection.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	SlowThreshold   time.Duration
	RetryConfig     *retry.RetryConfig
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig(dsn string) *Config {
	return &Config{
		DSN:             dsn,
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		PingTimeout:     5 * time.Second,
		SlowThreshold:   500 * time.Millisecond,
		RetryConfig:     retry.DefaultRetryConfig(),
	}
}

func (c *Config) WithPool(maxOpen, maxIdle int) *Config {
	c.MaxOpenConns = maxOpen
	c.MaxIdleConns = maxIdle
	return c
}

func (c *Config) WithRetryConfig(retryConfig *retry.RetryConfig) *Config {
	c.RetryConfig = retryConfig
	return c
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("database DSN cannot be empty")
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		return fmt.Errorf("connection pool sizes cannot be negative")
	}
	if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max idle connections (%d) cannot exceed max open connections (%d)", c.MaxIdleConns, c.MaxOpenConns)
	}
	if c.PingTimeout <= 0 {
		return fmt.Errorf("ping timeout must be positive, got: %v", c.PingTimeout)
	}
	if c.RetryConfig != nil {
		if err := c.RetryConfig.Validate(); err != nil {
			return fmt.Errorf("invalid retry config: %w", err)
		}
	}
	return nil
}
