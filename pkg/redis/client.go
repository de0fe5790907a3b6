package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

// Client represents a Redis client
type Client struct {
	client *redis.Client
	logger logging.Logger
}

// NewClient parses redisURL (redis:// or rediss://), applies the optional password and pings the server
func NewClient(redisURL string, password string, logger logging.Logger) (*Client, error) {
	if redisURL == "" {
		return nil, errors.New("redis URL is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if password != "" {
		opt.Password = password
	}

	redisClient := &Client{
		client: redis.NewClient(opt),
		logger: logger,
	}

	if err := redisClient.CheckConnection(); err != nil {
		_ = redisClient.client.Close()
		return nil, err
	}

	return redisClient, nil
}

// NewFromClient wraps an existing go-redis client without pinging it
func NewFromClient(client *redis.Client, logger logging.Logger) *Client {
	return &Client{client: client, logger: logger}
}

// CheckConnection tests the Redis connection
func (c *Client) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		c.logger.Errorf("Failed to connect to Redis: %v", err)
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c.logger.Info("Successfully connected to Redis")
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns "" when the key does not exist
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return val, nil
}

// GetDel atomically reads and removes key, returning "" when it does not exist
func (c *Client) GetDel(ctx context.Context, key string) (string, error) {
	val, err := c.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return val, nil
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// Eval executes a Lua script
func (c *Client) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	return c.client.Eval(ctx, script, keys, args...).Result()
}

func (c *Client) Close() error {
	return c.client.Close()
}
