package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
)

// ScriptRunner is the part of the redis client the limiter needs
type ScriptRunner interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

type RateLimiter struct {
	redis  ScriptRunner
	logger logging.Logger
}

func NewRateLimiter(redisClient ScriptRunner, logger logging.Logger) (*RateLimiter, error) {
	if redisClient == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	return &RateLimiter{redis: redisClient, logger: logger}, nil
}

const rateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local current = redis.call("INCR", key)
if current == 1 then
    redis.call("EXPIRE", key, window)
end

local ttl = redis.call("TTL", key)

if current > limit then
    return {current, 0, ttl}
else
    return {current, limit - current, ttl}
end
`

// Allow counts one hit against key and reports whether it fits in limit per window
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, remaining int64, ttl int64, err error) {
	windowSeconds := int64(window.Seconds())
	if windowSeconds < 1 {
		windowSeconds = 1
	}

	result, err := rl.redis.Eval(ctx, rateLimitScript, []string{key}, limit, windowSeconds)
	if err != nil {
		return false, 0, 0, fmt.Errorf("failed to evaluate rate limit script: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return false, 0, 0, fmt.Errorf("invalid response from rate limit script")
	}
	current, ok1 := values[0].(int64)
	remaining, ok2 := values[1].(int64)
	ttl, ok3 := values[2].(int64)
	if !ok1 || !ok2 || !ok3 {
		return false, 0, 0, fmt.Errorf("invalid response from rate limit script")
	}

	return current <= int64(limit), remaining, ttl, nil
}

// Limit applies Allow with the key derived from the request. A nil limiter, an empty key
// or a redis failure lets the request through.
func (rl *RateLimiter) Limit(prefix string, keyFunc func(*gin.Context) string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil {
			c.Next()
			return
		}
		subject := keyFunc(c)
		if subject == "" {
			c.Next()
			return
		}

		allowed, remaining, ttl, err := rl.Allow(c.Request.Context(), fmt.Sprintf("rate_limit:%s:%s", prefix, subject), limit, window)
		if err != nil {
			rl.logger.Errorf("Rate limiting error: %v", err)
			c.Next()
			return
		}

		reset := time.Now().Unix() + ttl
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if !allowed {
			RateLimitedTotal.WithLabelValues(endpoint(c)).Inc()
			GetLogger(c).Warnf("Rate limit exceeded: %s %s, limit %d", prefix, subject, limit)
			c.Header("Retry-After", strconv.FormatInt(ttl, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errors.ErrRateLimited})
			return
		}

		c.Next()
	}
}
