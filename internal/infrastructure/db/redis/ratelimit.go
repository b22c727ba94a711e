package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per key in fixed windows backed by Redis.
// Key format: ratelimit:<scope>:<key>
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow records one hit for key in scope and reports whether it is within
// limit for the current window. The window starts at the first hit.
// A non-positive limit disables the check.
func (l *RateLimiter) Allow(ctx context.Context, scope, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	// SET NX EX opens the window with its TTL in one command; INCR keeps the
	// TTL. MULTI/EXEC means no counter ever exists without an expiry.
	k := l.key(scope, key)
	var hits *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, window)
		hits = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return hits.Val() <= int64(limit), nil
}

func (l *RateLimiter) key(scope, key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, key)
}
