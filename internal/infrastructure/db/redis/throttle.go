package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures   = 10
	defaultFailureWindow = time.Minute
)

// AuthThrottle counts failed credential presentations per client IP in a
// rolling TTL window, backed by Redis. Once the limit is hit, the auth guard
// rejects the client before any store lookup.
// Key format: authfail:<client_ip>
type AuthThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewAuthThrottle creates an AuthThrottle wrapping the given Redis client.
// Non-positive limit or window fall back to the defaults.
func NewAuthThrottle(client *redis.Client, maxFailures int64, window time.Duration) *AuthThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultFailureWindow
	}
	return &AuthThrottle{client: client, maxFailures: maxFailures, window: window}
}

// Allow reports whether the client is still under the failure limit.
func (t *AuthThrottle) Allow(ctx context.Context, clientIP string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(clientIP)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < t.maxFailures, nil
}

// RecordFailure increments the client's failure count; the first failure in
// a window starts the TTL.
func (t *AuthThrottle) RecordFailure(ctx context.Context, clientIP string) error {
	key := t.key(clientIP)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

func (t *AuthThrottle) key(clientIP string) string {
	return "authfail:" + clientIP
}
