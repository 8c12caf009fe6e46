package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestThrottle(t *testing.T, maxFailures int64, window time.Duration) (*AuthThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewAuthThrottle(client, maxFailures, window), mr
}

func TestAuthThrottle_AllowsBelowLimit(t *testing.T) {
	th, _ := newTestThrottle(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := th.RecordFailure(ctx, "10.0.0.1"); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}

	allowed, err := th.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !allowed {
		t.Fatalf("expected client below limit to be allowed")
	}
}

func TestAuthThrottle_BlocksAtLimit(t *testing.T) {
	th, _ := newTestThrottle(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := th.RecordFailure(ctx, "10.0.0.2"); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}

	allowed, err := th.Allow(ctx, "10.0.0.2")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatalf("expected client at limit to be blocked")
	}
}

func TestAuthThrottle_UnknownClientAllowed(t *testing.T) {
	th, _ := newTestThrottle(t, 3, time.Minute)

	allowed, err := th.Allow(context.Background(), "10.0.0.3")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !allowed {
		t.Fatalf("expected unseen client to be allowed")
	}
}

func TestAuthThrottle_WindowExpiry(t *testing.T) {
	th, mr := newTestThrottle(t, 1, time.Minute)
	ctx := context.Background()

	if err := th.RecordFailure(ctx, "10.0.0.4"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if allowed, _ := th.Allow(ctx, "10.0.0.4"); allowed {
		t.Fatalf("expected block inside window")
	}

	mr.FastForward(2 * time.Minute)

	allowed, err := th.Allow(ctx, "10.0.0.4")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !allowed {
		t.Fatalf("expected allow after window expiry")
	}
}

func TestAuthThrottle_ClientsIsolated(t *testing.T) {
	th, _ := newTestThrottle(t, 1, time.Minute)
	ctx := context.Background()

	if err := th.RecordFailure(ctx, "10.0.0.5"); err != nil {
		t.Fatalf("record failure: %v", err)
	}

	allowed, err := th.Allow(ctx, "10.0.0.6")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !allowed {
		t.Fatalf("failures for one client must not block another")
	}
}
