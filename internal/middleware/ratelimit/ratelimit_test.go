package ratelimit

import (
	"testing"
	"time"
)

func TestIsAllowedUnderLimit(t *testing.T) {
	rl := NewRateLimiter(3)
	for i := 1; i <= 3; i++ {
		if !rl.IsAllowed("u1") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.IsAllowed("u1") {
		t.Fatal("request over limit should be denied")
	}
}

func TestIsAllowedPerUser(t *testing.T) {
	rl := NewRateLimiter(1)
	if !rl.IsAllowed("u1") {
		t.Fatal("u1 first request should be allowed")
	}
	if !rl.IsAllowed("u2") {
		t.Fatal("u2 should have an independent budget")
	}
	if rl.IsAllowed("u1") {
		t.Fatal("u1 second request should be denied")
	}
}

func TestWindowReset(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1)
	rl.now = func() time.Time { return now }

	if !rl.IsAllowed("u1") {
		t.Fatal("first request should be allowed")
	}
	if rl.IsAllowed("u1") {
		t.Fatal("second request in the window should be denied")
	}

	now = now.Add(time.Minute)
	if !rl.IsAllowed("u1") {
		t.Fatal("window should reset after a minute")
	}
}

func TestStopTerminatesCleanup(t *testing.T) {
	rl := NewRateLimiter(5)
	rl.Stop()

	select {
	case <-rl.stop:
	default:
		t.Fatal("stop channel should be closed")
	}

	// Idempotent; a second Stop must not panic on the closed channel.
	rl.Stop()

	if !rl.IsAllowed("u1") {
		t.Fatal("a stopped limiter still limits, it only stops pruning")
	}
}

func TestCleanupDropsStaleCounters(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5)
	rl.now = func() time.Time { return now }

	rl.IsAllowed("u1")
	now = now.Add(2 * time.Minute)
	rl.cleanup()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if _, ok := rl.counters["u1"]; ok {
		t.Fatal("stale counter should have been dropped")
	}
}
