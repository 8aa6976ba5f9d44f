package ratelimit

import (
	"sync"
	"time"
)

// DefaultLimit is the per-user request budget per window. This is a
// burst guard in front of the AI endpoints, separate from the daily
// usage ledger.
const DefaultLimit = 100

type UserCounter struct {
	Count     int
	LastReset time.Time
}

type RateLimiter struct {
	counters map[string]*UserCounter
	limit    int
	window   time.Duration
	now      func() time.Time
	mu       sync.RWMutex
	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(limit int) *RateLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rl := &RateLimiter{
		counters: make(map[string]*UserCounter),
		limit:    limit,
		window:   time.Minute,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stop:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) IsAllowed(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	counter, exists := rl.counters[userID]

	if !exists {
		rl.counters[userID] = &UserCounter{
			Count:     1,
			LastReset: now,
		}
		return true
	}

	// Reset counter when the window has passed
	if now.Sub(counter.LastReset) >= rl.window {
		counter.Count = 1
		counter.LastReset = now
		return true
	}

	if counter.Count >= rl.limit {
		return false
	}

	counter.Count++
	return true
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for userID, counter := range rl.counters {
		if now.Sub(counter.LastReset) >= rl.window {
			delete(rl.counters, userID)
		}
	}
}
