package services

import (
	"context"
	"sync"
	"time"
)

// AICallLimiter is the admission contract shared by the in-memory and
// Redis-backed limiters. Denial is a normal return value, never an error.
type AICallLimiter interface {
	Allow(ctx context.Context, userID string) bool
	Remaining(ctx context.Context, userID string) int
	Reset(ctx context.Context, userID string)
}

// RateLimiter is an in-memory sliding-window limiter for AI calls per user.
// For multi-instance deployments use RedisRateLimiter instead.
type RateLimiter struct {
	maxCalls int
	window   time.Duration

	mu    sync.Mutex
	calls map[string][]time.Time
}

// Defaults used by the surrounding system.
const (
	DefaultMaxAICalls = 20
	DefaultRateWindow = 60 * time.Minute
)

// NewRateLimiter creates a limiter admitting at most maxCalls per key within
// the trailing window.
func NewRateLimiter(maxCalls int, window time.Duration) *RateLimiter {
	if maxCalls <= 0 {
		maxCalls = DefaultMaxAICalls
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		maxCalls: maxCalls,
		window:   window,
		calls:    make(map[string][]time.Time),
	}
}

// Allow reports whether the user may make another AI call right now, and
// records the call when admitted. The admission check and the record happen
// under one critical section so concurrent requests never observe a torn count.
func (l *RateLimiter) Allow(_ context.Context, userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	recent := l.pruneLocked(userID, now)

	if len(recent) >= l.maxCalls {
		l.calls[userID] = recent
		return false
	}

	l.calls[userID] = append(recent, now)
	return true
}

// Remaining returns how many calls the user has left in the current window.
// Never negative.
func (l *RateLimiter) Remaining(_ context.Context, userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.pruneLocked(userID, time.Now())
	l.calls[userID] = recent

	remaining := l.maxCalls - len(recent)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears all recorded calls for a user.
func (l *RateLimiter) Reset(_ context.Context, userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.calls, userID)
}

// Cleanup evicts expired timestamps for every key and drops keys with no
// recent activity. Returns the number of keys removed. Correctness does not
// depend on this running; it only bounds memory for idle users.
func (l *RateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	removed := 0
	for userID := range l.calls {
		recent := l.pruneLocked(userID, now)
		if len(recent) == 0 {
			delete(l.calls, userID)
			removed++
		} else {
			l.calls[userID] = recent
		}
	}
	return removed
}

// pruneLocked drops timestamps outside the window. Caller must hold l.mu.
func (l *RateLimiter) pruneLocked(userID string, now time.Time) []time.Time {
	recent := l.calls[userID][:0]
	for _, t := range l.calls[userID] {
		if now.Sub(t) < l.window {
			recent = append(recent, t)
		}
	}
	return recent
}
