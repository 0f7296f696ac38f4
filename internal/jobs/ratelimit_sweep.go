package jobs

import (
	"context"
	"log"

	"auramind/internal/services"
)

// RateLimitSweepJob reclaims rate-limiter memory for users with no activity
// inside the current window. The limiter is correct without it; this only
// bounds memory on long-running processes.
type RateLimitSweepJob struct {
	limiter *services.RateLimiter
}

// NewRateLimitSweepJob creates a sweep job over the in-memory limiter.
func NewRateLimitSweepJob(limiter *services.RateLimiter) *RateLimitSweepJob {
	return &RateLimitSweepJob{limiter: limiter}
}

// Run evicts idle keys from the limiter.
func (j *RateLimitSweepJob) Run(_ context.Context) error {
	removed := j.limiter.Cleanup()
	if removed > 0 {
		log.Printf("🧹 [RATE-SWEEP] Evicted %d idle rate-limit keys", removed)
	}
	return nil
}
