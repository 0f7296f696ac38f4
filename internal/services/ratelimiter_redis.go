package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript evicts expired members, counts what is left, and only
// records the new call when the count is under the limit. Running server-side
// keeps the decide+record pair atomic per key across instances.
// KEYS[1] = window key, ARGV = now-ms, window-ms, max calls, member id.
// Returns 1 when admitted, 0 when denied.
var slidingWindowScript = redis.NewScript(`
local cutoff = tonumber(ARGV[1]) - tonumber(ARGV[2])
redis.call("ZREMRANGEBYSCORE", KEYS[1], 0, cutoff)
if redis.call("ZCARD", KEYS[1]) >= tonumber(ARGV[3]) then
  return 0
end
redis.call("ZADD", KEYS[1], ARGV[1], ARGV[4])
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return 1
`)

// RedisRateLimiter is a sliding-window limiter backed by a Redis sorted set
// per user, for deployments running more than one instance. On Redis errors
// it fails open: an unreachable Redis should degrade limiting, not journaling.
type RedisRateLimiter struct {
	client   *redis.Client
	maxCalls int
	window   time.Duration
}

// NewRedisRateLimiter creates a Redis-backed limiter with the same admission
// semantics as the in-memory RateLimiter.
func NewRedisRateLimiter(client *redis.Client, maxCalls int, window time.Duration) *RedisRateLimiter {
	if maxCalls <= 0 {
		maxCalls = DefaultMaxAICalls
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RedisRateLimiter{
		client:   client,
		maxCalls: maxCalls,
		window:   window,
	}
}

// Allow reports whether the user may make another AI call, recording the call
// when admitted.
func (l *RedisRateLimiter) Allow(ctx context.Context, userID string) bool {
	now := time.Now().UnixMilli()
	admitted, err := slidingWindowScript.Run(ctx, l.client,
		[]string{l.key(userID)},
		now, l.window.Milliseconds(), l.maxCalls, uuid.NewString(),
	).Int()
	if err != nil {
		log.Printf("⚠️ [RATE-LIMIT] Redis check failed for user %s, allowing: %v", userID, err)
		return true
	}
	return admitted == 1
}

// Remaining returns how many calls the user has left in the current window.
func (l *RedisRateLimiter) Remaining(ctx context.Context, userID string) int {
	key := l.key(userID)
	cutoff := time.Now().Add(-l.window).UnixMilli()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", cutoff))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("⚠️ [RATE-LIMIT] Redis count failed for user %s: %v", userID, err)
		return l.maxCalls
	}

	remaining := l.maxCalls - int(countCmd.Val())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the recorded window for a user.
func (l *RedisRateLimiter) Reset(ctx context.Context, userID string) {
	if err := l.client.Del(ctx, l.key(userID)).Err(); err != nil {
		log.Printf("⚠️ [RATE-LIMIT] Redis reset failed for user %s: %v", userID, err)
	}
}

func (l *RedisRateLimiter) key(userID string) string {
	return fmt.Sprintf("ai_calls:%s", userID)
}
