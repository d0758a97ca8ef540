// Package throttle implements a Redis-backed sliding-window rate limiter
// used to cap verification attempts per client.
package throttle

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether an attempt identified by key may proceed.
type Limiter interface {
	// Allow records an attempt under key and reports whether it stays
	// within limit attempts per window.
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

// SlidingWindow is a Limiter backed by a Redis sorted set per key. Each
// attempt is a member scored by its timestamp; members older than the window
// are trimmed on every call, so the count is exact over a rolling window.
type SlidingWindow struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewSlidingWindow constructs a sliding-window limiter.
func NewSlidingWindow(client *redis.Client) *SlidingWindow {
	return &SlidingWindow{
		client: client,
		prefix: "throttle:",
		now:    time.Now,
	}
}

// Allow records the attempt and reports whether it is within the limit. The
// attempt is counted even when rejected, matching the behavior of counting
// submissions rather than successes.
func (s *SlidingWindow) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	fk := s.prefix + key
	now := s.now()
	cutoff := now.Add(-window).UnixNano()

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, fk, "0", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, fk, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	count := pipe.ZCard(ctx, fk)
	pipe.Expire(ctx, fk, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() <= limit, nil
}
