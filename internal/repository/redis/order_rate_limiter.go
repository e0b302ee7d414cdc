package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// OrderRateLimiter is a fixed-window counter per user shared by every
// instance that talks to the same Redis.
type OrderRateLimiter struct {
	client goredis.Cmdable
	limit  int64
	window time.Duration
	prefix string
}

func NewOrderRateLimiter(
	client goredis.Cmdable,
	limit int64,
	window time.Duration,
	prefix string,
) *OrderRateLimiter {
	return &OrderRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

func (r *OrderRateLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	const op = "OrderRateLimiter.Allow"

	key := r.prefix + userID

	// The window key is created together with its TTL, so a counter can
	// never outlive its window.
	var incr *goredis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, r.window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return incr.Val() <= r.limit, nil
}
