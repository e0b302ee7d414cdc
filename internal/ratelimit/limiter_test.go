package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLimiterIsPerUser(t *testing.T) {
	ctx := context.Background()
	limiter := NewUserLimiter(2, time.Hour)

	for range 2 {
		allowed, err := limiter.Allow(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestUserLimiterDropsIdleBuckets(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewUserLimiter(1, time.Minute)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	for i := range 100 {
		allowed, err := limiter.Allow(ctx, fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	assert.Equal(t, 100, limiter.Len())

	allowed, err := limiter.Allow(ctx, "user-0")
	require.NoError(t, err)
	assert.False(t, allowed, "bucket must survive until it has been idle for a window")

	clock = clock.Add(30 * time.Second)
	_, err = limiter.Allow(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, 101, limiter.Len())

	clock = clock.Add(45 * time.Second)
	allowed, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 2, limiter.Len(), "only the recently used buckets are kept")
}

func TestServerLimiter(t *testing.T) {
	limiter := NewServerLimiter(0.001, 1)

	assert.NoError(t, limiter.Limit(context.Background()))
	assert.ErrorIs(t, limiter.Limit(context.Background()), ErrServerRateLimited)
}
