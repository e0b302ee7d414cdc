//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(ctx context.Context, test *testing.T) *goredis.Client {
	test.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.4-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(test, err)
	test.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(test, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(test, err)

	client := goredis.NewClient(&goredis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	test.Cleanup(func() { _ = client.Close() })

	return client
}

func TestOrderRateLimiterFixedWindow(test *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := startRedis(ctx, test)
	limiter := NewOrderRateLimiter(client, 3, time.Minute, "rate:test:")

	for i := range 3 {
		allowed, err := limiter.Allow(ctx, "u1")
		require.NoError(test, err)
		assert.True(test, allowed, "call %d", i)
	}

	allowed, err := limiter.Allow(ctx, "u1")
	require.NoError(test, err)
	assert.False(test, allowed)

	allowed, err = limiter.Allow(ctx, "u2")
	require.NoError(test, err)
	assert.True(test, allowed)

	ttl, err := client.TTL(ctx, "rate:test:u1").Result()
	require.NoError(test, err)
	assert.Greater(test, ttl, time.Duration(0))
	assert.LessOrEqual(test, ttl, time.Minute)
}

func TestOrderRateLimiterWindowExpires(test *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := startRedis(ctx, test)
	limiter := NewOrderRateLimiter(client, 1, time.Second, "rate:expire:")

	allowed, err := limiter.Allow(ctx, "u1")
	require.NoError(test, err)
	assert.True(test, allowed)

	allowed, err = limiter.Allow(ctx, "u1")
	require.NoError(test, err)
	assert.False(test, allowed)

	assert.Eventually(test, func() bool {
		exists, err := client.Exists(ctx, "rate:expire:u1").Result()
		return err == nil && exists == 0
	}, 5*time.Second, 100*time.Millisecond)

	allowed, err = limiter.Allow(ctx, "u1")
	require.NoError(test, err)
	assert.True(test, allowed)
}
