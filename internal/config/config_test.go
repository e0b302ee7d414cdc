package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nastyazhadan/order-intake/internal/domain/models"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "[::1]:50051", config.GRPC.Address)
	assert.Equal(t, models.BackendStore, config.Backend())
	assert.Equal(t, StoreDriverMemory, config.Store.Driver)
	assert.Equal(t, DispatcherDriverNoop, config.Dispatcher.Driver)
	assert.Equal(t, []string{"localhost:9092"}, config.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, config.Intake.PlaceTimeout)
	assert.Equal(t, uint32(3), config.CircuitBreaker.MaxRequests)
	assert.Equal(t, time.Minute, config.RateLimiter.Window)
	assert.Equal(t, "order-intake", config.Tracing.ServiceName)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GRPC_ADDR", ":6000")
	t.Setenv("BACKEND", "both")
	t.Setenv("DISPATCHER_DRIVER", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("ORDER_PLACE_TIMEOUT", "750ms")
	t.Setenv("RATE_LIMITER_DRIVER", "redis")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":6000", config.GRPC.Address)
	assert.Equal(t, models.BackendBoth, config.Backend())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, 750*time.Millisecond, config.Intake.PlaceTimeout)
	assert.Equal(t, RateLimiterDriverRedis, config.RateLimiter.Driver)
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OTEL_SERVICE_NAME=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("OTEL_SERVICE_NAME") })

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.Tracing.ServiceName)
}

func TestLoadMissingDotEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "неизвестный бэкенд", env: map[string]string{"BACKEND": "queue"}},
		{name: "postgres без URI", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "неизвестное хранилище", env: map[string]string{"STORE_DRIVER": "mysql"}},
		{name: "неизвестный диспетчер", env: map[string]string{"DISPATCHER_DRIVER": "nats"}},
		{name: "неизвестный лимитер", env: map[string]string{"RATE_LIMITER_DRIVER": "bucket"}},
		{
			name: "нулевой лимит",
			env:  map[string]string{"RATE_LIMITER_DRIVER": "memory", "RATE_LIMITER_PLACE_ORDER": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load("")

			assert.Error(t, err)
		})
	}
}
