package intake

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/nastyazhadan/order-intake/internal/config"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/closer"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/metrics"
	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
)

func testConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()

	t.Setenv("GRPC_ADDR", "127.0.0.1:0")
	t.Setenv("METRICS_ADDRESS", "")
	for key, value := range env {
		t.Setenv(key, value)
	}

	cfg, err := config.Load("")
	require.NoError(t, err)

	return cfg
}

func TestAppStartsAndStops(t *testing.T) {
	zapLogger.SetNopLogger()
	cfg := testConfig(t, map[string]string{"RATE_LIMITER_SERVER_RPS": "50"})

	app := fxtest.New(t, fx.NopLogger, Module(context.Background(), cfg))

	app.RequireStart()
	app.RequireStop()
}

func TestContainerWiresBackends(t *testing.T) {
	tests := []struct {
		name           string
		env            map[string]string
		wantStore      bool
		wantDispatcher bool
		wantLimiter    bool
	}{
		{name: "только хранилище", env: map[string]string{"BACKEND": "store"}, wantStore: true},
		{name: "только диспетчер", env: map[string]string{"BACKEND": "dispatcher"}, wantDispatcher: true},
		{
			name:           "оба бэкенда с лимитером",
			env:            map[string]string{"BACKEND": "both", "RATE_LIMITER_DRIVER": "memory"},
			wantStore:      true,
			wantDispatcher: true,
			wantLimiter:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, tt.env)
			container := NewDIContainer(cfg, metrics.New(), closer.New(zapLogger.Logger()))

			store, err := container.OrderStore(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStore, store != nil)

			dispatcher, err := container.Dispatcher(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDispatcher, dispatcher != nil)

			limiter, err := container.RateLimiter(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimiter, limiter != nil)

			service, err := container.OrderService(ctx)
			require.NoError(t, err)
			assert.NotNil(t, service)

			stopCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			assert.NoError(t, container.Close(stopCtx))
		})
	}
}
