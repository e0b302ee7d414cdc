package intake

import (
	"context"
	"errors"
	"fmt"
	"net"

	grpcRateLimit "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/ratelimit"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/nastyazhadan/order-intake/internal/config"
	grpcOrder "github.com/nastyazhadan/order-intake/internal/grpc/order"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/closer"
	infraHealth "github.com/nastyazhadan/order-intake/internal/infrastructure/health"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/metrics"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/tracing"
	logInterceptor "github.com/nastyazhadan/order-intake/internal/interceptors/logger"
	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
	metricsInterceptor "github.com/nastyazhadan/order-intake/internal/interceptors/metrics"
	"github.com/nastyazhadan/order-intake/internal/interceptors/recovery"
	"github.com/nastyazhadan/order-intake/internal/interceptors/xrequestid"
	"github.com/nastyazhadan/order-intake/internal/ratelimit"
)

// Run blocks until the process receives SIGINT or SIGTERM.
func Run(ctx context.Context, cfg *config.Config) {
	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zapLogger.Raw()}
		}),
		fx.StopTimeout(cfg.GRPC.ShutdownTimeout),
		Module(ctx, cfg),
	)

	app.Run()
}

func Module(ctx context.Context, cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Provide(
			func() context.Context {
				return ctx
			},
			func() *config.Config {
				return cfg
			}),
		fx.Provide(
			metrics.New,
			provideTracerProvider,
			provideContainer,
			provideListener,
			provideGRPCServer,
		),
		fx.Invoke(
			registerLogger,
			startMetricsServer,
			startGRPCServer,
		),
	)
}

func registerLogger(lifeCycle fx.Lifecycle) {
	lifeCycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = zapLogger.Sync()

			return nil
		},
	})
}

func provideTracerProvider(
	ctx context.Context,
	lifeCycle fx.Lifecycle,
	cfg *config.Config,
) (*sdktrace.TracerProvider, error) {
	provider, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}

	lifeCycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return provider.Shutdown(ctx)
		},
	})

	return provider, nil
}

func provideContainer(
	lifeCycle fx.Lifecycle,
	cfg *config.Config,
	m *metrics.Metrics,
) *DiContainer {
	container := NewDIContainer(cfg, m, closer.New(zapLogger.Logger()))

	lifeCycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return container.Close(ctx)
		},
	})

	return container
}

func provideListener(
	lifeCycle fx.Lifecycle,
	cfg *config.Config,
) (net.Listener, error) {
	listener, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return nil, fmt.Errorf("net.Listen: %w", err)
	}

	lifeCycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			errClose := listener.Close()
			if errClose != nil && !errors.Is(errClose, net.ErrClosed) {
				return errClose
			}

			return nil
		},
	})

	return listener, nil
}

func provideGRPCServer(
	ctx context.Context,
	lifeCycle fx.Lifecycle,
	cfg *config.Config,
	container *DiContainer,
	m *metrics.Metrics,
) (*grpc.Server, error) {
	orderService, err := container.OrderService(ctx)
	if err != nil {
		return nil, err
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unaryInterceptors(cfg, m)...),
	)

	healthServer := infraHealth.RegisterService(grpcServer)
	grpcOrder.Register(grpcServer, orderService)

	lifeCycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopGRPCServer(ctx, grpcServer, healthServer)
			return nil
		},
	})

	return grpcServer, nil
}

func unaryInterceptors(cfg *config.Config, m *metrics.Metrics) []grpc.UnaryServerInterceptor {
	interceptors := []grpc.UnaryServerInterceptor{
		xrequestid.Server,
		logInterceptor.Interceptor(),
		metricsInterceptor.Interceptor(m),
		recovery.Interceptor(),
	}

	if cfg.RateLimiter.ServerRPS > 0 {
		limiter := ratelimit.NewServerLimiter(cfg.RateLimiter.ServerRPS, cfg.RateLimiter.ServerBurst)
		interceptors = append(interceptors, grpcRateLimit.UnaryServerInterceptor(limiter))
	}

	return interceptors
}

// stopGRPCServer drains in-flight calls until ctx expires, then cuts them off.
func stopGRPCServer(ctx context.Context, server *grpc.Server, healthServer *health.Server) {
	healthServer.Shutdown()

	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		server.Stop()
	}
}

func startMetricsServer(
	lifeCycle fx.Lifecycle,
	cfg *config.Config,
	m *metrics.Metrics,
) {
	if cfg.Metrics.Address == "" {
		return
	}

	server := metrics.NewServer(cfg.Metrics.Address, m)

	lifeCycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			zapLogger.Info(ctx, fmt.Sprintf("Starting metrics server on %s", cfg.Metrics.Address))
			go func() {
				if err := server.Start(); err != nil {
					zapLogger.Error(context.Background(), "metrics server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}

// Parameter order fixes hook order: on stop the server drains first, then the
// listener, then the tracer provider flushes.
func startGRPCServer(
	lifeCycle fx.Lifecycle,
	_ *sdktrace.TracerProvider,
	listener net.Listener,
	server *grpc.Server,
) {
	lifeCycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			zapLogger.Info(ctx, fmt.Sprintf("Starting gRPC intake server on %s", listener.Addr()))
			go func() {
				if err := server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
					zapLogger.Error(context.Background(), "gRPC intake server error", zap.Error(err))
				}
			}()

			return nil
		},
	})
}
