package intake

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/nastyazhadan/order-intake/internal/config"
	"github.com/nastyazhadan/order-intake/internal/dispatcher/kafka"
	"github.com/nastyazhadan/order-intake/internal/dispatcher/noop"
	grpcOrder "github.com/nastyazhadan/order-intake/internal/grpc/order"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/closer"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/db"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/metrics"
	infraRedis "github.com/nastyazhadan/order-intake/internal/infrastructure/redis"
	"github.com/nastyazhadan/order-intake/internal/ratelimit"
	"github.com/nastyazhadan/order-intake/internal/repository/memory"
	repoPostgres "github.com/nastyazhadan/order-intake/internal/repository/postgres"
	repoRedis "github.com/nastyazhadan/order-intake/internal/repository/redis"
	svcOrder "github.com/nastyazhadan/order-intake/internal/services/order"
	"github.com/nastyazhadan/order-intake/migrations"
)

const placeOrderRateLimitPrefix = "rate:order:place:"

type DiContainer struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	closer  *closer.Closer

	dbPool     *pgxpool.Pool
	dbPoolErr  error
	dbPoolOnce sync.Once

	redisClient     *goredis.Client
	redisClientErr  error
	redisClientOnce sync.Once

	orderStore     svcOrder.Store
	orderStoreErr  error
	orderStoreOnce sync.Once

	dispatcher     svcOrder.Dispatcher
	dispatcherErr  error
	dispatcherOnce sync.Once

	rateLimiter     svcOrder.RateLimiter
	rateLimiterErr  error
	rateLimiterOnce sync.Once

	orderService     grpcOrder.Order
	orderServiceErr  error
	orderServiceOnce sync.Once
}

func NewDIContainer(cfg *config.Config, m *metrics.Metrics, c *closer.Closer) *DiContainer {
	if cfg == nil {
		panic("cfg is nil")
	}

	if c == nil {
		panic("closer is nil")
	}

	return &DiContainer{
		cfg:     cfg,
		metrics: m,
		closer:  c,
	}
}

func (d *DiContainer) DBPool(ctx context.Context) (*pgxpool.Pool, error) {
	d.dbPoolOnce.Do(func() {
		d.dbPool, d.dbPoolErr = db.SetupDB(ctx, d.cfg.Store.DBURI, migrations.Migrations)
		if d.dbPoolErr != nil {
			return
		}

		d.closer.AddNamed("postgres pool", func(context.Context) error {
			d.dbPool.Close()
			return nil
		})
	})

	return d.dbPool, d.dbPoolErr
}

func (d *DiContainer) RedisClient(ctx context.Context) (*goredis.Client, error) {
	d.redisClientOnce.Do(func() {
		d.redisClient, d.redisClientErr = infraRedis.NewClient(ctx, d.cfg.Redis)
		if d.redisClientErr != nil {
			return
		}

		d.closer.AddNamed("redis client", func(context.Context) error {
			return d.redisClient.Close()
		})
	})

	return d.redisClient, d.redisClientErr
}

// OrderStore is nil when the configured backend does not use a store.
func (d *DiContainer) OrderStore(ctx context.Context) (svcOrder.Store, error) {
	d.orderStoreOnce.Do(func() {
		if !d.cfg.Backend().UsesStore() {
			return
		}

		switch d.cfg.Store.Driver {
		case config.StoreDriverPostgres:
			pool, err := d.DBPool(ctx)
			if err != nil {
				d.orderStoreErr = err
				return
			}
			d.orderStore = repoPostgres.NewOrderStore(pool)
		default:
			d.orderStore = memory.NewOrderStore()
		}
	})

	return d.orderStore, d.orderStoreErr
}

// Dispatcher is nil when the configured backend does not use one.
func (d *DiContainer) Dispatcher(_ context.Context) (svcOrder.Dispatcher, error) {
	d.dispatcherOnce.Do(func() {
		if !d.cfg.Backend().UsesDispatcher() {
			return
		}

		switch d.cfg.Dispatcher.Driver {
		case config.DispatcherDriverKafka:
			syncProducer, err := kafka.NewSyncProducer(d.cfg.Kafka)
			if err != nil {
				d.dispatcherErr = err
				return
			}

			producer := kafka.New(syncProducer, d.cfg.Kafka, d.cfg.CircuitBreaker, d.metrics)
			d.closer.AddNamed("kafka producer", func(context.Context) error {
				return producer.Close()
			})
			d.dispatcher = producer
		default:
			d.dispatcher = noop.New()
		}
	})

	return d.dispatcher, d.dispatcherErr
}

// RateLimiter is nil when per-user limiting is disabled.
func (d *DiContainer) RateLimiter(ctx context.Context) (svcOrder.RateLimiter, error) {
	d.rateLimiterOnce.Do(func() {
		limits := d.cfg.RateLimiter

		switch limits.Driver {
		case config.RateLimiterDriverRedis:
			client, err := d.RedisClient(ctx)
			if err != nil {
				d.rateLimiterErr = err
				return
			}
			d.rateLimiter = repoRedis.NewOrderRateLimiter(
				client,
				limits.PlaceOrder,
				limits.Window,
				placeOrderRateLimitPrefix,
			)
		case config.RateLimiterDriverMemory:
			d.rateLimiter = ratelimit.NewUserLimiter(limits.PlaceOrder, limits.Window)
		}
	})

	return d.rateLimiter, d.rateLimiterErr
}

func (d *DiContainer) OrderService(ctx context.Context) (grpcOrder.Order, error) {
	d.orderServiceOnce.Do(func() {
		const op = "DiContainer.OrderService"

		store, err := d.OrderStore(ctx)
		if err != nil {
			d.orderServiceErr = fmt.Errorf("%s: %w", op, err)
			return
		}

		dispatcher, err := d.Dispatcher(ctx)
		if err != nil {
			d.orderServiceErr = fmt.Errorf("%s: %w", op, err)
			return
		}

		limiter, err := d.RateLimiter(ctx)
		if err != nil {
			d.orderServiceErr = fmt.Errorf("%s: %w", op, err)
			return
		}

		d.orderService = svcOrder.NewService(
			store,
			dispatcher,
			limiter,
			d.cfg.Backend(),
			d.cfg.Intake.PlaceTimeout,
		)
	})

	return d.orderService, d.orderServiceErr
}

func (d *DiContainer) Close(ctx context.Context) error {
	return d.closer.CloseAll(ctx)
}
