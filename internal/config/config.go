package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/nastyazhadan/order-intake/internal/domain/models"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	DispatcherDriverNoop  = "noop"
	DispatcherDriverKafka = "kafka"

	RateLimiterDriverNone   = "none"
	RateLimiterDriverMemory = "memory"
	RateLimiterDriverRedis  = "redis"
)

type Config struct {
	GRPC           GRPCConfig           `mapstructure:",squash"`
	Log            LogConfig            `mapstructure:",squash"`
	Intake         IntakeConfig         `mapstructure:",squash"`
	Store          StoreConfig          `mapstructure:",squash"`
	Dispatcher     DispatcherConfig     `mapstructure:",squash"`
	Kafka          KafkaConfig          `mapstructure:",squash"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:",squash"`
	RateLimiter    RateLimiterConfig    `mapstructure:",squash"`
	Redis          RedisConfig          `mapstructure:",squash"`
	Metrics        MetricsConfig        `mapstructure:",squash"`
	Tracing        TracingConfig        `mapstructure:",squash"`
}

type GRPCConfig struct {
	Address         string        `mapstructure:"GRPC_ADDR"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

type LogConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type IntakeConfig struct {
	Backend      string        `mapstructure:"BACKEND"`
	PlaceTimeout time.Duration `mapstructure:"ORDER_PLACE_TIMEOUT"`
}

type StoreConfig struct {
	Driver string `mapstructure:"STORE_DRIVER"`
	DBURI  string `mapstructure:"ORDER_DB_URI"`
}

type DispatcherConfig struct {
	Driver string `mapstructure:"DISPATCHER_DRIVER"`
}

type KafkaConfig struct {
	Brokers     []string `mapstructure:"KAFKA_BROKERS"`
	PlaceTopic  string   `mapstructure:"KAFKA_PLACE_TOPIC"`
	CancelTopic string   `mapstructure:"KAFKA_CANCEL_TOPIC"`
	ClientID    string   `mapstructure:"KAFKA_CLIENT_ID"`
	MaxRetries  int      `mapstructure:"KAFKA_MAX_RETRIES"`
}

type CircuitBreakerConfig struct {
	MaxRequests uint32        `mapstructure:"CB_MAX_REQUESTS"`
	Interval    time.Duration `mapstructure:"CB_INTERVAL"`
	Timeout     time.Duration `mapstructure:"CB_TIMEOUT"`
	MaxFailures uint32        `mapstructure:"CB_MAX_FAILURES"`
}

type RateLimiterConfig struct {
	Driver      string        `mapstructure:"RATE_LIMITER_DRIVER"`
	PlaceOrder  int64         `mapstructure:"RATE_LIMITER_PLACE_ORDER"`
	Window      time.Duration `mapstructure:"RATE_LIMITER_WINDOW"`
	ServerRPS   float64       `mapstructure:"RATE_LIMITER_SERVER_RPS"`
	ServerBurst int           `mapstructure:"RATE_LIMITER_SERVER_BURST"`
}

type RedisConfig struct {
	Address     string        `mapstructure:"REDIS_ADDRESS"`
	Password    string        `mapstructure:"REDIS_PASSWORD"`
	DB          int           `mapstructure:"REDIS_DB"`
	DialTimeout time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
}

type MetricsConfig struct {
	Address string `mapstructure:"METRICS_ADDRESS"`
}

type TracingConfig struct {
	Endpoint    string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

var defaults = map[string]any{
	"GRPC_ADDR":                   "[::1]:50051",
	"SHUTDOWN_TIMEOUT":            "10s",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "console",
	"BACKEND":                     string(models.BackendStore),
	"ORDER_PLACE_TIMEOUT":         "5s",
	"STORE_DRIVER":                StoreDriverMemory,
	"ORDER_DB_URI":                "",
	"DISPATCHER_DRIVER":           DispatcherDriverNoop,
	"KAFKA_BROKERS":               "localhost:9092",
	"KAFKA_PLACE_TOPIC":           "orders.placed",
	"KAFKA_CANCEL_TOPIC":          "orders.cancelled",
	"KAFKA_CLIENT_ID":             "order-intake",
	"KAFKA_MAX_RETRIES":           5,
	"CB_MAX_REQUESTS":             3,
	"CB_INTERVAL":                 "10s",
	"CB_TIMEOUT":                  "5s",
	"CB_MAX_FAILURES":             5,
	"RATE_LIMITER_DRIVER":         RateLimiterDriverNone,
	"RATE_LIMITER_PLACE_ORDER":    100,
	"RATE_LIMITER_WINDOW":         "1m",
	"RATE_LIMITER_SERVER_RPS":     0,
	"RATE_LIMITER_SERVER_BURST":   100,
	"REDIS_ADDRESS":               "localhost:6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"REDIS_DIAL_TIMEOUT":          "2s",
	"METRICS_ADDRESS":             ":9090",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_SERVICE_NAME":           "order-intake",
}

// Load reads the optional .env file at path, then the process environment.
// Variables already set in the environment win over the file.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	config.Kafka.Brokers = splitList(config.Kafka.Brokers)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if _, err := models.ParseBackend(c.Intake.Backend); err != nil {
		return err
	}

	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Store.DBURI == "" {
			return errors.New("ORDER_DB_URI is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Dispatcher.Driver {
	case DispatcherDriverNoop:
	case DispatcherDriverKafka:
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("KAFKA_BROKERS is required for the kafka dispatcher")
		}
	default:
		return fmt.Errorf("unknown DISPATCHER_DRIVER %q", c.Dispatcher.Driver)
	}

	switch c.RateLimiter.Driver {
	case RateLimiterDriverNone, RateLimiterDriverMemory, RateLimiterDriverRedis:
	default:
		return fmt.Errorf("unknown RATE_LIMITER_DRIVER %q", c.RateLimiter.Driver)
	}

	if c.RateLimiter.Driver != RateLimiterDriverNone && (c.RateLimiter.PlaceOrder <= 0 || c.RateLimiter.Window <= 0) {
		return errors.New("RATE_LIMITER_PLACE_ORDER and RATE_LIMITER_WINDOW must be positive")
	}

	return nil
}

func (c *Config) Backend() models.Backend {
	return models.Backend(c.Intake.Backend)
}

func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
