package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/nastyazhadan/order-intake/internal/config"
	"github.com/nastyazhadan/order-intake/internal/dispatcher/kafka/dto"
	"github.com/nastyazhadan/order-intake/internal/domain/models"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/metrics"
	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
)

var ErrPublishFailed = errors.New("publish order event failed")

const (
	eventPlaced    = "placed"
	eventCancelled = "cancelled"
)

type Producer struct {
	producer       sarama.SyncProducer
	circuitBreaker *gobreaker.CircuitBreaker[struct{}]
	placeTopic     string
	cancelTopic    string
	metrics        *metrics.Metrics
}

func NewSyncProducer(cfg config.KafkaConfig) (sarama.SyncProducer, error) {
	const op = "kafka.NewSyncProducer"

	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.ClientID
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = cfg.MaxRetries

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return producer, nil
}

// New takes ownership of producer; Close closes it. m may be nil.
func New(
	producer sarama.SyncProducer,
	cfg config.KafkaConfig,
	cbConfig config.CircuitBreakerConfig,
	m *metrics.Metrics,
) *Producer {
	circuitBreaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "kafkaDispatcher",
		MaxRequests: cbConfig.MaxRequests,
		Interval:    cbConfig.Interval,
		Timeout:     cbConfig.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cbConfig.MaxFailures
		},
	})

	return &Producer{
		producer:       producer,
		circuitBreaker: circuitBreaker,
		placeTopic:     cfg.PlaceTopic,
		cancelTopic:    cfg.CancelTopic,
		metrics:        m,
	}
}

func (p *Producer) Publish(ctx context.Context, order models.Order) (models.Order, error) {
	const op = "kafka.Producer.Publish"

	if err := p.send(ctx, eventPlaced, p.placeTopic, order.ID, dto.OrderPlacedFromDomain(order)); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

func (p *Producer) PublishCancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) (uuid.UUID, error) {
	const op = "kafka.Producer.PublishCancel"

	event := dto.OrderCancelledEvent{
		OrderID:     id,
		CancelledAt: cancelledAt.UTC(),
	}

	if err := p.send(ctx, eventCancelled, p.cancelTopic, id, event); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

func (p *Producer) send(ctx context.Context, kind, topic string, key uuid.UUID, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", kind, err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key.String()),
		Value: sarama.ByteEncoder(payload),
	}
	if requestID := zapLogger.TraceIDFromContext(ctx); requestID != "" {
		message.Headers = []sarama.RecordHeader{
			{Key: []byte("x-request-id"), Value: []byte(requestID)},
		}
	}

	_, err = p.circuitBreaker.Execute(func() (struct{}, error) {
		partition, offset, err := p.producer.SendMessage(message)
		if err != nil {
			return struct{}{}, err
		}

		zapLogger.Debug(ctx, "order event published",
			zap.String("event", kind),
			zap.String("order_id", key.String()),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset),
		)

		return struct{}{}, nil
	})
	if err != nil {
		if p.metrics != nil {
			p.metrics.DispatchErrors.WithLabelValues(kind).Inc()
		}
		zapLogger.Error(ctx, "order event publish failed",
			zap.String("event", kind),
			zap.String("order_id", key.String()),
			zap.Error(err),
		)

		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}
