package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nastyazhadan/order-intake/internal/domain/models"
	repositoryErrors "github.com/nastyazhadan/order-intake/internal/errors/repository"
	serviceErrors "github.com/nastyazhadan/order-intake/internal/errors/service"
	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
)

const tracerName = "github.com/nastyazhadan/order-intake/internal/services/order"

type Service struct {
	store      Store
	dispatcher Dispatcher
	limiter    RateLimiter
	backend    models.Backend

	placeTimeout time.Duration
	now          func() time.Time
	tracer       trace.Tracer
}

type Store interface {
	Put(ctx context.Context, order models.Order) (models.Order, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.Order) error) (models.Order, error)
}

type Dispatcher interface {
	Publish(ctx context.Context, order models.Order) (models.Order, error)
	PublishCancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) (uuid.UUID, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, userID string) (bool, error)
}

// NewService wires the collaborators selected by backend. Store or dispatcher
// may be nil when the backend does not use them; limiter may be nil to
// disable per-user limiting.
func NewService(
	store Store,
	dispatcher Dispatcher,
	limiter RateLimiter,
	backend models.Backend,
	placeTimeout time.Duration,
) *Service {
	return &Service{
		store:        store,
		dispatcher:   dispatcher,
		limiter:      limiter,
		backend:      backend,
		placeTimeout: placeTimeout,
		now:          time.Now,
		tracer:       otel.Tracer(tracerName),
	}
}

func (s *Service) PlaceOrder(
	ctx context.Context,
	userID string,
	pair string,
	orderType models.Type,
	price decimal.Decimal,
	quantity decimal.Decimal,
) (models.Order, error) {
	const op = "Service.PlaceOrder"

	ctx, span := s.tracer.Start(ctx, "order.PlaceOrder",
		trace.WithAttributes(
			attribute.String("order.user_id", userID),
			attribute.String("order.pair", pair),
			attribute.String("order.type", orderType.String()),
		),
	)
	defer span.End()

	if s.placeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.placeTimeout)
		defer cancel()
	}

	if err := s.checkRateLimit(ctx, userID); err != nil {
		return models.Order{}, s.fail(span, op, err)
	}

	newOrder := models.NewOrder(uuid.New(), userID, pair, orderType, price, quantity, s.now())
	span.SetAttributes(attribute.String("order.id", newOrder.ID.String()))

	var (
		placed models.Order
		err    error
	)

	switch s.backend {
	case models.BackendStore:
		placed, err = s.save(ctx, newOrder)
	case models.BackendDispatcher:
		placed, err = s.publish(ctx, newOrder)
	case models.BackendBoth:
		placed, err = s.saveAndPublish(ctx, newOrder)
	default:
		err = serviceErrors.ErrUnimplemented
	}
	if err != nil {
		return models.Order{}, s.fail(span, op, err)
	}

	return placed, nil
}

func (s *Service) CancelOrder(ctx context.Context, orderID uuid.UUID) (models.Status, error) {
	const op = "Service.CancelOrder"

	ctx, span := s.tracer.Start(ctx, "order.CancelOrder",
		trace.WithAttributes(attribute.String("order.id", orderID.String())),
	)
	defer span.End()

	var (
		status models.Status
		err    error
	)

	switch s.backend {
	case models.BackendStore:
		var cancelled models.Order
		cancelled, err = s.markCancelled(ctx, orderID, s.now())
		status = cancelled.Status
	case models.BackendDispatcher:
		status, err = s.publishCancel(ctx, orderID, s.now())
	case models.BackendBoth:
		status, err = s.cancelAndPublish(ctx, orderID)
	default:
		err = serviceErrors.ErrUnimplemented
	}
	if err != nil {
		return models.StatusUnspecified, s.fail(span, op, err)
	}

	return status, nil
}

func (s *Service) GetOrderStatus(ctx context.Context, orderID uuid.UUID) (models.Order, error) {
	const op = "Service.GetOrderStatus"

	ctx, span := s.tracer.Start(ctx, "order.GetOrderStatus",
		trace.WithAttributes(attribute.String("order.id", orderID.String())),
	)
	defer span.End()

	if !s.backend.UsesStore() || s.store == nil {
		return models.Order{}, s.fail(span, op, serviceErrors.ErrUnimplemented)
	}

	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return models.Order{}, s.fail(span, op, mapStoreError(err))
	}

	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	const op = "Service.ListOrders"

	ctx, span := s.tracer.Start(ctx, "order.ListOrders",
		trace.WithAttributes(attribute.String("order.user_id", userID)),
	)
	defer span.End()

	if !s.backend.UsesStore() || s.store == nil {
		return nil, s.fail(span, op, serviceErrors.ErrUnimplemented)
	}

	orders, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.fail(span, op, mapStoreError(err))
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))

	return orders, nil
}

func (s *Service) checkRateLimit(ctx context.Context, userID string) error {
	if s.limiter == nil {
		return nil
	}

	allowed, err := s.limiter.Allow(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", serviceErrors.ErrBackendFailure, err)
	}
	if !allowed {
		return serviceErrors.ErrRateLimitExceeded
	}

	return nil
}

func (s *Service) save(ctx context.Context, order models.Order) (models.Order, error) {
	if s.store == nil {
		return models.Order{}, serviceErrors.ErrUnimplemented
	}

	stored, err := s.store.Put(ctx, order)
	if err != nil {
		return models.Order{}, mapStoreError(err)
	}

	return stored, nil
}

func (s *Service) publish(ctx context.Context, order models.Order) (models.Order, error) {
	if s.dispatcher == nil {
		return models.Order{}, serviceErrors.ErrUnimplemented
	}

	published, err := s.dispatcher.Publish(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", serviceErrors.ErrBackendFailure, err)
	}

	return published, nil
}

// saveAndPublish removes the stored record again when the event cannot be
// published, so the store never holds an order nobody downstream heard of.
func (s *Service) saveAndPublish(ctx context.Context, order models.Order) (models.Order, error) {
	if s.store == nil || s.dispatcher == nil {
		return models.Order{}, serviceErrors.ErrUnimplemented
	}

	stored, err := s.save(ctx, order)
	if err != nil {
		return models.Order{}, err
	}

	if _, err := s.publish(ctx, stored); err != nil {
		if removeErr := s.store.Remove(context.WithoutCancel(ctx), stored.ID); removeErr != nil {
			zapLogger.Error(ctx, "failed to remove order after publish failure",
				zap.String("order_id", stored.ID.String()),
				zap.Error(removeErr),
			)
		}

		return models.Order{}, err
	}

	return stored, nil
}

func (s *Service) markCancelled(ctx context.Context, orderID uuid.UUID, at time.Time) (models.Order, error) {
	if s.store == nil {
		return models.Order{}, serviceErrors.ErrUnimplemented
	}

	cancelled, err := s.store.Update(ctx, orderID, func(order *models.Order) error {
		return order.Cancel(at)
	})
	if err != nil {
		return models.Order{}, mapStoreError(err)
	}

	return cancelled, nil
}

func (s *Service) publishCancel(ctx context.Context, orderID uuid.UUID, at time.Time) (models.Status, error) {
	if s.dispatcher == nil {
		return models.StatusUnspecified, serviceErrors.ErrUnimplemented
	}

	if _, err := s.dispatcher.PublishCancel(ctx, orderID, at); err != nil {
		return models.StatusUnspecified, fmt.Errorf("%w: %w", serviceErrors.ErrBackendFailure, err)
	}

	return models.StatusCancelled, nil
}

// cancelAndPublish publishes before it commits, so a failed publish leaves
// the stored order as it was and a committed cancel is never rolled back.
// Two racing cancels may both publish; only one of them commits.
func (s *Service) cancelAndPublish(ctx context.Context, orderID uuid.UUID) (models.Status, error) {
	if s.store == nil || s.dispatcher == nil {
		return models.StatusUnspecified, serviceErrors.ErrUnimplemented
	}

	current, err := s.store.Get(ctx, orderID)
	if err != nil {
		return models.StatusUnspecified, mapStoreError(err)
	}
	if !current.Status.CanTransitionTo(models.StatusCancelled) {
		return models.StatusUnspecified, fmt.Errorf("%w: %w: %s -> %s",
			serviceErrors.ErrOrderNotCancellable, models.ErrInvalidTransition, current.Status, models.StatusCancelled)
	}

	at := s.now()
	if _, err := s.publishCancel(ctx, orderID, at); err != nil {
		return models.StatusUnspecified, err
	}

	cancelled, err := s.markCancelled(ctx, orderID, at)
	if err != nil {
		zapLogger.Warn(ctx, "cancel event published but order was not cancelled in store",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)

		return models.StatusUnspecified, err
	}

	return cancelled.Status, nil
}

func (s *Service) fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return fmt.Errorf("%s: %w", op, err)
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, repositoryErrors.ErrOrderNotFound):
		return serviceErrors.ErrOrderNotFound
	case errors.Is(err, models.ErrInvalidTransition):
		return fmt.Errorf("%w: %w", serviceErrors.ErrOrderNotCancellable, err)
	default:
		return fmt.Errorf("%w: %w", serviceErrors.ErrBackendFailure, err)
	}
}
