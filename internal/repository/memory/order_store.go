package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nastyazhadan/order-intake/internal/domain/models"
	repositoryErrors "github.com/nastyazhadan/order-intake/internal/errors/repository"
	"github.com/nastyazhadan/order-intake/internal/repository"
)

var _ repository.OrderRepository = (*OrderStore)(nil)

// OrderStore keeps orders in a single map behind a single lock. Values are
// cloned on the way in and out, so callers never hold store-owned memory.
type OrderStore struct {
	orders map[uuid.UUID]models.Order
	mu     sync.RWMutex
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[uuid.UUID]models.Order, 1024),
	}
}

func (s *OrderStore) Put(ctx context.Context, order models.Order) (models.Order, error) {
	const op = "repository.OrderStore.Put"

	if err := ctx.Err(); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	stored := order.Clone()

	s.mu.Lock()
	s.orders[stored.ID] = stored
	s.mu.Unlock()

	return stored.Clone(), nil
}

func (s *OrderStore) Remove(ctx context.Context, id uuid.UUID) error {
	const op = "repository.OrderStore.Remove"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	delete(s.orders, id)
	s.mu.Unlock()

	return nil
}

func (s *OrderStore) Get(ctx context.Context, id uuid.UUID) (models.Order, error) {
	const op = "repository.OrderStore.Get"

	if err := ctx.Err(); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	result, found := s.orders[id]
	s.mu.RUnlock()

	if !found {
		return models.Order{}, fmt.Errorf("%s: %w", op, repositoryErrors.ErrOrderNotFound)
	}

	return result.Clone(), nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	const op = "repository.OrderStore.ListByUser"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0)
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, order.Clone())
		}
	}

	return out, nil
}

// Update applies mutate to a copy of the stored order and saves the copy only
// when mutate succeeds. The lock is held for the whole read-modify-write.
func (s *OrderStore) Update(
	ctx context.Context,
	id uuid.UUID,
	mutate func(*models.Order) error,
) (models.Order, error) {
	const op = "repository.OrderStore.Update"

	if err := ctx.Err(); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, found := s.orders[id]
	if !found {
		return models.Order{}, fmt.Errorf("%s: %w", op, repositoryErrors.ErrOrderNotFound)
	}

	updated := current.Clone()
	if err := mutate(&updated); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt

	s.orders[id] = updated

	return updated.Clone(), nil
}

func (s *OrderStore) All(ctx context.Context) ([]models.Order, error) {
	const op = "repository.OrderStore.All"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order.Clone())
	}

	return out, nil
}

func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.orders)
}
