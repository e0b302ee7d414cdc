package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/nastyazhadan/order-intake/internal/domain/models"
)

// OrderRepository is implemented by every order store driver.
type OrderRepository interface {
	Put(ctx context.Context, order models.Order) (models.Order, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.Order) error) (models.Order, error)
}
