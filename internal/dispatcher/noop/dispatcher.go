package noop

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nastyazhadan/order-intake/internal/domain/models"
)

// Dispatcher accepts every event and forwards it nowhere.
type Dispatcher struct{}

func New() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Publish(_ context.Context, order models.Order) (models.Order, error) {
	return order, nil
}

func (d *Dispatcher) PublishCancel(_ context.Context, id uuid.UUID, _ time.Time) (uuid.UUID, error) {
	return id, nil
}
