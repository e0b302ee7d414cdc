package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/nastyazhadan/order-intake/internal/domain/models"
)

type OrderPlacedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	UserID    string    `json:"user_id"`
	Pair      string    `json:"pair"`
	Type      string    `json:"type"`
	Price     string    `json:"price"`
	Quantity  string    `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderCancelledEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

func OrderPlacedFromDomain(order models.Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Pair:      order.Pair,
		Type:      order.Type.String(),
		Price:     order.Price.String(),
		Quantity:  order.Quantity.String(),
		Status:    order.Status.String(),
		CreatedAt: order.CreatedAt,
	}
}
