package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nastyazhadan/order-intake/internal/domain/models"
)

type Order struct {
	ID          uuid.UUID  `db:"id"`
	UserID      string     `db:"user_id"`
	Pair        string     `db:"pair"`
	Type        int16      `db:"type"`
	Price       string     `db:"price"`
	Quantity    string     `db:"quantity"`
	Status      int16      `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
	CancelledAt *time.Time `db:"cancelled_at"`
}

func (o Order) ToDomain() (models.Order, error) {
	price, err := decimal.NewFromString(o.Price)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %s: price %q: %w", o.ID, o.Price, err)
	}

	quantity, err := decimal.NewFromString(o.Quantity)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %s: quantity %q: %w", o.ID, o.Quantity, err)
	}

	return models.Order{
		ID:          o.ID,
		UserID:      o.UserID,
		Pair:        o.Pair,
		Type:        models.Type(o.Type),
		Price:       price,
		Quantity:    quantity,
		Status:      models.Status(o.Status),
		CreatedAt:   o.CreatedAt.UTC(),
		UpdatedAt:   utc(o.UpdatedAt),
		CancelledAt: utc(o.CancelledAt),
	}, nil
}

func FromDomain(order models.Order) Order {
	return Order{
		ID:          order.ID,
		UserID:      order.UserID,
		Pair:        order.Pair,
		Type:        int16(order.Type),
		Price:       order.Price.String(),
		Quantity:    order.Quantity.String(),
		Status:      int16(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		CancelledAt: order.CancelledAt,
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	value := t.UTC()
	return &value
}
