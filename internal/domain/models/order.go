package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

type Order struct {
	ID          uuid.UUID
	UserID      string
	Pair        string
	Price       decimal.Decimal
	Quantity    decimal.Decimal
	Type        Type
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	CancelledAt *time.Time
}

type Type uint8

const (
	TypeUnspecified Type = iota
	TypeLimit
	TypeMarket
	TypeStopLoss
	TypeTakeProfit
)

func (t Type) String() string {
	switch t {
	case TypeLimit:
		return "LIMIT"
	case TypeMarket:
		return "MARKET"
	case TypeStopLoss:
		return "STOP_LOSS"
	case TypeTakeProfit:
		return "TAKE_PROFIT"
	default:
		return "UNSPECIFIED"
	}
}

// Status is kept open: values a later pipeline stage adds are stored and
// returned as-is even though this service never produces them.
type Status uint8

const (
	StatusUnspecified Status = iota
	StatusCreated
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusUnspecified:
		return "UNSPECIFIED"
	case StatusCreated:
		return "CREATED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return fmt.Sprintf("STATUS_%d", uint8(s))
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusCreated && next == StatusCancelled
}

func NewOrder(
	id uuid.UUID,
	userID string,
	pair string,
	orderType Type,
	price decimal.Decimal,
	quantity decimal.Decimal,
	createdAt time.Time,
) Order {
	return Order{
		ID:        id,
		UserID:    userID,
		Pair:      pair,
		Price:     price,
		Quantity:  quantity,
		Type:      orderType,
		Status:    StatusCreated,
		CreatedAt: createdAt.UTC(),
	}
}

func (o *Order) TransitionTo(next Status, at time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}

	updatedAt := at.UTC()
	o.Status = next
	o.UpdatedAt = &updatedAt

	return nil
}

func (o *Order) Cancel(at time.Time) error {
	if err := o.TransitionTo(StatusCancelled, at); err != nil {
		return err
	}

	cancelledAt := at.UTC()
	o.CancelledAt = &cancelledAt

	return nil
}

// Clone returns a copy that shares no pointers with o.
func (o Order) Clone() Order {
	clone := o

	if o.UpdatedAt != nil {
		updatedAt := *o.UpdatedAt
		clone.UpdatedAt = &updatedAt
	}

	if o.CancelledAt != nil {
		cancelledAt := *o.CancelledAt
		clone.CancelledAt = &cancelledAt
	}

	return clone
}
