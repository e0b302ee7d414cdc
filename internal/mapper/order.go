package mapper

import (
	"fmt"

	"github.com/shopspring/decimal"

	intakev1 "github.com/nastyazhadan/order-intake/internal/api/intake/v1"
	"github.com/nastyazhadan/order-intake/internal/domain/models"
)

func TypeFromWire(orderType intakev1.OrderType) models.Type {
	switch orderType {
	case intakev1.OrderType_TYPE_LIMIT:
		return models.TypeLimit
	case intakev1.OrderType_TYPE_MARKET:
		return models.TypeMarket
	case intakev1.OrderType_TYPE_STOP_LOSS:
		return models.TypeStopLoss
	case intakev1.OrderType_TYPE_TAKE_PROFIT:
		return models.TypeTakeProfit
	default:
		return models.TypeUnspecified
	}
}

func TypeToWire(orderType models.Type) intakev1.OrderType {
	switch orderType {
	case models.TypeLimit:
		return intakev1.OrderType_TYPE_LIMIT
	case models.TypeMarket:
		return intakev1.OrderType_TYPE_MARKET
	case models.TypeStopLoss:
		return intakev1.OrderType_TYPE_STOP_LOSS
	case models.TypeTakeProfit:
		return intakev1.OrderType_TYPE_TAKE_PROFIT
	default:
		return intakev1.OrderType_TYPE_UNSPECIFIED
	}
}

// StatusToWire keeps the numeric value, so statuses this service does not
// know about still reach the caller.
func StatusToWire(orderStatus models.Status) intakev1.OrderStatus {
	return intakev1.OrderStatus(orderStatus)
}

// Bounds for wire decimals. A value outside them would expand into a huge
// string every time the order is rendered.
const (
	maxDecimalLength = 64
	maxDecimalDigits = 38
	maxDecimalScale  = 18
)

func DecimalFromWire(field, value string) (decimal.Decimal, error) {
	if len(value) > maxDecimalLength {
		return decimal.Decimal{}, fmt.Errorf("%s must be at most %d characters", field, maxDecimalLength)
	}

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s must be a decimal number", field)
	}
	if !parsed.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%s must be > 0", field)
	}

	exponent := parsed.Exponent()
	if exponent < -maxDecimalScale || exponent > maxDecimalScale ||
		parsed.NumDigits()+max(int(exponent), 0) > maxDecimalDigits {
		return decimal.Decimal{}, fmt.Errorf("%s is out of range: at most %d digits and %d decimal places",
			field, maxDecimalDigits, maxDecimalScale)
	}

	return parsed, nil
}

func OrderToWire(order models.Order) *intakev1.Order {
	return &intakev1.Order{
		ID:          order.ID.String(),
		UserID:      order.UserID,
		Pair:        order.Pair,
		Price:       order.Price.String(),
		Quantity:    order.Quantity.String(),
		Type:        TypeToWire(order.Type),
		Status:      StatusToWire(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		CancelledAt: order.CancelledAt,
	}
}

func OrdersToWire(orders []models.Order) []*intakev1.Order {
	out := make([]*intakev1.Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, OrderToWire(order))
	}

	return out
}
