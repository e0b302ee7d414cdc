package intakev1

import (
	"fmt"
	"strconv"
	"strings"
)

type OrderType int32

const (
	OrderType_TYPE_UNSPECIFIED OrderType = 0
	OrderType_TYPE_LIMIT       OrderType = 1
	OrderType_TYPE_MARKET      OrderType = 2
	OrderType_TYPE_STOP_LOSS   OrderType = 3
	OrderType_TYPE_TAKE_PROFIT OrderType = 4

	// OrderType_TYPE_INVALID is what an unrecognised name decodes to.
	OrderType_TYPE_INVALID OrderType = -1
)

var orderTypeNames = map[OrderType]string{
	OrderType_TYPE_UNSPECIFIED: "TYPE_UNSPECIFIED",
	OrderType_TYPE_LIMIT:       "TYPE_LIMIT",
	OrderType_TYPE_MARKET:      "TYPE_MARKET",
	OrderType_TYPE_STOP_LOSS:   "TYPE_STOP_LOSS",
	OrderType_TYPE_TAKE_PROFIT: "TYPE_TAKE_PROFIT",
}

func (t OrderType) String() string {
	if name, found := orderTypeNames[t]; found {
		return name
	}
	return fmt.Sprintf("TYPE_%d", int32(t))
}

func (t OrderType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *OrderType) UnmarshalText(text []byte) error {
	name := strings.ToUpper(strings.TrimSpace(string(text)))
	for value, known := range orderTypeNames {
		if known == name {
			*t = value
			return nil
		}
	}

	*t = OrderType_TYPE_INVALID
	return nil
}

// OrderStatus is open: numbers without a name travel as STATUS_<n>.
type OrderStatus int32

const (
	OrderStatus_STATUS_UNSPECIFIED OrderStatus = 0
	OrderStatus_STATUS_CREATED     OrderStatus = 1
	OrderStatus_STATUS_CANCELLED   OrderStatus = 2
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatus_STATUS_UNSPECIFIED: "STATUS_UNSPECIFIED",
	OrderStatus_STATUS_CREATED:     "STATUS_CREATED",
	OrderStatus_STATUS_CANCELLED:   "STATUS_CANCELLED",
}

const statusPrefix = "STATUS_"

func (s OrderStatus) String() string {
	if name, found := orderStatusNames[s]; found {
		return name
	}
	return statusPrefix + strconv.Itoa(int(s))
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *OrderStatus) UnmarshalText(text []byte) error {
	name := strings.ToUpper(strings.TrimSpace(string(text)))
	for value, known := range orderStatusNames {
		if known == name {
			*s = value
			return nil
		}
	}

	number, err := strconv.Atoi(strings.TrimPrefix(name, statusPrefix))
	if err != nil {
		return fmt.Errorf("unknown order status %q", string(text))
	}

	*s = OrderStatus(number)
	return nil
}
