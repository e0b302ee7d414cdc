package intakev1

import "time"

type PlaceOrderRequest struct {
	UserID   string    `json:"user_id"`
	Pair     string    `json:"pair"`
	Price    string    `json:"price"`
	Quantity string    `json:"quantity"`
	Type     OrderType `json:"type"`
}

func (x *PlaceOrderRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *PlaceOrderRequest) GetPair() string {
	if x != nil {
		return x.Pair
	}
	return ""
}

func (x *PlaceOrderRequest) GetPrice() string {
	if x != nil {
		return x.Price
	}
	return ""
}

func (x *PlaceOrderRequest) GetQuantity() string {
	if x != nil {
		return x.Quantity
	}
	return ""
}

func (x *PlaceOrderRequest) GetType() OrderType {
	if x != nil {
		return x.Type
	}
	return OrderType_TYPE_UNSPECIFIED
}

type PlaceOrderResponse struct {
	ID     string      `json:"id"`
	Status OrderStatus `json:"status"`
}

func (x *PlaceOrderResponse) GetID() string {
	if x != nil {
		return x.ID
	}
	return ""
}

func (x *PlaceOrderResponse) GetStatus() OrderStatus {
	if x != nil {
		return x.Status
	}
	return OrderStatus_STATUS_UNSPECIFIED
}

type CancelOrderRequest struct {
	ID string `json:"id"`
}

func (x *CancelOrderRequest) GetID() string {
	if x != nil {
		return x.ID
	}
	return ""
}

type CancelOrderResponse struct {
	Status OrderStatus `json:"status"`
}

func (x *CancelOrderResponse) GetStatus() OrderStatus {
	if x != nil {
		return x.Status
	}
	return OrderStatus_STATUS_UNSPECIFIED
}

type GetOrderStatusRequest struct {
	ID string `json:"id"`
}

func (x *GetOrderStatusRequest) GetID() string {
	if x != nil {
		return x.ID
	}
	return ""
}

type GetOrderStatusResponse struct {
	Order *Order `json:"order"`
}

func (x *GetOrderStatusResponse) GetOrder() *Order {
	if x != nil {
		return x.Order
	}
	return nil
}

type ListOrdersRequest struct {
	UserID string `json:"user_id"`
}

func (x *ListOrdersRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

func (x *ListOrdersResponse) GetOrders() []*Order {
	if x != nil {
		return x.Orders
	}
	return nil
}

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Pair        string      `json:"pair"`
	Price       string      `json:"price"`
	Quantity    string      `json:"quantity"`
	Type        OrderType   `json:"type"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
	CancelledAt *time.Time  `json:"cancelled_at,omitempty"`
}

func (x *Order) GetID() string {
	if x != nil {
		return x.ID
	}
	return ""
}

func (x *Order) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *Order) GetStatus() OrderStatus {
	if x != nil {
		return x.Status
	}
	return OrderStatus_STATUS_UNSPECIFIED
}
