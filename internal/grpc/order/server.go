package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	intakev1 "github.com/nastyazhadan/order-intake/internal/api/intake/v1"
	"github.com/nastyazhadan/order-intake/internal/domain/models"
	serviceErrors "github.com/nastyazhadan/order-intake/internal/errors/service"
	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
	"github.com/nastyazhadan/order-intake/internal/mapper"
)

type Order interface {
	PlaceOrder(ctx context.Context,
		userID string,
		pair string,
		orderType models.Type,
		price decimal.Decimal,
		quantity decimal.Decimal,
	) (models.Order, error)

	CancelOrder(ctx context.Context, orderID uuid.UUID) (models.Status, error)
	GetOrderStatus(ctx context.Context, orderID uuid.UUID) (models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}

type serverAPI struct {
	intakev1.UnimplementedOrderIntakeServiceServer
	service Order
}

func Register(grpc grpc.ServiceRegistrar, service Order) {
	intakev1.RegisterOrderIntakeServiceServer(grpc, &serverAPI{
		service: service,
	})
}

func (s *serverAPI) PlaceOrder(
	ctx context.Context,
	request *intakev1.PlaceOrderRequest,
) (*intakev1.PlaceOrderResponse, error) {
	if err := validatePlaceRequest(request); err != nil {
		return nil, err
	}

	price, err := mapper.DecimalFromWire("price", request.GetPrice())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	quantity, err := mapper.DecimalFromWire("quantity", request.GetQuantity())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ctx = zapLogger.ContextWithUserID(ctx, request.GetUserID())

	order, err := s.service.PlaceOrder(ctx,
		request.GetUserID(),
		request.GetPair(),
		mapper.TypeFromWire(request.GetType()),
		price,
		quantity,
	)
	if err != nil {
		logServiceError(ctx, "failed to place order", err)

		return nil, validateServiceError(err)
	}

	return &intakev1.PlaceOrderResponse{
		ID:     order.ID.String(),
		Status: mapper.StatusToWire(order.Status),
	}, nil
}

func (s *serverAPI) CancelOrder(
	ctx context.Context,
	request *intakev1.CancelOrderRequest,
) (*intakev1.CancelOrderResponse, error) {
	orderID, err := parseOrderID(request.GetID())
	if err != nil {
		return nil, err
	}

	orderStatus, err := s.service.CancelOrder(ctx, orderID)
	if err != nil {
		logServiceError(ctx, "failed to cancel order", err, zap.String("order_id", orderID.String()))

		return nil, validateServiceError(err)
	}

	return &intakev1.CancelOrderResponse{
		Status: mapper.StatusToWire(orderStatus),
	}, nil
}

func (s *serverAPI) GetOrderStatus(
	ctx context.Context,
	request *intakev1.GetOrderStatusRequest,
) (*intakev1.GetOrderStatusResponse, error) {
	orderID, err := parseOrderID(request.GetID())
	if err != nil {
		return nil, err
	}

	order, err := s.service.GetOrderStatus(ctx, orderID)
	if err != nil {
		logServiceError(ctx, "failed to get order status", err, zap.String("order_id", orderID.String()))

		return nil, validateServiceError(err)
	}

	return &intakev1.GetOrderStatusResponse{
		Order: mapper.OrderToWire(order),
	}, nil
}

func (s *serverAPI) ListOrders(
	ctx context.Context,
	request *intakev1.ListOrdersRequest,
) (*intakev1.ListOrdersResponse, error) {
	if request.GetUserID() == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}

	ctx = zapLogger.ContextWithUserID(ctx, request.GetUserID())

	orders, err := s.service.ListOrders(ctx, request.GetUserID())
	if err != nil {
		logServiceError(ctx, "failed to list orders", err)

		return nil, validateServiceError(err)
	}

	return &intakev1.ListOrdersResponse{
		Orders: mapper.OrdersToWire(orders),
	}, nil
}

func validatePlaceRequest(request *intakev1.PlaceOrderRequest) error {
	if request.GetUserID() == "" || request.GetPair() == "" {
		return status.Error(codes.InvalidArgument, "user_id and pair are required")
	}

	if mapper.TypeFromWire(request.GetType()) == models.TypeUnspecified {
		return status.Error(codes.InvalidArgument, "type must be one of TYPE_LIMIT, TYPE_MARKET, TYPE_STOP_LOSS, TYPE_TAKE_PROFIT")
	}

	if request.GetPrice() == "" || request.GetQuantity() == "" {
		return status.Error(codes.InvalidArgument, "price and quantity are required")
	}

	return nil
}

// Domain failures share one wire code; the message tells them apart.
func validateServiceError(err error) error {
	switch {
	case errors.Is(err, serviceErrors.ErrUnimplemented):
		return status.Error(codes.Unimplemented, serviceErrors.ErrUnimplemented.Error())

	case errors.Is(err, serviceErrors.ErrRateLimitExceeded):
		return status.Error(codes.ResourceExhausted, serviceErrors.ErrRateLimitExceeded.Error())

	case errors.Is(err, serviceErrors.ErrOrderNotFound):
		return status.Error(codes.Internal, serviceErrors.ErrOrderNotFound.Error())

	case errors.Is(err, serviceErrors.ErrOrderNotCancellable):
		return status.Error(codes.Internal, serviceErrors.ErrOrderNotCancellable.Error())

	case errors.Is(err, serviceErrors.ErrBackendFailure):
		return status.Error(codes.Internal, serviceErrors.ErrBackendFailure.Error())

	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func logServiceError(ctx context.Context, message string, err error, fields ...zap.Field) {
	if errors.Is(err, serviceErrors.ErrOrderNotFound) ||
		errors.Is(err, serviceErrors.ErrOrderNotCancellable) ||
		errors.Is(err, serviceErrors.ErrRateLimitExceeded) ||
		errors.Is(err, serviceErrors.ErrUnimplemented) {
		return
	}

	zapLogger.Error(ctx, message, append(fields, zap.Error(err))...)
}

func parseOrderID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, status.Error(codes.InvalidArgument, "id is required")
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, status.Error(codes.InvalidArgument, fmt.Sprintf("%q must be a valid UUID", value))
	}

	return id, nil
}
