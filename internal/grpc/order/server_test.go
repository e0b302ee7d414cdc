package order

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	intakev1 "github.com/nastyazhadan/order-intake/internal/api/intake/v1"
	"github.com/nastyazhadan/order-intake/internal/domain/models"
	serviceErrors "github.com/nastyazhadan/order-intake/internal/errors/service"
	"github.com/nastyazhadan/order-intake/internal/grpc/mocks"
	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
)

func init() {
	zapLogger.SetNopLogger()
}

func TestPlaceOrder(t *testing.T) {
	gofakeit.Seed(0)

	userID := gofakeit.Username()
	placed := models.NewOrder(uuid.New(), userID, "BTC-USD", models.TypeMarket,
		decimal.RequireFromString("100.50"), decimal.NewFromInt(10), time.Now())

	validRequest := func() *intakev1.PlaceOrderRequest {
		return &intakev1.PlaceOrderRequest{
			UserID:   userID,
			Pair:     "BTC-USD",
			Price:    "100.50",
			Quantity: "10",
			Type:     intakev1.OrderType_TYPE_MARKET,
		}
	}

	tests := []struct {
		name         string
		request      func() *intakev1.PlaceOrderRequest
		setupMocks   func(*mocks.MockOrder)
		expectedCode codes.Code
		expectedMsg  string
	}{
		{
			name:    "успешное размещение ордера",
			request: validRequest,
			setupMocks: func(service *mocks.MockOrder) {
				service.On("PlaceOrder",
					mock.Anything,
					userID,
					"BTC-USD",
					models.TypeMarket,
					mock.MatchedBy(func(price decimal.Decimal) bool {
						return price.Equal(decimal.RequireFromString("100.5"))
					}),
					mock.MatchedBy(func(quantity decimal.Decimal) bool {
						return quantity.Equal(decimal.NewFromInt(10))
					}),
				).Return(placed, nil)
			},
			expectedCode: codes.OK,
		},
		{
			name: "ошибка - пустой user_id",
			request: func() *intakev1.PlaceOrderRequest {
				request := validRequest()
				request.UserID = ""
				return request
			},
			expectedCode: codes.InvalidArgument,
		},
		{
			name: "ошибка - пустая пара",
			request: func() *intakev1.PlaceOrderRequest {
				request := validRequest()
				request.Pair = ""
				return request
			},
			expectedCode: codes.InvalidArgument,
		},
		{
			name: "ошибка - тип не указан",
			request: func() *intakev1.PlaceOrderRequest {
				request := validRequest()
				request.Type = intakev1.OrderType_TYPE_UNSPECIFIED
				return request
			},
			expectedCode: codes.InvalidArgument,
		},
		{
			name: "ошибка - неизвестный тип",
			request: func() *intakev1.PlaceOrderRequest {
				request := validRequest()
				request.Type = intakev1.OrderType_TYPE_INVALID
				return request
			},
			expectedCode: codes.InvalidArgument,
		},
		{
			name: "ошибка - цена не число",
			request: func() *intakev1.PlaceOrderRequest {
				request := validRequest()
				request.Price = "abc"
				return request
			},
			expectedCode: codes.InvalidArgument,
		},
		{
			name: "ошибка - цена с огромной экспонентой",
			request: func() *intakev1.PlaceOrderRequest {
				request := validRequest()
				request.Price = "1e20000000"
				return request
			},
			expectedCode: codes.InvalidArgument,
		},
		{
			name: "ошибка - количество с лишними знаками после запятой",
			request: func() *intakev1.PlaceOrderRequest {
				request := validRequest()
				request.Quantity = "1e-30"
				return request
			},
			expectedCode: codes.InvalidArgument,
		},
		{
			name: "ошибка - нулевое количество",
			request: func() *intakev1.PlaceOrderRequest {
				request := validRequest()
				request.Quantity = "0"
				return request
			},
			expectedCode: codes.InvalidArgument,
		},
		{
			name:    "ошибка - превышен лимит",
			request: validRequest,
			setupMocks: func(service *mocks.MockOrder) {
				service.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(models.Order{}, serviceErrors.ErrRateLimitExceeded)
			},
			expectedCode: codes.ResourceExhausted,
		},
		{
			name:    "ошибка бэкенда",
			request: validRequest,
			setupMocks: func(service *mocks.MockOrder) {
				service.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(models.Order{}, fmt.Errorf("%w: %w", serviceErrors.ErrBackendFailure, errors.New("disk full")))
			},
			expectedCode: codes.Internal,
			expectedMsg:  serviceErrors.ErrBackendFailure.Error(),
		},
		{
			name:    "ошибка - неизвестная причина",
			request: validRequest,
			setupMocks: func(service *mocks.MockOrder) {
				service.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(models.Order{}, errors.New("boom"))
			},
			expectedCode: codes.Internal,
			expectedMsg:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := mocks.NewMockOrder(t)
			if tt.setupMocks != nil {
				tt.setupMocks(service)
			}
			server := &serverAPI{service: service}

			response, err := server.PlaceOrder(context.Background(), tt.request())

			if tt.expectedCode != codes.OK {
				require.Error(t, err)
				st, ok := status.FromError(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedCode, st.Code())
				if tt.expectedMsg != "" {
					assert.Equal(t, tt.expectedMsg, st.Message())
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, placed.ID.String(), response.GetID())
			assert.Equal(t, intakev1.OrderStatus_STATUS_CREATED, response.GetStatus())
		})
	}
}

func TestCancelOrder(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name         string
		id           string
		setupMocks   func(*mocks.MockOrder)
		expectedCode codes.Code
		expectedMsg  string
	}{
		{
			name: "успешная отмена",
			id:   orderID.String(),
			setupMocks: func(service *mocks.MockOrder) {
				service.On("CancelOrder", mock.Anything, orderID).Return(models.StatusCancelled, nil)
			},
			expectedCode: codes.OK,
		},
		{
			name:         "ошибка - пустой id",
			id:           "",
			expectedCode: codes.InvalidArgument,
		},
		{
			name:         "ошибка - id не UUID",
			id:           "not-a-uuid",
			expectedCode: codes.InvalidArgument,
		},
		{
			name: "ошибка - ордер не найден",
			id:   orderID.String(),
			setupMocks: func(service *mocks.MockOrder) {
				service.On("CancelOrder", mock.Anything, orderID).
					Return(models.StatusUnspecified, serviceErrors.ErrOrderNotFound)
			},
			expectedCode: codes.Internal,
			expectedMsg:  "order not found",
		},
		{
			name: "ошибка - ордер уже отменён",
			id:   orderID.String(),
			setupMocks: func(service *mocks.MockOrder) {
				service.On("CancelOrder", mock.Anything, orderID).
					Return(models.StatusUnspecified, serviceErrors.ErrOrderNotCancellable)
			},
			expectedCode: codes.Internal,
			expectedMsg:  "order cannot be cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := mocks.NewMockOrder(t)
			if tt.setupMocks != nil {
				tt.setupMocks(service)
			}
			server := &serverAPI{service: service}

			response, err := server.CancelOrder(context.Background(), &intakev1.CancelOrderRequest{ID: tt.id})

			if tt.expectedCode != codes.OK {
				st, _ := status.FromError(err)
				assert.Equal(t, tt.expectedCode, st.Code())
				if tt.expectedMsg != "" {
					assert.Equal(t, tt.expectedMsg, st.Message())
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, intakev1.OrderStatus_STATUS_CANCELLED, response.GetStatus())
		})
	}
}

func TestGetOrderStatus(t *testing.T) {
	order := models.NewOrder(uuid.New(), "u1", "ETH-USD", models.TypeLimit,
		decimal.NewFromInt(3000), decimal.RequireFromString("0.5"), time.Now())
	order.Status = models.Status(5)

	service := mocks.NewMockOrder(t)
	service.On("GetOrderStatus", mock.Anything, order.ID).Return(order, nil)
	server := &serverAPI{service: service}

	response, err := server.GetOrderStatus(context.Background(), &intakev1.GetOrderStatusRequest{ID: order.ID.String()})

	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), response.GetOrder().GetID())
	assert.Equal(t, "STATUS_5", response.GetOrder().GetStatus().String())
}

func TestGetOrderStatusUnimplemented(t *testing.T) {
	service := mocks.NewMockOrder(t)
	service.On("GetOrderStatus", mock.Anything, mock.Anything).Return(models.Order{}, serviceErrors.ErrUnimplemented)
	server := &serverAPI{service: service}

	_, err := server.GetOrderStatus(context.Background(), &intakev1.GetOrderStatusRequest{ID: uuid.NewString()})

	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestListOrders(t *testing.T) {
	orders := []models.Order{
		models.NewOrder(uuid.New(), "u1", "BTC-USD", models.TypeLimit, decimal.NewFromInt(1), decimal.NewFromInt(1), time.Now()),
		models.NewOrder(uuid.New(), "u1", "ETH-USD", models.TypeStopLoss, decimal.NewFromInt(2), decimal.NewFromInt(2), time.Now()),
	}

	service := mocks.NewMockOrder(t)
	service.On("ListOrders", mock.Anything, "u1").Return(orders, nil)
	server := &serverAPI{service: service}

	response, err := server.ListOrders(context.Background(), &intakev1.ListOrdersRequest{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, response.GetOrders(), 2)
	assert.Equal(t, intakev1.OrderType_TYPE_STOP_LOSS, response.GetOrders()[1].Type)

	_, err = server.ListOrders(context.Background(), &intakev1.ListOrdersRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
