//go:build integration

package intake

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	intakev1 "github.com/nastyazhadan/order-intake/internal/api/intake/v1"
	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
	"github.com/nastyazhadan/order-intake/internal/interceptors/xrequestid"
	"github.com/nastyazhadan/order-intake/internal/testing/pgcontainer"
)

func TestPostgresBackedIntake(test *testing.T) {
	zapLogger.SetNopLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	test.Cleanup(cancel)

	cfg := testConfig(test, map[string]string{
		"STORE_DRIVER": "postgres",
		"ORDER_DB_URI": pgcontainer.Start(ctx, test),
	})

	var listener net.Listener
	app := fxtest.New(test, fx.NopLogger, Module(ctx, cfg), fx.Populate(&listener))
	app.RequireStart()
	test.Cleanup(app.RequireStop)

	connection, err := grpc.NewClient(listener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(xrequestid.Client),
	)
	require.NoError(test, err)
	test.Cleanup(func() { _ = connection.Close() })
	client := intakev1.NewOrderIntakeServiceClient(connection)

	placed, err := client.PlaceOrder(ctx, &intakev1.PlaceOrderRequest{
		UserID:   "trader-1",
		Pair:     "SOL-USDT",
		Price:    "142.375",
		Quantity: "12",
		Type:     intakev1.OrderType_TYPE_TAKE_PROFIT,
	})
	require.NoError(test, err)

	got, err := client.GetOrderStatus(ctx, &intakev1.GetOrderStatusRequest{ID: placed.GetID()})
	require.NoError(test, err)
	assert.Equal(test, "142.375", got.GetOrder().Price)
	assert.Equal(test, intakev1.OrderType_TYPE_TAKE_PROFIT, got.GetOrder().Type)

	cancelled, err := client.CancelOrder(ctx, &intakev1.CancelOrderRequest{ID: placed.GetID()})
	require.NoError(test, err)
	assert.Equal(test, intakev1.OrderStatus_STATUS_CANCELLED, cancelled.GetStatus())

	listed, err := client.ListOrders(ctx, &intakev1.ListOrdersRequest{UserID: "trader-1"})
	require.NoError(test, err)
	require.Len(test, listed.GetOrders(), 1)
	assert.Equal(test, intakev1.OrderStatus_STATUS_CANCELLED, listed.GetOrders()[0].GetStatus())
}
