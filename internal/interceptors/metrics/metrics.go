package metrics

import (
	"context"
	"path"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	intakev1 "github.com/nastyazhadan/order-intake/internal/api/intake/v1"
	"github.com/nastyazhadan/order-intake/internal/infrastructure/metrics"
)

func Interceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		request any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		method := path.Base(info.FullMethod)
		startTime := time.Now()

		response, err := handler(ctx, request)

		m.RequestDuration.WithLabelValues(method).Observe(time.Since(startTime).Seconds())
		m.RequestsTotal.WithLabelValues(method, status.Code(err).String()).Inc()

		if err == nil {
			switch info.FullMethod {
			case intakev1.OrderIntakeService_PlaceOrder_FullMethodName:
				m.OrdersPlaced.Inc()
			case intakev1.OrderIntakeService_CancelOrder_FullMethodName:
				m.OrdersCancelled.Inc()
			}
		}

		return response, err
	}
}
