package recovery

import (
	"context"
	"fmt"

	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
)

func Interceptor() grpc.UnaryServerInterceptor {
	return grpcRecovery.UnaryServerInterceptor(
		grpcRecovery.WithRecoveryHandlerContext(handlePanic),
	)
}

func handlePanic(ctx context.Context, p any) error {
	zapLogger.Error(ctx, "panic recovered in gRPC handler",
		zap.String("panic", fmt.Sprintf("%v", p)),
	)

	return status.Errorf(codes.Internal, "internal error")
}
