package logger

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
)

func Interceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		request any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		method := path.Base(info.FullMethod)

		zapLogger.Debug(ctx, "started gRPC method", zap.String("method", method))
		startTime := time.Now()

		response, err := handler(ctx, request)

		duration := time.Since(startTime)

		if err != nil {
			responseStatus, _ := status.FromError(err)
			zapLogger.Warn(ctx, "finished gRPC method with error",
				zap.String("method", method),
				zap.String("code", responseStatus.Code().String()),
				zap.String("message", responseStatus.Message()),
				zap.Duration("took", duration),
			)
		} else {
			zapLogger.Info(ctx, "finished gRPC method",
				zap.String("method", method),
				zap.Duration("took", duration),
			)
		}

		return response, err
	}
}
