package recovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	zapLogger "github.com/nastyazhadan/order-intake/internal/interceptors/logger/zap"
)

func TestInterceptorTurnsPanicIntoInternal(t *testing.T) {
	zapLogger.SetNopLogger()

	_, err := Interceptor()(context.Background(), nil, &grpc.UnaryServerInfo{},
		func(context.Context, any) (any, error) {
			panic("nil map write")
		},
	)

	st, _ := status.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "internal error", st.Message())
}
