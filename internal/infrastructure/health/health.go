package health

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	intakev1 "github.com/nastyazhadan/order-intake/internal/api/intake/v1"
)

// RegisterService reports the whole server and the intake service as serving
// until Shutdown is called on the returned server.
func RegisterService(server grpc.ServiceRegistrar) *health.Server {
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(
		intakev1.OrderIntakeService_ServiceDesc.ServiceName,
		grpc_health_v1.HealthCheckResponse_SERVING,
	)

	grpc_health_v1.RegisterHealthServer(server, healthServer)

	return healthServer
}
