package health

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"cyberguard-lab/internal/infrastructure/cache"
	"cyberguard-lab/internal/infrastructure/database"
)

// serviceName is the health check identity exposed to load balancers
const serviceName = "cyberguard.v1.IncidentService"

// checkInterval is how often dependency health is re-evaluated
const checkInterval = 10 * time.Second

// Register registers the gRPC health check service and starts a
// background loop that mirrors Mongo and Redis health into the serving
// status. The loop stops when ctx is cancelled.
func Register(ctx context.Context, grpcServer *grpc.Server, db *database.MongoDB, c *cache.RedisCache) {
	healthServer := health.NewServer()

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	go func() {
		ticker := time.NewTicker(checkInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				healthServer.Shutdown()
				return
			case <-ticker.C:
			}

			healthy := true
			if db != nil {
				pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
				if err := db.Ping(pingCtx); err != nil {
					healthy = false
				}
				cancel()
			}
			if healthy && c != nil {
				if _, err := c.Client().Ping(ctx).Result(); err != nil {
					healthy = false
				}
			}

			serving := grpc_health_v1.HealthCheckResponse_SERVING
			if !healthy {
				serving = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			}
			healthServer.SetServingStatus("", serving)
			healthServer.SetServingStatus(serviceName, serving)
		}
	}()

	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
}
