package health

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/account-server/internal/logger"
)

// ServiceName is the health service name reported for the account API.
const ServiceName = "account.v1.AccountService"

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker mirrors database reachability into a gRPC health server.
type Checker struct {
	server  *health.Server
	db      Pinger
	timeout time.Duration
	logger  *logger.Logger
}

func NewChecker(db Pinger, timeout time.Duration, logger *logger.Logger) *Checker {
	return &Checker{
		server:  health.NewServer(),
		db:      db,
		timeout: timeout,
		logger:  logger,
	}
}

// Server returns the health service to register on a gRPC server.
func (c *Checker) Server() *health.Server {
	return c.server
}

// Check pings the database once and updates the serving status.
func (c *Checker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := c.db.Ping(ctx); err != nil {
		c.logger.Warn("Health: database ping failed", "error", err.Error())
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}

	c.server.SetServingStatus("", st)
	c.server.SetServingStatus(ServiceName, st)
	return st
}

// Run checks every interval until ctx is done, then marks everything NOT_SERVING.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	c.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}
