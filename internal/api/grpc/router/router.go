package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/account-server/internal/api/grpc/health"
	"github.com/dtroode/account-server/internal/api/grpc/middleware"
	"github.com/dtroode/account-server/internal/logger"
)

// Router builds the operations gRPC server: health checks and reflection.
type Router struct {
	checker *health.Checker
	logger  *logger.Logger
}

func New(checker *health.Checker, logger *logger.Logger) *Router {
	return &Router{checker: checker, logger: logger}
}

// Register creates the server with logging and panic recovery interceptors.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoveryOpts := middleware.RecoveryOptions(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.Unary,
			recovery.UnaryServerInterceptor(recoveryOpts...),
		),
		grpc.ChainStreamInterceptor(
			logging.Stream,
			recovery.StreamServerInterceptor(recoveryOpts...),
		),
	)

	healthpb.RegisterHealthServer(s, r.checker.Server())
	reflection.Register(s)

	return s
}
