package middleware

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/account-server/internal/logger"
)

// RecoveryOptions turns handler panics into codes.Internal and logs the panic value.
func RecoveryOptions(logger *logger.Logger) []recovery.Option {
	return []recovery.Option{
		recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.ErrorContext(ctx, "gRPC: handler panic", "panic", fmt.Sprint(p))
			return status.Error(codes.Internal, "internal error")
		}),
	}
}
