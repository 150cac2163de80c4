package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dtroode/account-server/internal/api/grpc/health"
	grpcrouter "github.com/dtroode/account-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/account-server/internal/api/grpc/server"
	httpcontext "github.com/dtroode/account-server/internal/api/http/context"
	httprouter "github.com/dtroode/account-server/internal/api/http/router"
	httpserver "github.com/dtroode/account-server/internal/api/http/server"
	"github.com/dtroode/account-server/internal/app"
	"github.com/dtroode/account-server/internal/config"
	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
	"github.com/dtroode/account-server/internal/server"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	core, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize services", "error", err)
	}
	defer core.Close()

	if cfg.Testing.Enabled {
		logger.Warn("Testing mode enabled, /testing/reset wipes all accounts")
	}

	checker := health.NewChecker(core.DB, cfg.GRPC.HealthInterval/2, logger)
	go checker.Run(ctx, cfg.GRPC.HealthInterval)

	httpRouter := httprouter.New(core.Accounts, core.Sessions, httpcontext.NewManager(), cfg.Testing.Enabled, logger)
	servers := []model.Server{
		httpserver.NewHTTPServer(httpRouter.Register(), cfg.HTTP.Address),
		grpcserver.NewGRPCServer(grpcrouter.New(checker, logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}
	layers := []model.SecurityLayer{
		server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName),
		server.NewPlainListener(),
	}

	var wg sync.WaitGroup
	for i, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s, layers[i])
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
