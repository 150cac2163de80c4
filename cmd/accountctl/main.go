// Package main is the administrative CLI for the account service.
package main

import (
	"context"
	"os"

	"github.com/samber/oops"

	"github.com/dtroode/account-server/internal/app"
	"github.com/dtroode/account-server/internal/config"
	"github.com/dtroode/account-server/internal/logger"
)

func main() {
	cmd := NewRootCmd(connect)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect(ctx context.Context) (AccountService, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	core, err := app.Build(ctx, cfg, logger.New(cfg.LogLevel))
	if err != nil {
		return nil, nil, oops.Code("DB_CONNECT_FAILED").With("operation", "build services").Wrap(err)
	}

	return core.Accounts, func() { _ = core.Close() }, nil
}
