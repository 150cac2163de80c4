// Package app assembles the account services from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/dtroode/account-server/internal/config"
	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
	"github.com/dtroode/account-server/internal/password"
	"github.com/dtroode/account-server/internal/phone"
	"github.com/dtroode/account-server/internal/repository/postgres"
	"github.com/dtroode/account-server/internal/service"
	storage "github.com/dtroode/account-server/internal/storage/minio"
	"github.com/dtroode/account-server/internal/token"
)

// Core holds the database connection and the services built on top of it.
type Core struct {
	DB       *postgres.Connection
	Accounts *service.Account
	Sessions *service.Session
}

// Build connects to the database, runs migrations and wires the services.
func Build(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*Core, error) {
	hasher, err := password.NewBcrypt(cfg.Password.Cost, cfg.Password.MaxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	notifier, err := newNotifier(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewConection(ctx, cfg.Database.DSN, postgres.PoolOptions{
		MaxConns:       cfg.Database.MaxConns,
		ConnectRetries: cfg.Database.ConnectRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := postgres.NewAccountRepository(db)
	accounts := service.NewAccount(
		repo,
		hasher,
		phone.NewNormalizer(cfg.Phone.DefaultRegion),
		notifier,
		logger,
	)
	sessions := service.NewSession(accounts, repo, token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL), logger)

	return &Core{DB: db, Accounts: accounts, Sessions: sessions}, nil
}

// Close releases the database pool.
func (c *Core) Close() error {
	return c.DB.Close()
}

func newNotifier(ctx context.Context, cfg config.Storage, logger *logger.Logger) (model.ConfirmationNotifier, error) {
	if !cfg.Enabled {
		logger.Info("App: object storage disabled, confirmation messages are logged only")
		return service.NewLogNotifier(logger), nil
	}

	store, err := storage.Connect(ctx, storage.Options{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	return service.NewConfirmationOutbox(store, logger), nil
}
