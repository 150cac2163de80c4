package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

const (
	outboxPrefix     = "confirmations/"
	outboxMaxRetries = 3
	outboxRetryBase  = 100 * time.Millisecond
)

var (
	_ model.ConfirmationNotifier = (*ConfirmationOutbox)(nil)
	_ model.ConfirmationNotifier = (*LogNotifier)(nil)
)

// ConfirmationOutbox stores confirmation messages in object storage
// for a mailer to pick up.
type ConfirmationOutbox struct {
	storage   model.Storage
	logger    *logger.Logger
	retryBase time.Duration
}

func NewConfirmationOutbox(storage model.Storage, logger *logger.Logger) *ConfirmationOutbox {
	return &ConfirmationOutbox{
		storage:   storage,
		logger:    logger,
		retryBase: outboxRetryBase,
	}
}

func (o *ConfirmationOutbox) Notify(ctx context.Context, msg model.ConfirmationMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation message: %w", err)
	}

	key := outboxKey(msg.PublicID)
	err = o.withRetry(ctx, "upload", key, func(ctx context.Context) error {
		return o.storage.Upload(ctx, key, bytes.NewReader(data))
	})
	if err != nil {
		return fmt.Errorf("failed to upload confirmation message: %w", err)
	}

	o.logger.Debug("Confirmation outbox: message stored",
		"key", key)

	return nil
}

func (o *ConfirmationOutbox) Discard(ctx context.Context, publicID uuid.UUID) error {
	key := outboxKey(publicID)
	err := o.withRetry(ctx, "delete", key, func(ctx context.Context) error {
		return o.storage.Delete(ctx, key)
	})
	if err != nil {
		return fmt.Errorf("failed to delete confirmation message: %w", err)
	}
	return nil
}

func (o *ConfirmationOutbox) withRetry(ctx context.Context, op, key string, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(outboxMaxRetries, retry.NewExponential(o.retryBase))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := fn(ctx); err != nil {
			o.logger.Warn("Confirmation outbox: storage call failed",
				"op", op,
				"key", key,
				"attempt", attempt,
				"error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
}

func outboxKey(publicID uuid.UUID) string {
	return outboxPrefix + publicID.String() + ".json"
}

// LogNotifier writes confirmation messages to the log. Used when no object storage is configured.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, msg model.ConfirmationMessage) error {
	n.logger.Info("Confirmation outbox: confirmation requested",
		"public_id", msg.PublicID,
		"expires_at", msg.ExpiresAt.Format(time.RFC3339))
	n.logger.Debug("Confirmation outbox: confirmation token",
		"public_id", msg.PublicID,
		"token", msg.Token)
	return nil
}

func (n *LogNotifier) Discard(_ context.Context, _ uuid.UUID) error {
	return nil
}
