package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConfirmationNotifier delivers confirmation tokens to account owners.
type ConfirmationNotifier interface {
	Notify(ctx context.Context, msg ConfirmationMessage) error
	// Discard drops an undelivered message once the confirmation completed.
	Discard(ctx context.Context, publicID uuid.UUID) error
}

// ConfirmationMessage carries everything needed to send a confirmation email.
type ConfirmationMessage struct {
	PublicID    uuid.UUID `json:"publicId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Token       string    `json:"token"`
	RequestedAt time.Time `json:"requestedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
