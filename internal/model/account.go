package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// EmailConfirmationTimeout is how long a confirmation token stays valid.
	EmailConfirmationTimeout = 3 * 24 * time.Hour
	// MinPasswordLength is the shortest accepted password, in characters.
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest password bcrypt accepts, in bytes.
	MaxPasswordBytes = 72
	// MaxDisplayNameLength is the longest accepted display name.
	MaxDisplayNameLength = 50
	// ConfirmationTokenLength is the length of generated confirmation tokens.
	ConfirmationTokenLength = 16
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByPendingEmail(ctx context.Context, email string) (Account, error)
	GetByDisplayName(ctx context.Context, displayName string) (Account, error)
	GetByPhone(ctx context.Context, phone string) (Account, error)
	GetByConfirmedEmail(ctx context.Context, email string) (Account, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (Account, error)
	// Save inserts the account when ID is zero and updates it otherwise.
	Save(ctx context.Context, account *Account) error
	Clear(ctx context.Context) error
}

// Account represents a registered user.
type Account struct {
	ID                           int64
	PublicID                     uuid.UUID
	DisplayName                  string
	PendingEmail                 string
	ConfirmedEmail               *string
	Phone                        string
	EmailConfirmationToken       *string
	EmailConfirmationRequestedAt time.Time
	EmailConfirmationCompletedAt *time.Time
	SecurityOperationPerformedAt time.Time
	PasswordHash                 *string
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

// CanLogIn reports whether the account has a confirmed email and a password.
func (a Account) CanLogIn() bool {
	return a.EmailConfirmationCompletedAt != nil && a.PasswordHash != nil
}

// IsConfirmed reports whether the email confirmation has completed.
func (a Account) IsConfirmed() bool {
	return a.EmailConfirmationCompletedAt != nil
}

// ResetPassword stores a new password digest and invalidates sessions issued before now.
func (a *Account) ResetPassword(digest string, now time.Time) {
	a.PasswordHash = &digest
	a.SecurityOperationPerformedAt = now
}

// Confirm marks the pending email as confirmed and consumes the token.
func (a *Account) Confirm(now time.Time) {
	email := a.PendingEmail
	a.ConfirmedEmail = &email
	a.EmailConfirmationCompletedAt = &now
	a.EmailConfirmationToken = nil
}

// ConfirmationExpired reports whether the current confirmation request lapsed at now.
func (a Account) ConfirmationExpired(now time.Time) bool {
	return now.After(a.EmailConfirmationRequestedAt.Add(EmailConfirmationTimeout))
}

// Profile returns the public view of the account.
func (a Account) Profile() Profile {
	var email string
	if a.ConfirmedEmail != nil {
		email = *a.ConfirmedEmail
	}

	return Profile{
		PublicID:    a.PublicID,
		DisplayName: a.DisplayName,
		Email:       email,
		Phone:       a.Phone,
	}
}

// Profile is what account owners get back from the API.
type Profile struct {
	PublicID    uuid.UUID `json:"publicId"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
}

// RegisterParams contains registration input.
type RegisterParams struct {
	Email       string
	DisplayName string
	Password    string
	Phone       string
}
