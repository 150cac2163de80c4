package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingAccount() Account {
	token := "abcdefghijklmnop"
	return Account{
		PublicID:                     uuid.New(),
		DisplayName:                  "Alice",
		PendingEmail:                 "a@x.com",
		Phone:                        "+12025551234",
		EmailConfirmationToken:       &token,
		EmailConfirmationRequestedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAccount_CanLogIn(t *testing.T) {
	now := time.Now()
	hash := "$2a$10$hash"

	tests := []struct {
		name      string
		completed *time.Time
		hash      *string
		want      bool
	}{
		{name: "pending without password", want: false},
		{name: "pending with password", hash: &hash, want: false},
		{name: "confirmed without password", completed: &now, want: false},
		{name: "confirmed with password", completed: &now, hash: &hash, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Account{EmailConfirmationCompletedAt: tt.completed, PasswordHash: tt.hash}
			assert.Equal(t, tt.want, a.CanLogIn())
		})
	}
}

func TestAccount_ResetPassword(t *testing.T) {
	a := newPendingAccount()
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	a.ResetPassword("digest", now)

	require.NotNil(t, a.PasswordHash)
	assert.Equal(t, "digest", *a.PasswordHash)
	assert.Equal(t, now, a.SecurityOperationPerformedAt)
}

func TestAccount_Confirm(t *testing.T) {
	a := newPendingAccount()
	a.ResetPassword("digest", a.EmailConfirmationRequestedAt)
	now := a.EmailConfirmationRequestedAt.Add(time.Hour)

	a.Confirm(now)

	require.NotNil(t, a.ConfirmedEmail)
	assert.Equal(t, a.PendingEmail, *a.ConfirmedEmail)
	require.NotNil(t, a.EmailConfirmationCompletedAt)
	assert.Equal(t, now, *a.EmailConfirmationCompletedAt)
	assert.Nil(t, a.EmailConfirmationToken)
	assert.True(t, a.CanLogIn())
	assert.Empty(t, a.Validate())
}

func TestAccount_ConfirmationExpired(t *testing.T) {
	a := newPendingAccount()
	deadline := a.EmailConfirmationRequestedAt.Add(EmailConfirmationTimeout)

	assert.False(t, a.ConfirmationExpired(a.EmailConfirmationRequestedAt))
	assert.False(t, a.ConfirmationExpired(deadline))
	assert.True(t, a.ConfirmationExpired(deadline.Add(time.Second)))
}

func TestAccount_Profile(t *testing.T) {
	a := newPendingAccount()
	assert.Empty(t, a.Profile().Email)

	a.Confirm(time.Now())
	p := a.Profile()
	assert.Equal(t, a.PublicID, p.PublicID)
	assert.Equal(t, "Alice", p.DisplayName)
	assert.Equal(t, "a@x.com", p.Email)
	assert.Equal(t, "+12025551234", p.Phone)
}

func TestAccount_Validate(t *testing.T) {
	badEmail := "not-an-email"
	shortToken := "short"
	emptyHash := ""

	tests := []struct {
		name       string
		mutate     func(a *Account)
		wantFields []string
	}{
		{
			name:   "valid",
			mutate: func(a *Account) {},
		},
		{
			name:       "bad pending email",
			mutate:     func(a *Account) { a.PendingEmail = "nope" },
			wantFields: []string{"pendingEmail"},
		},
		{
			name:       "bad confirmed email",
			mutate:     func(a *Account) { a.ConfirmedEmail = &badEmail },
			wantFields: []string{"confirmedEmail"},
		},
		{
			name:       "display name too long",
			mutate:     func(a *Account) { a.DisplayName = strings.Repeat("x", MaxDisplayNameLength+1) },
			wantFields: []string{"displayName"},
		},
		{
			name:       "phone not canonical",
			mutate:     func(a *Account) { a.Phone = "202-555-1234" },
			wantFields: []string{"phone"},
		},
		{
			name:       "token too short",
			mutate:     func(a *Account) { a.EmailConfirmationToken = &shortToken },
			wantFields: []string{"emailConfirmationToken"},
		},
		{
			name:       "empty password hash",
			mutate:     func(a *Account) { a.PasswordHash = &emptyHash },
			wantFields: []string{"passwordHash"},
		},
		{
			name: "several failures",
			mutate: func(a *Account) {
				a.PendingEmail = ""
				a.Phone = ""
			},
			wantFields: []string{"pendingEmail", "phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newPendingAccount()
			tt.mutate(&a)

			errs := a.Validate()
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
				assert.NotEmpty(t, e.Message)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewError(KindWrongToken, "Invalid confirmation."))
	assert.Equal(t, KindWrongToken, KindOf(err))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))

	accErr, ok := AsAccountError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid confirmation.", accErr.Message)
}

func TestConflictError_Is(t *testing.T) {
	err := fmt.Errorf("save: %w", &ConflictError{Field: "phone", Constraint: "accounts_phone_key"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewAccountExistsError(t *testing.T) {
	err := NewAccountExistsError("displayName", "Alice")
	assert.Equal(t, KindAccountExists, err.Kind)
	assert.Equal(t, "displayName", err.Field)
	assert.Contains(t, err.Error(), "Alice")
}
