package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/account-server/internal/model"
)

// memStore is an in-memory AccountStore that enforces the same unique
// constraints as the accounts table.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]model.Account
}

func newMemStore() *memStore {
	return &memStore{accounts: map[int64]model.Account{}}
}

func (s *memStore) find(match func(model.Account) bool) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if match(a) {
			return a, nil
		}
	}
	return model.Account{}, model.ErrNotFound
}

func (s *memStore) GetByPendingEmail(_ context.Context, email string) (model.Account, error) {
	return s.find(func(a model.Account) bool { return a.PendingEmail == email })
}

func (s *memStore) GetByDisplayName(_ context.Context, displayName string) (model.Account, error) {
	return s.find(func(a model.Account) bool { return a.DisplayName == displayName })
}

func (s *memStore) GetByPhone(_ context.Context, phone string) (model.Account, error) {
	return s.find(func(a model.Account) bool { return a.Phone == phone })
}

func (s *memStore) GetByConfirmedEmail(_ context.Context, email string) (model.Account, error) {
	return s.find(func(a model.Account) bool { return a.ConfirmedEmail != nil && *a.ConfirmedEmail == email })
}

func (s *memStore) GetByPublicID(_ context.Context, publicID uuid.UUID) (model.Account, error) {
	return s.find(func(a model.Account) bool { return a.PublicID == publicID })
}

func (s *memStore) Save(_ context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, other := range s.accounts {
		if id == account.ID {
			continue
		}
		if err := collision(*account, other); err != nil {
			return err
		}
	}

	now := time.Now()
	if account.ID == 0 {
		s.nextID++
		account.ID = s.nextID
		account.CreatedAt = now
	} else if _, ok := s.accounts[account.ID]; !ok {
		return model.ErrNotFound
	}
	account.UpdatedAt = now

	s.accounts[account.ID] = *account
	return nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = map[int64]model.Account{}
	return nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

func collision(a, b model.Account) error {
	eq := func(x, y *string) bool { return x != nil && y != nil && *x == *y }

	switch {
	case a.PublicID == b.PublicID:
		return &model.ConflictError{Field: "publicId", Constraint: "accounts_public_id_key"}
	case a.DisplayName == b.DisplayName:
		return &model.ConflictError{Field: "displayName", Constraint: "accounts_display_name_key"}
	case a.PendingEmail == b.PendingEmail:
		return &model.ConflictError{Field: "email", Constraint: "accounts_pending_email_key"}
	case eq(a.ConfirmedEmail, b.ConfirmedEmail):
		return &model.ConflictError{Field: "email", Constraint: "accounts_confirmed_email_key"}
	case a.Phone == b.Phone:
		return &model.ConflictError{Field: "phone", Constraint: "accounts_phone_key"}
	case eq(a.EmailConfirmationToken, b.EmailConfirmationToken):
		return &model.ConflictError{Field: "emailConfirmationToken", Constraint: "accounts_email_confirmation_token_key"}
	}
	return nil
}
