package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/account-server/internal/model"
)

// AccountStore is a mock type for the model.AccountStore type.
type AccountStore struct {
	mock.Mock
}

func (_m *AccountStore) GetByPendingEmail(ctx context.Context, email string) (model.Account, error) {
	return _m.account(_m.Called(ctx, email))
}

func (_m *AccountStore) GetByDisplayName(ctx context.Context, displayName string) (model.Account, error) {
	return _m.account(_m.Called(ctx, displayName))
}

func (_m *AccountStore) GetByPhone(ctx context.Context, phone string) (model.Account, error) {
	return _m.account(_m.Called(ctx, phone))
}

func (_m *AccountStore) GetByConfirmedEmail(ctx context.Context, email string) (model.Account, error) {
	return _m.account(_m.Called(ctx, email))
}

func (_m *AccountStore) GetByPublicID(ctx context.Context, publicID uuid.UUID) (model.Account, error) {
	return _m.account(_m.Called(ctx, publicID))
}

// Save accepts either an error or a func(*model.Account) error as its return value.
func (_m *AccountStore) Save(ctx context.Context, account *model.Account) error {
	ret := _m.Called(ctx, account)

	if rf, ok := ret.Get(0).(func(*model.Account) error); ok {
		return rf(account)
	}
	return ret.Error(0)
}

func (_m *AccountStore) Clear(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *AccountStore) account(ret mock.Arguments) (model.Account, error) {
	var r0 model.Account
	if v, ok := ret.Get(0).(model.Account); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

// NewAccountStore creates a new instance of AccountStore and registers expectation checks on cleanup.
func NewAccountStore(t TestingT) *AccountStore {
	m := &AccountStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
