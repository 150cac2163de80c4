package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/account-server/internal/model"
)

// AccountService is a mock for the account operations used by the HTTP handlers.
type AccountService struct {
	mock.Mock
}

func (_m *AccountService) Register(ctx context.Context, params model.RegisterParams) (model.Account, error) {
	ret := _m.Called(ctx, params)

	var r0 model.Account
	if v, ok := ret.Get(0).(model.Account); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *AccountService) ConfirmEmail(ctx context.Context, email, token string, now time.Time) error {
	ret := _m.Called(ctx, email, token, now)
	return ret.Error(0)
}

func (_m *AccountService) ResetForTesting(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func NewAccountService(t TestingT) *AccountService {
	m := &AccountService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// SessionService is a mock for the session operations used by the HTTP layer.
type SessionService struct {
	mock.Mock
}

func (_m *SessionService) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	ret := _m.Called(ctx, email, password)

	var r0 model.LoginResult
	if v, ok := ret.Get(0).(model.LoginResult); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *SessionService) Authenticate(ctx context.Context, token string) (model.Profile, error) {
	ret := _m.Called(ctx, token)

	var r0 model.Profile
	if v, ok := ret.Get(0).(model.Profile); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func NewSessionService(t TestingT) *SessionService {
	m := &SessionService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
