package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/account-server/internal/model"
)

// TokenManager is a mock type for the model.TokenManager type.
type TokenManager struct {
	mock.Mock
}

func (_m *TokenManager) Issue(claims model.SessionClaims) (string, error) {
	ret := _m.Called(claims)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) Parse(token string) (model.SessionClaims, error) {
	ret := _m.Called(token)

	var r0 model.SessionClaims
	if v, ok := ret.Get(0).(model.SessionClaims); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func NewTokenManager(t TestingT) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
