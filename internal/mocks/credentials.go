package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a mock type for the model.PasswordHasher type.
type PasswordHasher struct {
	mock.Mock
}

func (_m *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	ret := _m.Called(ctx, password)
	return ret.String(0), ret.Error(1)
}

func (_m *PasswordHasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	ret := _m.Called(ctx, password, digest)
	return ret.Bool(0), ret.Error(1)
}

func NewPasswordHasher(t TestingT) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// PhoneNormalizer is a mock type for the model.PhoneNormalizer type.
type PhoneNormalizer struct {
	mock.Mock
}

func (_m *PhoneNormalizer) Normalize(raw, regionHint string) (string, error) {
	ret := _m.Called(raw, regionHint)
	return ret.String(0), ret.Error(1)
}

func NewPhoneNormalizer(t TestingT) *PhoneNormalizer {
	m := &PhoneNormalizer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
