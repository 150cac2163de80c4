package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/account-server/internal/model"
)

// ConfirmationNotifier is a mock type for the model.ConfirmationNotifier type.
type ConfirmationNotifier struct {
	mock.Mock
}

func (_m *ConfirmationNotifier) Notify(ctx context.Context, msg model.ConfirmationMessage) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

func (_m *ConfirmationNotifier) Discard(ctx context.Context, publicID uuid.UUID) error {
	ret := _m.Called(ctx, publicID)
	return ret.Error(0)
}

func NewConfirmationNotifier(t TestingT) *ConfirmationNotifier {
	m := &ConfirmationNotifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Storage is a mock type for the model.Storage type.
type Storage struct {
	mock.Mock
}

// Upload accepts either an error or a func(io.Reader) error as its return value.
func (_m *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	ret := _m.Called(ctx, key, reader)

	if rf, ok := ret.Get(0).(func(io.Reader) error); ok {
		return rf(reader)
	}
	return ret.Error(0)
}

func (_m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, key)

	var r0 io.ReadCloser
	if v, ok := ret.Get(0).(io.ReadCloser); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *Storage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

func NewStorage(t TestingT) *Storage {
	m := &Storage{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
