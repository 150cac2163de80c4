// Package password implements salted adaptive password hashing.
package password

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/dtroode/account-server/internal/model"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt hashes passwords with bcrypt. The number of hashes computed at the
// same time is bounded so that expensive hashing cannot saturate every CPU.
type Bcrypt struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcrypt creates a hasher with the given cost and concurrency limit.
// Non-positive values select DefaultCost and GOMAXPROCS.
func NewBcrypt(cost, maxConcurrent int) (*Bcrypt, error) {
	if cost <= 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}

	return &Bcrypt{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(maxConcurrent)),
	}, nil
}

// Hash returns a salted digest of password.
func (b *Bcrypt) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", model.NewError(model.KindInvalidInput, "password must not be empty")
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer b.sem.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", model.NewError(model.KindInvalidInput, "password must be at most %d bytes", model.MaxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(digest), nil
}

// Verify reports whether password matches digest.
func (b *Bcrypt) Verify(ctx context.Context, password, digest string) (bool, error) {
	if password == "" {
		return false, model.NewError(model.KindInvalidInput, "password must not be empty")
	}
	if digest == "" {
		return false, model.NewError(model.KindInvalidInput, "password digest is missing")
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer b.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare password: %w", err)
	}

	return true, nil
}
