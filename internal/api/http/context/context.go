package context

import (
	"context"

	"github.com/dtroode/account-server/internal/model"
)

type profileKey struct{}

var _ model.ContextManager = (*Manager)(nil)

// Manager stores the authenticated account profile in request contexts.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetProfileToContext(ctx context.Context, profile model.Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, profile)
}

func (m *Manager) GetProfileFromContext(ctx context.Context) (model.Profile, bool) {
	profile, ok := ctx.Value(profileKey{}).(model.Profile)
	return profile, ok
}
