package model

import "context"

// ContextManager carries the authenticated account profile through a request context.
type ContextManager interface {
	SetProfileToContext(ctx context.Context, profile Profile) context.Context
	GetProfileFromContext(ctx context.Context) (Profile, bool)
}
