package model

import "context"

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, digest string) (bool, error)
}

// PhoneNormalizer converts phone numbers to their canonical form.
type PhoneNormalizer interface {
	Normalize(raw, regionHint string) (string, error)
}
