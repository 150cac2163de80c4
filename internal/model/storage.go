package model

import (
	"context"
	"io"
)

// Storage is an object store used for outgoing confirmation messages.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
