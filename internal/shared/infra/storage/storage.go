package storage

import (
	"context"
	"io"
)

// FileStore persists uploaded media (listing images, blog featured images)
// and removes it when the owning record is deleted.
type FileStore interface {
	// Put stores the object under key and returns the public path clients
	// use to reference it.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)

	// Remove deletes the object referenced by path. Removing a missing
	// object is not an error.
	Remove(ctx context.Context, path string) error
}
