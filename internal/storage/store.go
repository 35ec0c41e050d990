package storage

import (
	"context"
	"io"
)

// Store defines the interface for the output file storage backend.
type Store interface {
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context) ([]string, error)
}
