// Package storage keeps rendered export files on local disk or in an
// S3-compatible bucket and signs time-limited download links for them.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when a stored object does not exist.
var ErrNotFound = errors.New("storage: object not found")

// Store persists export files by key.
type Store interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// CleanupOlderThan removes objects last modified before now-ttl and
	// returns their keys.
	CleanupOlderThan(ctx context.Context, ttl time.Duration) ([]string, error)
}
