package storage

import (
	"context"
)

// Storage defines the interface for member file storage backends.
// Supports local filesystem and Google Cloud Storage.
type Storage interface {
	// Put writes the file content under the given key and returns the
	// public URL the file is served from.
	// key: storage path/key for the file (e.g., "member-files/2026-01-15/abc.pdf")
	// contentType: MIME type (e.g., "application/pdf")
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes a file from storage. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Exists checks if a file exists and returns its size.
	Exists(ctx context.Context, key string) (exists bool, size int64, err error)
}
