package storage

import (
	"context"
	"io"
)

// FileStorage abstracts where uploaded binaries live. The application only
// keeps the returned path reference; serving is done by whoever fronts the
// store (a static file route for local storage).
type FileStorage interface {
	// Upload stores a file and returns the path/key reference
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public URL for a stored path
	URL(path string) string
}
