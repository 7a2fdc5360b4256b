package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Writer is a blob in the process of being written. The content becomes
// visible to readers only once Close returns successfully; Abort discards
// everything written so far without publishing anything.
type Writer interface {
	io.WriteCloser

	// Abort discards the blob. Callers that hit a write error must abort
	// rather than close, or a truncated blob would be published.
	Abort() error
}

// Store is an abstraction for reading and writing immutable snapshot blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Create creates a blob for writing. The blob becomes visible to readers
	// only once the returned writer has been closed successfully.
	Create(ctx context.Context, name string) (Writer, error)

	// Delete removes a blob.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs matching the prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
