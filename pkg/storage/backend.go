package storage

import (
	"context"
)

// WalkFunc is called once per directory, top-down, with the names of the
// non-directory entries it holds. err is set when the directory could not be
// read; files is then empty and the directory is not descended into.
// Returning an error stops the walk.
type WalkFunc func(dir string, files []string, err error) error

// Backend defines the filesystem operations a sweep needs
// Implementations include the local filesystem and an in-memory tree
type Backend interface {
	// Walk visits root and every directory below it
	Walk(ctx context.Context, root string, fn WalkFunc) error

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes a single file
	Delete(ctx context.Context, path string) error

	// Resolve returns the absolute, symlink-resolved form of path
	Resolve(path string) (string, error)

	// Close releases any resources held by the backend
	Close() error
}
