package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdejongh/mclean/internal/platform"
)

// Local is a filesystem-based storage backend
type Local struct{}

// NewLocal creates a new local filesystem backend
func NewLocal() *Local {
	return &Local{}
}

// Walk visits directories top-down. Symbolic links to directories are
// neither descended into nor reported as files.
func (l *Local) Walk(ctx context.Context, root string, fn WalkFunc) error {
	return l.walk(ctx, root, fn)
}

func (l *Local) walk(ctx context.Context, dir string, fn WalkFunc) error {
	// Check context cancellation
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fn(dir, nil, fmt.Errorf("failed to read directory: %w", err))
	}

	var files, subdirs []string
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			subdirs = append(subdirs, entry.Name())
		case entry.Type()&os.ModeSymlink != 0:
			// Links to directories count as directories but are not followed
			if info, err := os.Stat(filepath.Join(dir, entry.Name())); err == nil && info.IsDir() {
				continue
			}
			files = append(files, entry.Name())
		default:
			files = append(files, entry.Name())
		}
	}

	if err := fn(dir, files, nil); err != nil {
		return err
	}

	for _, sub := range subdirs {
		if err := l.walk(ctx, filepath.Join(dir, sub), fn); err != nil {
			return err
		}
	}

	return nil
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Delete removes a single file
func (l *Local) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

// Resolve returns the absolute path with symlinks resolved
func (l *Local) Resolve(path string) (string, error) {
	return platform.ResolvePath(path)
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
