package storage

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
)

// Memory is an in-memory directory tree. Paths are cleaned before use and
// directories are implied by the files they contain.
type Memory struct {
	mu         sync.Mutex
	files      map[string]bool
	dirs       map[string]bool
	deleteErrs map[string]error
}

// NewMemory creates a tree holding the given files
func NewMemory(files ...string) *Memory {
	m := &Memory{
		files:      make(map[string]bool),
		dirs:       make(map[string]bool),
		deleteErrs: make(map[string]error),
	}
	for _, f := range files {
		m.AddFile(f)
	}
	return m
}

// AddFile adds a file and its parent directories
func (m *Memory) AddFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	m.files[path] = true
	m.addDirLocked(filepath.Dir(path))
}

// AddDir adds an empty directory and its parents
func (m *Memory) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addDirLocked(filepath.Clean(path))
}

func (m *Memory) addDirLocked(dir string) {
	for !m.dirs[dir] {
		m.dirs[dir] = true
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// FailDelete makes every later Delete of path return err
func (m *Memory) FailDelete(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteErrs[filepath.Clean(path)] = err
}

// Files returns the remaining files in sorted order
func (m *Memory) Files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	files := make([]string, 0, len(m.files))
	for f := range m.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Walk visits directories top-down in name order
func (m *Memory) Walk(ctx context.Context, root string, fn WalkFunc) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	root = filepath.Clean(root)
	files, subdirs, ok := m.list(root)
	if !ok {
		return fn(root, nil, fmt.Errorf("failed to read directory: %w", fs.ErrNotExist))
	}

	if err := fn(root, files, nil); err != nil {
		return err
	}

	for _, sub := range subdirs {
		if err := m.Walk(ctx, sub, fn); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) list(dir string) (files, subdirs []string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirs[dir] {
		return nil, nil, false
	}
	for f := range m.files {
		if filepath.Dir(f) == dir {
			files = append(files, filepath.Base(f))
		}
	}
	for d := range m.dirs {
		if d != dir && filepath.Dir(d) == dir {
			subdirs = append(subdirs, d)
		}
	}
	sort.Strings(files)
	sort.Strings(subdirs)
	return files, subdirs, true
}

// Exists checks if a file or directory exists
func (m *Memory) Exists(ctx context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	return m.files[path] || m.dirs[path], nil
}

// Delete removes a single file
func (m *Memory) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.deleteErrs[path]; err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	if !m.files[path] {
		return fmt.Errorf("failed to delete: %w", fs.ErrNotExist)
	}
	delete(m.files, path)
	return nil
}

// Resolve anchors relative paths at the filesystem root
func (m *Memory) Resolve(path string) (string, error) {
	path = filepath.Clean(path)
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(string(filepath.Separator), path), nil
}

// Close does nothing
func (m *Memory) Close() error {
	return nil
}
