// Package keep reads per-root keep files. A keep file uses .gitignore syntax;
// files it matches are never deleted.
package keep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// DefaultFileName is looked up in every sweep root
const DefaultFileName = ".mcleankeep"

// List matches paths below one root against its keep file
type List struct {
	root    string
	matcher gitignore.IgnoreMatcher
}

// Load reads name from root. A missing keep file yields an empty list that
// matches nothing.
func Load(root, name string) (*List, error) {
	l := &List{root: root}
	if name == "" {
		return l, nil
	}

	path := filepath.Join(root, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("failed to access keep file: %w", err)
	}

	matcher, err := gitignore.NewGitIgnore(path, root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keep file %s: %w", path, err)
	}
	l.matcher = matcher
	return l, nil
}

// Keeps reports whether path, a file found while walking the root, is
// protected. A file is protected when it matches itself or when one of the
// directories between the root and the file matches. The matcher takes
// paths in the same form as the root and makes them relative itself.
func (l *List) Keeps(path string) bool {
	if l == nil || l.matcher == nil {
		return false
	}
	if l.keepsAncestor(path) {
		return true
	}
	return l.matcher.Match(path, false)
}

// keepsAncestor checks the parent directories of path from the root down
func (l *List) keepsAncestor(path string) bool {
	rel, err := filepath.Rel(l.root, filepath.Dir(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}

	dir := l.root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		dir = filepath.Join(dir, part)
		if l.matcher.Match(dir, true) {
			return true
		}
	}
	return false
}

// Empty reports whether the list has no patterns loaded
func (l *List) Empty() bool {
	return l == nil || l.matcher == nil
}
