package clean

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/sdejongh/mclean/pkg/models"
)

// gitPathPattern matches any path with a ".git" component
const gitPathPattern = `(?:^|/)\.git(?:/|$)`

// Whitelist vetoes deletion of files by their resolved absolute path
type Whitelist struct {
	patterns []*regexp.Regexp
}

// NewWhitelist creates a whitelist protecting version control metadata plus
// any extra patterns. Extra patterns are unanchored and see slash-separated
// paths.
func NewWhitelist(extra []string) (*Whitelist, error) {
	w := &Whitelist{patterns: []*regexp.Regexp{regexp.MustCompile(gitPathPattern)}}
	for _, pattern := range extra {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &models.ValidationError{
				Field:   "whitelist",
				Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err),
			}
		}
		w.patterns = append(w.patterns, re)
	}
	return w, nil
}

// Vetoes reports whether the resolved path must never be deleted
func (w *Whitelist) Vetoes(resolvedPath string) bool {
	path := filepath.ToSlash(resolvedPath)
	for _, re := range w.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
