package clean

import (
	"os"
)

// FileChecker answers whether a file exists. Any error while checking
// counts as "does not exist".
type FileChecker interface {
	Exists(path string) bool
}

// CheckerFunc adapts a function to FileChecker
type CheckerFunc func(path string) bool

// Exists calls f(path)
func (f CheckerFunc) Exists(path string) bool {
	return f(path)
}

// OSChecker checks the local filesystem
type OSChecker struct{}

// Exists reports whether path can be stat'ed
func (OSChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
