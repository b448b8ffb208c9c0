package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath normalizes a path for the current platform
func NormalizePath(path string) string {
	normalized := filepath.Clean(path)

	// On Windows, ensure UNC paths are preserved
	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, "\\\\") && !strings.HasPrefix(normalized, "\\\\") {
			normalized = "\\\\" + normalized
		}
	}

	return normalized
}

// SplitExt splits a file name into stem and extension. The extension starts
// at the last dot and includes it. Leading dots never start an extension, so
// ".bashrc" and "..." have none.
func SplitExt(name string) (stem, ext string) {
	start := 0
	for i := len(name) - 1; i >= 0; i-- {
		if os.IsPathSeparator(name[i]) {
			start = i + 1
			break
		}
	}

	dot := strings.LastIndex(name[start:], ".")
	if dot <= 0 || strings.Trim(name[start:start+dot], ".") == "" {
		return name, ""
	}
	return name[:start+dot], name[start+dot:]
}

// ParentName returns the final component of dir, after cleaning.
func ParentName(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}

// ResolvePath returns the absolute path with symlinks resolved. A path that
// no longer exists is still made absolute so it can be matched.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", &PathError{Path: path, Message: "path is empty"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return resolved, nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
