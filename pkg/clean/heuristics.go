package clean

import (
	"path/filepath"

	"github.com/sdejongh/mclean/internal/platform"
)

// AucTeX keeps its parse cache in a subdirectory with this exact name
const aucTeXDir = "auto"

var (
	aucTeXSources = []string{".tex", ".sty", ".cls"}
	objectSources = []string{".c", ".cpp", ".cc", ".C"}
)

// StaleAucTeX reports whether name is an AucTeX auto file (.el or .elc in a
// directory called "auto") whose LaTeX source next to that directory is gone.
func StaleAucTeX(checker FileChecker, name, dir string) bool {
	stem, ext := platform.SplitExt(name)
	if ext != ".el" && ext != ".elc" {
		return false
	}
	if platform.ParentName(dir) != aucTeXDir {
		return false
	}

	base := filepath.Join(dir, "..", stem)
	return !anyExists(checker, base, aucTeXSources)
}

// Orphaned reports whether name is a compiled artifact whose source is gone:
// an .o without a C or C++ file beside it, or a .pyc without a .py beside it
// or one directory up, where bytecode cache directories keep their files.
func Orphaned(checker FileChecker, name, dir string) bool {
	stem, ext := platform.SplitExt(name)

	switch ext {
	case ".o":
		return !anyExists(checker, filepath.Join(dir, stem), objectSources)
	case ".pyc":
		if checker.Exists(filepath.Join(dir, stem+".py")) {
			return false
		}
		return !checker.Exists(filepath.Join(dir, "..", stem+".py"))
	default:
		return false
	}
}

func anyExists(checker FileChecker, base string, exts []string) bool {
	for _, ext := range exts {
		if checker.Exists(base + ext) {
			return true
		}
	}
	return false
}
