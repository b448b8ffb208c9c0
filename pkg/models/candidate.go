package models

import (
	"path/filepath"

	"github.com/sdejongh/mclean/internal/platform"
)

// Candidate is a file visited during a sweep
type Candidate struct {
	// Name is the base name of the file
	Name string

	// Dir is the directory containing the file, as produced by the walk
	Dir string
}

// Path returns the joined directory and name
func (c Candidate) Path() string {
	return filepath.Join(c.Dir, c.Name)
}

// Ext returns the extension of the name including the leading dot
func (c Candidate) Ext() string {
	_, ext := platform.SplitExt(c.Name)
	return ext
}

// Stem returns the name without its extension
func (c Candidate) Stem() string {
	stem, _ := platform.SplitExt(c.Name)
	return stem
}

// RuleFlags selects which rule groups are active for a run
type RuleFlags struct {
	// Diff enables .orig/.rej detection
	Diff bool `yaml:"diff"`
	// Compiled enables orphan .o/.pyc detection
	Compiled bool `yaml:"compiled"`
	// Latex enables LaTeX and AucTeX detection
	Latex bool `yaml:"latex"`
	// Force skips confirmation. Never read from a config file.
	Force bool `yaml:"-"`
}

// Merge returns flags enabled in either f or other
func (f RuleFlags) Merge(other RuleFlags) RuleFlags {
	return RuleFlags{
		Diff:     f.Diff || other.Diff,
		Compiled: f.Compiled || other.Compiled,
		Latex:    f.Latex || other.Latex,
		Force:    f.Force || other.Force,
	}
}

// RuleGroup names the rule group that classified a file
type RuleGroup string

const (
	// GroupNone means no rule matched
	GroupNone RuleGroup = ""
	// GroupGeneric covers backups, swap files and FFTW wisdom caches
	GroupGeneric RuleGroup = "generic"
	// GroupDiff covers leftovers of patch
	GroupDiff RuleGroup = "diff"
	// GroupLatex covers LaTeX auxiliary files
	GroupLatex RuleGroup = "latex"
	// GroupAucTeX covers stale AucTeX auto files
	GroupAucTeX RuleGroup = "auctex"
	// GroupOrphan covers compiled objects without a source
	GroupOrphan RuleGroup = "orphan"
)

// Verdict is the outcome of classifying a candidate
type Verdict struct {
	Disposable bool
	Group      RuleGroup
}
