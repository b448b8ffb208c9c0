// Package clean decides whether a file left in a source tree is a disposable
// artifact of an editor, LaTeX, a C/C++ compiler, Python or patch.
//
// Classification only looks at the file name, the name of its directory and
// whether a few sibling files exist. It never reads file contents and never
// modifies anything.
package clean

import (
	"github.com/sdejongh/mclean/pkg/models"
)

// Classifier decides whether files are disposable under a fixed set of
// rule flags. It holds no mutable state and is safe to reuse.
type Classifier struct {
	flags   models.RuleFlags
	checker FileChecker

	generic []Rule
	diff    Rule
	latex   Rule
}

// NewClassifier creates a classifier for the given flags. A nil checker
// checks the local filesystem. Extra patterns join the generic group and
// are active regardless of flags.
func NewClassifier(flags models.RuleFlags, checker FileChecker, extraPatterns []string) (*Classifier, error) {
	if checker == nil {
		checker = OSChecker{}
	}

	generic := []Rule{GenericRule()}
	for _, pattern := range extraPatterns {
		if pattern == "" {
			continue
		}
		rule, err := NewRule(models.GroupGeneric, pattern)
		if err != nil {
			return nil, err
		}
		generic = append(generic, rule)
	}

	return &Classifier{
		flags:   flags,
		checker: checker,
		generic: generic,
		diff:    DiffRule(),
		latex:   LatexRule(),
	}, nil
}

// Flags returns the rule flags the classifier was built with
func (c *Classifier) Flags() models.RuleFlags {
	return c.flags
}

// IsDisposable reports whether the file name in dir may be deleted
func (c *Classifier) IsDisposable(name, dir string) bool {
	return c.Classify(name, dir).Disposable
}

// Classify evaluates the active rule groups in order and reports the first
// one that matches.
func (c *Classifier) Classify(name, dir string) models.Verdict {
	if name == "" {
		return models.Verdict{}
	}

	for _, rule := range c.generic {
		if rule.Matches(name) {
			return disposable(models.GroupGeneric)
		}
	}

	if c.flags.Diff && c.diff.Matches(name) {
		return disposable(models.GroupDiff)
	}

	if c.flags.Latex {
		if c.latex.Matches(name) {
			return disposable(models.GroupLatex)
		}
		if StaleAucTeX(c.checker, name, dir) {
			return disposable(models.GroupAucTeX)
		}
	}

	if c.flags.Compiled && Orphaned(c.checker, name, dir) {
		return disposable(models.GroupOrphan)
	}

	return models.Verdict{}
}

func disposable(group models.RuleGroup) models.Verdict {
	return models.Verdict{Disposable: true, Group: group}
}
