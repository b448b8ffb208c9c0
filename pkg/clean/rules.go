package clean

import (
	"fmt"
	"regexp"

	"github.com/sdejongh/mclean/pkg/models"
)

// Name patterns are anchored at both ends and tested against the base name.
const (
	genericPattern = `^(?:\._.*|.*\.(?:bak|old)|.*~|fftw.*wisdom_.*\.file)$`
	diffPattern    = `^.*\.(?:orig|rej)$`
	latexPattern   = `^(?:.*\.(?:fls|tdo|spl|vrb|toc|ilg|ind|idx|nav|snm|bcf|bbl|blg|run\.xml|dvi|log|aux|out|fdb_latexmk)|.*-blx\.bib)$`
)

// Rule is an immutable name pattern bound to the group it reports
type Rule struct {
	Group   models.RuleGroup
	pattern *regexp.Regexp
}

// NewRule compiles a name pattern for a group. The pattern is matched against
// the whole base name.
func NewRule(group models.RuleGroup, pattern string) (Rule, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return Rule{}, &models.ValidationError{
			Field:   "pattern",
			Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err),
		}
	}
	return Rule{Group: group, pattern: re}, nil
}

// Matches reports whether name matches the rule
func (r Rule) Matches(name string) bool {
	return r.pattern != nil && r.pattern.MatchString(name)
}

// String returns the compiled expression
func (r Rule) String() string {
	if r.pattern == nil {
		return ""
	}
	return r.pattern.String()
}

func mustRule(group models.RuleGroup, expr string) Rule {
	return Rule{Group: group, pattern: regexp.MustCompile(expr)}
}

// GenericRule matches backups, swap files and FFTW wisdom caches
func GenericRule() Rule { return mustRule(models.GroupGeneric, genericPattern) }

// DiffRule matches files left behind by patch
func DiffRule() Rule { return mustRule(models.GroupDiff, diffPattern) }

// LatexRule matches LaTeX auxiliary output
func LatexRule() Rule { return mustRule(models.GroupLatex, latexPattern) }
