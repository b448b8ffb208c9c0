package models

import (
	"time"
)

// OutputFormat selects how a sweep is narrated
type OutputFormat string

const (
	// OutputHuman narrates every directory and file on the console
	OutputHuman OutputFormat = "human"
	// OutputJSON prints a single JSON document when the sweep ends
	OutputJSON OutputFormat = "json"
	// OutputProgress shows a counter bar, for unattended runs only
	OutputProgress OutputFormat = "progress"
)

// SweepOperation represents a sweep run configuration
type SweepOperation struct {
	ID    string
	Roots []string
	Flags RuleFlags

	// DryRun reports disposable files without deleting them
	DryRun bool

	// ExtraPatterns are additional always-disposable name patterns
	ExtraPatterns []string
	// ExtraWhitelist are additional resolved-path patterns never deleted
	ExtraWhitelist []string
	// KeepFile is the per-root keep file name, empty to disable
	KeepFile string

	Output    OutputFormat
	CreatedAt time.Time
}

// Validate checks if the operation configuration is valid
func (op *SweepOperation) Validate() error {
	if len(op.Roots) == 0 {
		return &ValidationError{Field: "Roots", Message: "at least one directory is required"}
	}
	for _, root := range op.Roots {
		if root == "" {
			return &ValidationError{Field: "Roots", Message: "directory must not be empty"}
		}
	}

	switch op.Output {
	case OutputHuman, OutputJSON:
	case OutputProgress:
		// A bar cannot share the terminal with confirmation prompts
		if !op.Flags.Force && !op.DryRun {
			return &ValidationError{Field: "Output", Message: "progress output requires --force or --dry-run"}
		}
	default:
		return &ValidationError{Field: "Output", Message: "must be 'human', 'json', or 'progress'"}
	}

	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
