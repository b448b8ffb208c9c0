package models

import (
	"time"
)

// SweepReport represents the results of a sweep
type SweepReport struct {
	// Operation details
	OperationID string
	Roots       []string
	Flags       RuleFlags
	DryRun      bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Removed lists deleted files, or files that would be deleted in a dry run
	Removed []string

	// Errors encountered
	Errors []SweepError

	// Overall status
	Status SweepStatus
}

// Statistics holds sweep counters
type Statistics struct {
	DirsScanned  int
	FilesScanned int

	// FilesMatched counts files classified as disposable
	FilesMatched     int
	FilesWhitelisted int
	FilesKept        int // vetoed by the keep file
	FilesRemoved     int
	FilesSkipped     int // declined at the prompt
	FilesPlanned     int // dry run only
	FilesErrored     int
}

// SweepStatus represents the overall result
type SweepStatus string

const (
	// StatusSuccess indicates every confirmed deletion succeeded
	StatusSuccess SweepStatus = "success"
	// StatusPartial indicates some deletions failed
	StatusPartial SweepStatus = "partial"
	// StatusAborted indicates the user interrupted the sweep
	StatusAborted SweepStatus = "aborted"
)

// SweepError represents a failed deletion
type SweepError struct {
	FilePath  string
	Error     string
	Timestamp time.Time
}

// ExitCode returns the process exit code for the sweep status.
// Failed deletions are reported but do not fail the run.
func (s SweepStatus) ExitCode() int {
	switch s {
	case StatusSuccess, StatusPartial:
		return 0
	case StatusAborted:
		return 1
	default:
		return 2
	}
}
