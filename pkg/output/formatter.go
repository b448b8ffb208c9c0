package output

import (
	"io"

	"github.com/sdejongh/mclean/pkg/models"
)

// EventType identifies a sweep event
type EventType string

const (
	EventEnterDir    EventType = "enter_dir"
	EventDirError    EventType = "dir_error"
	EventScanned     EventType = "scanned"
	EventWhitelisted EventType = "whitelisted"
	EventKept        EventType = "kept"
	EventRemoved     EventType = "removed"
	EventSkipped     EventType = "skipped"
	EventFailed      EventType = "failed"
	EventPlanned     EventType = "planned"
	EventAborted     EventType = "aborted"
)

// ProgressUpdate represents a notification during a sweep
type ProgressUpdate struct {
	Type     EventType
	Dir      string
	Name     string
	FilePath string
	Group    models.RuleGroup
	Error    error
}

// Formatter defines the interface for output formatting
// Implementations include human-readable, JSON and progress bar formatters
type Formatter interface {
	// Start initializes the formatter for a new sweep
	Start(writer io.Writer, roots []string) error

	// Progress reports an event during the sweep
	Progress(update ProgressUpdate) error

	// Complete finalizes output
	Complete(report *models.SweepReport) error

	// Error reports an error that ends the sweep
	Error(err error) error

	// Interactive reports whether prompts may share the writer
	Interactive() bool

	// Name returns the formatter name
	Name() string
}
