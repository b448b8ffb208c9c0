package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/mclean/pkg/models"
)

// JSONFormatter writes one JSON document when the sweep completes
type JSONFormatter struct {
	writer io.Writer
	roots  []string
	events []JSONEvent
}

// JSONEvent represents a single file event
type JSONEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Path      string    `json:"path,omitempty"`
	Group     string    `json:"group,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// JSONReportData represents the final report
type JSONReportData struct {
	RunID      string          `json:"run_id"`
	Status     string          `json:"status"`
	Roots      []string        `json:"roots"`
	Flags      JSONFlagsData   `json:"flags"`
	DryRun     bool            `json:"dry_run"`
	Duration   string          `json:"duration"`
	DurationMs int64           `json:"duration_ms"`
	Stats      JSONStatsData   `json:"stats"`
	Removed    []string        `json:"removed,omitempty"`
	Errors     []JSONErrorData `json:"errors,omitempty"`
	Events     []JSONEvent     `json:"events,omitempty"`
}

// JSONFlagsData mirrors the active rule groups
type JSONFlagsData struct {
	Diff     bool `json:"diff"`
	Compiled bool `json:"compiled"`
	Latex    bool `json:"latex"`
	Force    bool `json:"force"`
}

// JSONStatsData represents sweep counters
type JSONStatsData struct {
	DirsScanned      int `json:"dirs_scanned"`
	FilesScanned     int `json:"files_scanned"`
	FilesMatched     int `json:"files_matched"`
	FilesWhitelisted int `json:"files_whitelisted"`
	FilesKept        int `json:"files_kept"`
	FilesRemoved     int `json:"files_removed"`
	FilesSkipped     int `json:"files_skipped"`
	FilesPlanned     int `json:"files_planned"`
	FilesErrored     int `json:"files_errored"`
}

// JSONErrorData represents a failed deletion
type JSONErrorData struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, roots []string) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.roots = roots
	f.events = nil
	return nil
}

// Progress records file-level events; directory and scan events are dropped
// to keep the document small
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	switch update.Type {
	case EventEnterDir, EventScanned:
		return nil
	}

	event := JSONEvent{
		Timestamp: time.Now(),
		Type:      update.Type,
		Path:      update.FilePath,
		Group:     string(update.Group),
	}
	if update.Type == EventDirError {
		event.Path = update.Dir
	}
	if update.Error != nil {
		event.Error = update.Error.Error()
	}
	f.events = append(f.events, event)
	return nil
}

// Complete writes the report
func (f *JSONFormatter) Complete(report *models.SweepReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	var errors []JSONErrorData
	for _, err := range report.Errors {
		errors = append(errors, JSONErrorData{Path: err.FilePath, Error: err.Error})
	}

	s := report.Stats
	data := JSONReportData{
		RunID:  report.OperationID,
		Status: string(report.Status),
		Roots:  report.Roots,
		Flags: JSONFlagsData{
			Diff:     report.Flags.Diff,
			Compiled: report.Flags.Compiled,
			Latex:    report.Flags.Latex,
			Force:    report.Flags.Force,
		},
		DryRun:     report.DryRun,
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			DirsScanned:      s.DirsScanned,
			FilesScanned:     s.FilesScanned,
			FilesMatched:     s.FilesMatched,
			FilesWhitelisted: s.FilesWhitelisted,
			FilesKept:        s.FilesKept,
			FilesRemoved:     s.FilesRemoved,
			FilesSkipped:     s.FilesSkipped,
			FilesPlanned:     s.FilesPlanned,
			FilesErrored:     s.FilesErrored,
		},
		Removed: report.Removed,
		Errors:  errors,
		Events:  f.events,
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Error records an error event
func (f *JSONFormatter) Error(err error) error {
	f.events = append(f.events, JSONEvent{
		Timestamp: time.Now(),
		Type:      "error",
		Error:     err.Error(),
	})
	return nil
}

// Interactive returns false: prompts must not corrupt the document
func (f *JSONFormatter) Interactive() bool {
	return false
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
