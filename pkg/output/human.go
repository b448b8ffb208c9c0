package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sdejongh/mclean/pkg/models"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	plannedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
)

// HumanFormatter narrates the sweep line by line. Questions from the
// confirmer are written to the same writer between events.
type HumanFormatter struct {
	writer  io.Writer
	quiet   bool
	verbose bool
}

// NewHumanFormatter creates a new human-readable formatter. quiet drops the
// per-directory lines; verbose adds directory errors and a final summary.
func NewHumanFormatter(quiet, verbose bool) *HumanFormatter {
	return &HumanFormatter{quiet: quiet, verbose: verbose}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, roots []string) error {
	if writer == nil {
		writer = io.Discard
	}
	f.writer = writer
	return nil
}

// Progress reports an event
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil {
		return nil
	}

	switch update.Type {
	case EventEnterDir:
		if !f.quiet {
			fmt.Fprintf(f.writer, "entering %s\n", update.Dir)
		}

	case EventDirError:
		if f.verbose {
			fmt.Fprintf(f.writer, "%s\n", mutedStyle.Render(fmt.Sprintf("cannot read %s: %v", update.Dir, update.Error)))
		}

	case EventWhitelisted:
		fmt.Fprintf(f.writer, "%s whitelisted -> %s\n", update.Name, mutedStyle.Render("skipped"))

	case EventKept:
		fmt.Fprintf(f.writer, "%s kept -> %s\n", update.Name, mutedStyle.Render("skipped"))

	case EventRemoved:
		fmt.Fprintf(f.writer, "%s\n", doneStyle.Render("done"))

	case EventSkipped:
		fmt.Fprintf(f.writer, "%s\n", mutedStyle.Render("skipped"))

	case EventFailed:
		fmt.Fprintf(f.writer, "%s\n", failedStyle.Render(fmt.Sprintf("failed: %v", update.Error)))

	case EventPlanned:
		fmt.Fprintf(f.writer, "%s %s\n", plannedStyle.Render("would delete"), update.FilePath)

	case EventAborted:
		fmt.Fprintf(f.writer, " %s\n", failedStyle.Render("aborted"))
	}

	return nil
}

// Complete prints a summary in verbose mode
func (f *HumanFormatter) Complete(report *models.SweepReport) error {
	if f.writer == nil || !f.verbose {
		return nil
	}

	s := report.Stats
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "%s %s in %s\n", labelStyle.Render("Sweep"), report.Status, report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "  Scanned:      %d files, %d dirs\n", s.FilesScanned, s.DirsScanned)
	fmt.Fprintf(f.writer, "  Disposable:   %d\n", s.FilesMatched)
	if report.DryRun {
		fmt.Fprintf(f.writer, "  Would delete: %d\n", s.FilesPlanned)
	} else {
		fmt.Fprintf(f.writer, "  Deleted:      %d\n", s.FilesRemoved)
		fmt.Fprintf(f.writer, "  Declined:     %d\n", s.FilesSkipped)
		fmt.Fprintf(f.writer, "  Failed:       %d\n", s.FilesErrored)
	}
	fmt.Fprintf(f.writer, "  Whitelisted:  %d\n", s.FilesWhitelisted)
	fmt.Fprintf(f.writer, "  Kept:         %d\n", s.FilesKept)

	if len(report.Errors) > 0 {
		fmt.Fprintf(f.writer, "\nErrors:\n")
		for _, err := range report.Errors {
			fmt.Fprintf(f.writer, "  %s: %s\n", err.FilePath, err.Error)
		}
	}

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Interactive returns true: prompts interleave with narration
func (f *HumanFormatter) Interactive() bool {
	return true
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
