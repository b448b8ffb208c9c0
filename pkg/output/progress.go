package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/mclean/pkg/models"
)

const progressTemplate = `{{counters . }} files scanned  {{string . "removed"}}  {{string . "dir"}}`

// ProgressFormatter shows a counter bar instead of per-file lines. It cannot
// share the terminal with prompts, so it is only used for unattended runs.
type ProgressFormatter struct {
	mu      sync.Mutex
	writer  io.Writer
	bar     *pb.ProgressBar
	width   int
	dryRun  bool
	matched int
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter(dryRun bool) *ProgressFormatter {
	return &ProgressFormatter{dryRun: dryRun}
}

// Start initializes the bar
func (f *ProgressFormatter) Start(writer io.Writer, roots []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer

	// Keep the bar on one line when writing to a terminal
	f.width = 100
	if file, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			f.width = width
		}
	}

	f.matched = 0
	f.bar = pb.New(0).
		SetTemplateString(progressTemplate).
		SetWriter(writer).
		SetWidth(f.width).
		SetRefreshRate(100 * time.Millisecond)
	f.bar.Set("removed", f.verb(0))
	f.bar.Start()

	return nil
}

func (f *ProgressFormatter) verb(n int) string {
	if f.dryRun {
		return fmt.Sprintf("%d to delete", n)
	}
	return fmt.Sprintf("%d deleted", n)
}

// Progress updates the bar
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		return nil
	}

	switch update.Type {
	case EventScanned:
		f.bar.Increment()
	case EventEnterDir:
		f.bar.Set("dir", truncate(update.Dir, f.width/2))
	case EventRemoved, EventPlanned:
		f.matched++
		f.bar.Set("removed", f.verb(f.matched))
	}

	return nil
}

// Complete stops the bar and prints a one-line summary
func (f *ProgressFormatter) Complete(report *models.SweepReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar != nil {
		f.bar.Set("dir", "")
		f.bar.Finish()
		f.bar = nil
	}
	if f.writer == nil {
		return nil
	}

	s := report.Stats
	if report.DryRun {
		fmt.Fprintf(f.writer, "%d of %d files would be deleted (%s)\n",
			s.FilesPlanned, s.FilesScanned, report.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(f.writer, "%d of %d files deleted, %d failed (%s)\n",
			s.FilesRemoved, s.FilesScanned, s.FilesErrored, report.Duration.Round(time.Millisecond))
	}
	for _, err := range report.Errors {
		fmt.Fprintf(f.writer, "  %s: %s\n", err.FilePath, err.Error)
	}

	return nil
}

// Error stops the bar and prints the error
func (f *ProgressFormatter) Error(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Interactive returns false
func (f *ProgressFormatter) Interactive() bool {
	return false
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

// truncate shortens s from the left so the end of a path stays visible
func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
