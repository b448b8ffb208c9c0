package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/mclean/pkg/models"
)

// WriteSweepReport writes the list of deleted (or, in a dry run, disposable)
// files to path, or to fallback when path is empty. Format can be "human" or
// "json".
func WriteSweepReport(report *models.SweepReport, path string, format string, fallback io.Writer) (err error) {
	w := fallback
	if path != "" {
		file, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("failed to create report file: %w", cerr)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close report file: %w", cerr)
			}
		}()
		w = file
	}
	if w == nil {
		w = os.Stdout
	}

	switch format {
	case "json":
		return writeReportJSON(report, w)
	default: // "human"
		return writeReportHuman(report, w)
	}
}

// errWriter keeps the first write error and turns later writes into no-ops
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func writeReportHuman(report *models.SweepReport, w io.Writer) error {
	title := "Deleted files"
	if report.DryRun {
		title = "Disposable files (dry run)"
	}

	ew := &errWriter{w: w}
	ew.printf("%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	ew.printf("Run: %s\n", report.OperationID)
	ew.printf("Generated: %s\n", time.Now().Format(time.RFC3339))
	ew.printf("Roots: %v\n", report.Roots)
	ew.printf("Status: %s\n\n", report.Status)

	ew.printf("Total: %d\n\n", len(report.Removed))
	for _, path := range report.Removed {
		ew.printf("  %s\n", path)
	}

	if len(report.Errors) > 0 {
		ew.printf("\nFailed (%d):\n", len(report.Errors))
		for _, err := range report.Errors {
			ew.printf("  %s: %s\n", err.FilePath, err.Error)
		}
	}

	if ew.err != nil {
		return fmt.Errorf("failed to write report: %w", ew.err)
	}
	return nil
}

type jsonSweepReport struct {
	RunID     string          `json:"run_id"`
	Generated string          `json:"generated"`
	Roots     []string        `json:"roots"`
	DryRun    bool            `json:"dry_run"`
	Status    string          `json:"status"`
	Files     []string        `json:"files"`
	Errors    []JSONErrorData `json:"errors,omitempty"`
}

func writeReportJSON(report *models.SweepReport, w io.Writer) error {
	data := jsonSweepReport{
		RunID:     report.OperationID,
		Generated: time.Now().Format(time.RFC3339),
		Roots:     report.Roots,
		DryRun:    report.DryRun,
		Status:    string(report.Status),
		Files:     report.Removed,
	}
	if data.Files == nil {
		data.Files = []string{}
	}
	for _, err := range report.Errors {
		data.Errors = append(data.Errors, JSONErrorData{Path: err.FilePath, Error: err.Error})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
