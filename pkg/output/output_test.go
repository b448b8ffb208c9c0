package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/mclean/pkg/models"
)

func sampleReport(dryRun bool) *models.SweepReport {
	return &models.SweepReport{
		OperationID: "run-1",
		Roots:       []string{"."},
		Flags:       models.RuleFlags{Latex: true, Force: true},
		DryRun:      dryRun,
		Duration:    1500 * time.Millisecond,
		Stats: models.Statistics{
			DirsScanned:  2,
			FilesScanned: 10,
			FilesMatched: 3,
			FilesRemoved: 2,
			FilesErrored: 1,
		},
		Removed: []string{"a.bak", "paper/report.aux"},
		Errors: []models.SweepError{
			{FilePath: "locked.old", Error: "permission denied"},
		},
		Status: models.StatusPartial,
	}
}

func TestHumanFormatter_Narration(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter(false, false)
	if err := f.Start(&buf, []string{"."}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	f.Progress(ProgressUpdate{Type: EventEnterDir, Dir: "src"})
	f.Progress(ProgressUpdate{Type: EventScanned, Dir: "src", Name: "a.c"})
	f.Progress(ProgressUpdate{Type: EventRemoved, FilePath: "src/a.bak"})
	f.Progress(ProgressUpdate{Type: EventSkipped, FilePath: "src/b.bak"})
	f.Progress(ProgressUpdate{Type: EventFailed, FilePath: "src/c.bak", Error: errors.New("permission denied")})
	f.Progress(ProgressUpdate{Type: EventWhitelisted, Name: "ORIG_HEAD~"})
	f.Progress(ProgressUpdate{Type: EventKept, Name: "notes.log"})
	f.Progress(ProgressUpdate{Type: EventPlanned, FilePath: "src/d.bak"})
	f.Progress(ProgressUpdate{Type: EventAborted})

	out := buf.String()
	for _, want := range []string{
		"entering src\n",
		"done",
		"skipped",
		"failed: permission denied",
		"ORIG_HEAD~ whitelisted -> ",
		"notes.log kept -> ",
		"would delete",
		"src/d.bak",
		"aborted",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "a.c") {
		t.Error("scanned events must not be narrated")
	}

	// Not verbose: no summary
	buf.Reset()
	f.Complete(sampleReport(false))
	if buf.Len() != 0 {
		t.Errorf("Complete() without verbose wrote %q", buf.String())
	}
}

func TestHumanFormatter_QuietAndVerbose(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter(true, true)
	f.Start(&buf, nil)

	f.Progress(ProgressUpdate{Type: EventEnterDir, Dir: "src"})
	if strings.Contains(buf.String(), "entering") {
		t.Error("quiet formatter printed entering line")
	}

	f.Progress(ProgressUpdate{Type: EventDirError, Dir: "secret", Error: os.ErrPermission})
	if !strings.Contains(buf.String(), "cannot read secret") {
		t.Errorf("verbose formatter should report directory errors: %q", buf.String())
	}

	f.Complete(sampleReport(false))
	out := buf.String()
	for _, want := range []string{"partial", "10 files, 2 dirs", "Deleted:      2", "locked.old: permission denied"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()
	f.Start(&buf, []string{"."})

	f.Progress(ProgressUpdate{Type: EventEnterDir, Dir: "."})
	f.Progress(ProgressUpdate{Type: EventScanned, Name: "a.bak"})
	f.Progress(ProgressUpdate{Type: EventRemoved, FilePath: "a.bak", Group: models.GroupGeneric})
	f.Progress(ProgressUpdate{Type: EventFailed, FilePath: "locked.old", Group: models.GroupGeneric, Error: errors.New("permission denied")})

	if buf.Len() != 0 {
		t.Fatal("JSON formatter must not write before Complete()")
	}
	if err := f.Complete(sampleReport(false)); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	var data JSONReportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if data.RunID != "run-1" || data.Status != "partial" || !data.Flags.Latex {
		t.Errorf("unexpected report: %+v", data)
	}
	if data.Stats.FilesRemoved != 2 || len(data.Removed) != 2 || len(data.Errors) != 1 {
		t.Errorf("unexpected stats: %+v", data)
	}
	if len(data.Events) != 2 {
		t.Fatalf("got %d events, want 2 (directory and scan events dropped)", len(data.Events))
	}
	if data.Events[0].Type != EventRemoved || data.Events[0].Group != "generic" {
		t.Errorf("first event = %+v", data.Events[0])
	}
	if data.Events[1].Error != "permission denied" {
		t.Errorf("second event = %+v", data.Events[1])
	}
	if f.Interactive() {
		t.Error("JSON formatter must not be interactive")
	}
}

func TestProgressFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewProgressFormatter(true)
	if err := f.Start(&buf, []string{"."}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	f.Progress(ProgressUpdate{Type: EventEnterDir, Dir: "src"})
	f.Progress(ProgressUpdate{Type: EventScanned})
	f.Progress(ProgressUpdate{Type: EventPlanned, FilePath: "src/a.bak"})

	report := sampleReport(true)
	report.Stats.FilesPlanned = 1
	if err := f.Complete(report); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !strings.Contains(buf.String(), "1 of 10 files would be deleted") {
		t.Errorf("missing summary: %q", buf.String())
	}

	// Events after Complete are ignored
	if err := f.Progress(ProgressUpdate{Type: EventScanned}); err != nil {
		t.Errorf("Progress() after Complete error = %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("a/very/long/path/name", 10); got != "...th/name" {
		t.Errorf("truncate() = %q, want %q", got, "...th/name")
	}
}

func TestWriteSweepReport(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("Human", func(t *testing.T) {
		path := filepath.Join(tempDir, "report.txt")
		if err := WriteSweepReport(sampleReport(false), path, "human", nil); err != nil {
			t.Fatalf("WriteSweepReport() error = %v", err)
		}
		data, _ := os.ReadFile(path)
		out := string(data)
		for _, want := range []string{"Deleted files", "Total: 2", "paper/report.aux", "locked.old: permission denied"} {
			if !strings.Contains(out, want) {
				t.Errorf("report missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(tempDir, "report.json")
		report := sampleReport(true)
		report.Removed = nil
		if err := WriteSweepReport(report, path, "json", nil); err != nil {
			t.Fatalf("WriteSweepReport() error = %v", err)
		}
		data, _ := os.ReadFile(path)
		var parsed map[string]interface{}
		if err := json.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		files, ok := parsed["files"].([]interface{})
		if !ok || len(files) != 0 {
			t.Errorf("files = %v, want empty list", parsed["files"])
		}
		if parsed["dry_run"] != true {
			t.Errorf("dry_run = %v", parsed["dry_run"])
		}
	})

	t.Run("Fallback", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteSweepReport(sampleReport(false), "", "human", &buf); err != nil {
			t.Fatalf("WriteSweepReport() error = %v", err)
		}
		if !strings.Contains(buf.String(), "Total: 2") {
			t.Errorf("fallback writer did not receive the report:\n%s", buf.String())
		}
	})

	t.Run("WriteFailure", func(t *testing.T) {
		w := &failingWriter{allowed: 1}
		err := WriteSweepReport(sampleReport(false), "", "human", w)
		if !errors.Is(err, errDiskFull) {
			t.Errorf("WriteSweepReport() error = %v, want %v", err, errDiskFull)
		}
		if w.calls != 2 {
			t.Errorf("writes after the first failure: %d calls, want 2", w.calls)
		}
	})

	t.Run("BadPath", func(t *testing.T) {
		if err := WriteSweepReport(sampleReport(false), filepath.Join(tempDir, "missing", "r.txt"), "human", nil); err == nil {
			t.Error("WriteSweepReport() should fail for an unwritable path")
		}
	})
}

var errDiskFull = errors.New("no space left on device")

// failingWriter accepts a number of writes and then fails
type failingWriter struct {
	allowed int
	calls   int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls > w.allowed {
		return 0, errDiskFull
	}
	return len(p), nil
}
