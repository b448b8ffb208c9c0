package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewFileLogger(t *testing.T) {
	tempDir := t.TempDir()

	// Use a nested path that doesn't exist
	logPath := filepath.Join(tempDir, "nested", "dir", "sweep.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   logPath,
		Format: FormatText,
		Level:  InfoLevel,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}
}

func TestFileLogger_LogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatText, WarnLevel)
	ctx := context.Background()

	logger.Debug(ctx, "debug message", nil)
	logger.Info(ctx, "info message", nil)
	logger.Warn(ctx, "warn message", nil)
	logger.Error(ctx, "error message", nil, nil)

	content := buf.String()
	if strings.Contains(content, "debug message") || strings.Contains(content, "info message") {
		t.Errorf("messages below WARN were written: %q", content)
	}
	if !strings.Contains(content, "[WARN] warn message") {
		t.Errorf("WARN message missing: %q", content)
	}
	if !strings.Contains(content, "[ERROR] error message") {
		t.Errorf("ERROR message missing: %q", content)
	}
}

func TestFileLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatText, DebugLevel)

	logger.Error(context.Background(), "delete failed", errors.New("permission denied"), Fields{
		"path":  "src/a.o",
		"group": "orphan",
	})

	line := buf.String()
	if !strings.HasSuffix(line, "\n") {
		t.Error("text line should end with a newline")
	}
	if !strings.Contains(line, `[ERROR] delete failed error="permission denied" group=orphan path=src/a.o`) {
		t.Errorf("unexpected text line: %q", line)
	}
}

func TestFileLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatJSON, InfoLevel)

	logger.Info(context.Background(), "removed", Fields{"path": "a.bak"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if entry["level"] != "INFO" || entry["message"] != "removed" || entry["path"] != "a.bak" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestFileLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger(&buf, FormatText, InfoLevel)
	run := base.WithFields(Fields{"run_id": "r1"})

	run.Info(context.Background(), "entering", Fields{"dir": "src"})
	base.Info(context.Background(), "plain", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "dir=src run_id=r1") {
		t.Errorf("derived logger line = %q", lines[0])
	}
	if strings.Contains(lines[1], "run_id") {
		t.Errorf("WithFields leaked into the parent: %q", lines[1])
	}
}

func TestFileLogger_Rotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "sweep.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:       logPath,
		Format:     FormatText,
		Level:      InfoLevel,
		MaxSize:    100,
		MaxBackups: 2,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		logger.Info(ctx, "a message long enough to trigger rotation after a few lines", nil)
	}
	logger.Close()

	if _, err := os.Stat(logPath + ".1"); err != nil {
		t.Errorf("backup .1 missing: %v", err)
	}
	if _, err := os.Stat(logPath + ".2"); err != nil {
		t.Errorf("backup .2 missing: %v", err)
	}
	if _, err := os.Stat(logPath + ".3"); !os.IsNotExist(err) {
		t.Error("backup .3 should have been pruned")
	}
}

func TestFileLogger_CloseIsIdempotent(t *testing.T) {
	logger, err := NewFileLogger(FileLoggerConfig{Path: filepath.Join(t.TempDir(), "x.log")})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	// Writes after close are dropped
	logger.Info(context.Background(), "late", nil)
}

func TestFileLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatText, InfoLevel)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.WithFields(Fields{"worker": i}).Info(ctx, "tick", nil)
			}
		}()
	}
	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 100 {
		t.Errorf("got %d lines, want 100", n)
	}
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	ctx := context.Background()

	logger.Debug(ctx, "x", nil)
	logger.Info(ctx, "x", nil)
	logger.Warn(ctx, "x", nil)
	logger.Error(ctx, "x", errors.New("e"), nil)

	if logger.WithFields(Fields{"a": 1}) != Logger(logger) {
		t.Error("WithFields() should return the same null logger")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"DEBUG", DebugLevel, false},
		{"info", InfoLevel, false},
		{"", InfoLevel, false},
		{"warning", WarnLevel, false},
		{"Error", ErrorLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Errorf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
