package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat parses a log format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q (use: text, json)", s)
	}
}

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

// sink is the file shared by a logger and everything derived from it
type sink struct {
	mu     sync.Mutex
	config FileLoggerConfig
	file   *os.File
	writer io.Writer
	size   int64
}

// FileLogger implements Logger with file output
type FileLogger struct {
	sink   *sink
	fields Fields
}

// NewFileLogger opens (or creates) the log file in append mode
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &FileLogger{
		sink: &sink{config: config, file: file, writer: file, size: info.Size()},
	}, nil
}

// NewWriterLogger logs to an arbitrary writer without rotation
func NewWriterLogger(w io.Writer, format Format, level Level) *FileLogger {
	return &FileLogger{
		sink: &sink{config: FileLoggerConfig{Format: format, Level: level}, writer: w},
	}
}

// Debug logs a debug message
func (l *FileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *FileLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *FileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *FileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger writing to the same file with additional fields
func (l *FileLogger) WithFields(fields Fields) Logger {
	return &FileLogger{sink: l.sink, fields: merge(l.fields, fields)}
}

// Close closes the underlying file. Derived loggers share it.
func (l *FileLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.file == nil {
		return nil
	}
	err := l.sink.file.Close()
	l.sink.file = nil
	l.sink.writer = io.Discard
	return err
}

func (l *FileLogger) log(level Level, msg string, err error, fields Fields) {
	s := l.sink
	if level < s.config.Level {
		return
	}

	all := merge(l.fields, fields)

	var line []byte
	if s.config.Format == FormatJSON {
		var jsonErr error
		line, jsonErr = formatJSON(level, msg, err, all)
		if jsonErr != nil {
			return
		}
	} else {
		line = formatText(level, msg, err, all)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.MaxSize > 0 && s.size >= s.config.MaxSize {
		s.rotate()
	}
	n, _ := s.writer.Write(line)
	s.size += int64(n)
}

func merge(base, extra Fields) Fields {
	out := make(Fields, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func formatJSON(level Level, msg string, err error, fields Fields) ([]byte, error) {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     level.String(),
		"message":   msg,
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	for k, v := range fields {
		entry[k] = v
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return nil, jsonErr
	}
	return append(data, '\n'), nil
}

func formatText(level Level, msg string, err error, fields Fields) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", time.Now().UTC().Format("2006-01-02T15:04:05.000Z"), level, msg)

	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}

	b.WriteByte('\n')
	return []byte(b.String())
}

// rotate renames path -> path.1 -> path.2 ... and reopens path.
// Callers hold s.mu.
func (s *sink) rotate() {
	if s.file == nil {
		return
	}
	s.file.Close()

	path := s.config.Path
	for i := s.config.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("%s.%d", path, i+1))
	}
	os.Rename(path, path+".1")

	if s.config.MaxBackups > 0 {
		os.Remove(fmt.Sprintf("%s.%d", path, s.config.MaxBackups+1))
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		s.file = nil
		s.writer = io.Discard
		return
	}
	s.file = file
	s.writer = file
	s.size = 0
}
