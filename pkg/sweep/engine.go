// Package sweep walks directory trees and deletes the files a classifier
// marks disposable, asking a confirmer before each deletion.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sdejongh/mclean/pkg/clean"
	"github.com/sdejongh/mclean/pkg/keep"
	"github.com/sdejongh/mclean/pkg/logging"
	"github.com/sdejongh/mclean/pkg/models"
	"github.com/sdejongh/mclean/pkg/output"
	"github.com/sdejongh/mclean/pkg/prompt"
	"github.com/sdejongh/mclean/pkg/storage"
)

// Engine orchestrates the sweep operation
type Engine struct {
	backend    storage.Backend
	classifier *clean.Classifier
	whitelist  *clean.Whitelist
	confirmer  prompt.Confirmer
	formatter  output.Formatter
	logger     logging.Logger
	operation  *models.SweepOperation
	out        io.Writer
}

// NewEngine creates a new sweep engine. The formatter writes to stdout
// unless SetOutput is called.
func NewEngine(
	backend storage.Backend,
	classifier *clean.Classifier,
	whitelist *clean.Whitelist,
	confirmer prompt.Confirmer,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.SweepOperation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		backend:    backend,
		classifier: classifier,
		whitelist:  whitelist,
		confirmer:  confirmer,
		formatter:  formatter,
		logger:     logger,
		operation:  operation,
		out:        os.Stdout,
	}
}

// SetOutput sets the writer handed to the formatter
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// Run sweeps every root in order. Deletion failures and unreadable
// directories are recorded in the report and do not stop the run; an
// aborted confirmation or a cancelled context stops it with status aborted.
func (e *Engine) Run(ctx context.Context) (*models.SweepReport, error) {
	if err := e.operation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep operation: %w", err)
	}
	if e.backend == nil || e.classifier == nil || e.confirmer == nil {
		return nil, errors.New("sweep engine is missing a backend, classifier or confirmer")
	}

	startTime := time.Now()
	report := &models.SweepReport{
		OperationID: e.operation.ID,
		Roots:       e.operation.Roots,
		Flags:       e.classifier.Flags(),
		DryRun:      e.operation.DryRun,
		StartTime:   startTime,
		Status:      models.StatusSuccess,
	}

	logger := e.logger.WithFields(logging.Fields{"run_id": e.operation.ID})
	logger.Info(ctx, "Starting sweep", logging.Fields{
		"roots":    e.operation.Roots,
		"diff":     report.Flags.Diff,
		"compiled": report.Flags.Compiled,
		"latex":    report.Flags.Latex,
		"force":    report.Flags.Force,
		"dry_run":  e.operation.DryRun,
	})

	if e.formatter != nil {
		if err := e.formatter.Start(e.out, e.operation.Roots); err != nil {
			return nil, fmt.Errorf("failed to start output: %w", err)
		}
	}

	var runErr error
	for _, root := range e.operation.Roots {
		if runErr = e.sweepRoot(ctx, logger, root, report); runErr != nil {
			break
		}
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	switch {
	case runErr != nil && (errors.Is(runErr, prompt.ErrAborted) || ctx.Err() != nil):
		report.Status = models.StatusAborted
		e.emit(output.ProgressUpdate{Type: output.EventAborted})
		logger.Warn(ctx, "Sweep aborted", logging.Fields{"files_removed": report.Stats.FilesRemoved})
		runErr = nil
	case runErr != nil:
		if e.formatter != nil {
			e.formatter.Error(runErr)
		}
		logger.Error(ctx, "Sweep failed", runErr, nil)
		return report, runErr
	case len(report.Errors) > 0:
		report.Status = models.StatusPartial
	}

	if e.formatter != nil {
		e.formatter.Complete(report)
	}

	logger.Info(ctx, "Sweep completed", logging.Fields{
		"duration":          report.Duration.String(),
		"status":            report.Status,
		"dirs_scanned":      report.Stats.DirsScanned,
		"files_scanned":     report.Stats.FilesScanned,
		"files_matched":     report.Stats.FilesMatched,
		"files_removed":     report.Stats.FilesRemoved,
		"files_skipped":     report.Stats.FilesSkipped,
		"files_whitelisted": report.Stats.FilesWhitelisted,
		"files_kept":        report.Stats.FilesKept,
		"files_planned":     report.Stats.FilesPlanned,
		"files_errored":     report.Stats.FilesErrored,
	})

	return report, runErr
}

// sweepRoot walks one root. A keep file that exists but cannot be read
// skips the root entirely rather than risk deleting protected files.
func (e *Engine) sweepRoot(ctx context.Context, logger logging.Logger, root string, report *models.SweepReport) error {
	keepList, err := keep.Load(root, e.operation.KeepFile)
	if err != nil {
		logger.Warn(ctx, "Skipping root with unreadable keep file", logging.Fields{"root": root, "error": err.Error()})
		e.emit(output.ProgressUpdate{Type: output.EventDirError, Dir: root, Error: err})
		return nil
	}
	if !keepList.Empty() {
		logger.Debug(ctx, "Loaded keep file", logging.Fields{"root": root, "name": e.operation.KeepFile})
	}

	return e.backend.Walk(ctx, root, func(dir string, files []string, err error) error {
		if err != nil {
			logger.Warn(ctx, "Skipping unreadable directory", logging.Fields{"dir": dir, "error": err.Error()})
			e.emit(output.ProgressUpdate{Type: output.EventDirError, Dir: dir, Error: err})
			return nil
		}

		report.Stats.DirsScanned++
		e.emit(output.ProgressUpdate{Type: output.EventEnterDir, Dir: dir})

		for _, name := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.processFile(ctx, logger, keepList, models.Candidate{Name: name, Dir: dir}, report); err != nil {
				return err
			}
		}
		return nil
	})
}

// processFile classifies one file and, if disposable, runs it through the
// vetoes, the confirmer and the backend
func (e *Engine) processFile(ctx context.Context, logger logging.Logger, keepList *keep.List, candidate models.Candidate, report *models.SweepReport) error {
	report.Stats.FilesScanned++
	e.emit(output.ProgressUpdate{Type: output.EventScanned, Dir: candidate.Dir, Name: candidate.Name})

	verdict := e.classifier.Classify(candidate.Name, candidate.Dir)
	if !verdict.Disposable {
		return nil
	}
	report.Stats.FilesMatched++

	startTime := time.Now()
	task := NewFileTask(candidate, verdict)
	path := candidate.Path()

	task.ResolvedPath = path
	if resolved, err := e.backend.Resolve(path); err == nil {
		task.ResolvedPath = resolved
	}

	switch {
	case e.whitelist != nil && e.whitelist.Vetoes(task.ResolvedPath):
		task.MarkCompleted(ResultWhitelisted, time.Since(startTime))

	case keepList.Keeps(path):
		task.MarkCompleted(ResultKept, time.Since(startTime))

	case e.operation.DryRun:
		task.MarkCompleted(ResultPlanned, time.Since(startTime))

	default:
		ok, err := e.confirmer.Confirm(ctx, "delete "+candidate.Name)
		if err != nil {
			return err
		}
		if !ok {
			task.MarkCompleted(ResultSkipped, time.Since(startTime))
			break
		}
		if err := e.backend.Delete(ctx, path); err != nil {
			task.MarkError(err, time.Since(startTime))
			break
		}
		task.MarkCompleted(ResultRemoved, time.Since(startTime))
	}

	e.record(ctx, logger, task, report)
	return nil
}

// record applies a finished task to the report, the formatter and the log
func (e *Engine) record(ctx context.Context, logger logging.Logger, task *FileTask, report *models.SweepReport) {
	path := task.Candidate.Path()
	update := output.ProgressUpdate{
		Dir:      task.Candidate.Dir,
		Name:     task.Candidate.Name,
		FilePath: path,
		Group:    task.Verdict.Group,
	}
	fields := logging.Fields{"path": path, "group": string(task.Verdict.Group)}

	switch task.Result {
	case ResultWhitelisted:
		report.Stats.FilesWhitelisted++
		update.Type = output.EventWhitelisted
		logger.Debug(ctx, "Whitelisted", fields)

	case ResultKept:
		report.Stats.FilesKept++
		update.Type = output.EventKept
		logger.Debug(ctx, "Kept by keep file", fields)

	case ResultPlanned:
		report.Stats.FilesPlanned++
		report.Removed = append(report.Removed, path)
		update.Type = output.EventPlanned
		logger.Info(ctx, "Would delete", fields)

	case ResultSkipped:
		report.Stats.FilesSkipped++
		update.Type = output.EventSkipped
		logger.Debug(ctx, "Declined", fields)

	case ResultRemoved:
		report.Stats.FilesRemoved++
		report.Removed = append(report.Removed, path)
		update.Type = output.EventRemoved
		logger.Info(ctx, "Deleted", fields)

	case ResultFailed:
		report.Stats.FilesErrored++
		report.Errors = append(report.Errors, models.SweepError{
			FilePath:  path,
			Error:     task.Error.Error(),
			Timestamp: time.Now(),
		})
		update.Type = output.EventFailed
		update.Error = task.Error
		logger.Error(ctx, "Failed to delete", task.Error, fields)
	}

	e.emit(update)
}

func (e *Engine) emit(update output.ProgressUpdate) {
	if e.formatter != nil {
		e.formatter.Progress(update)
	}
}
