package sweep

import (
	"time"

	"github.com/sdejongh/mclean/pkg/models"
)

// TaskResult represents what happened to a disposable file
type TaskResult string

const (
	// ResultRemoved indicates the file was deleted
	ResultRemoved TaskResult = "removed"
	// ResultSkipped indicates the user declined the deletion
	ResultSkipped TaskResult = "skipped"
	// ResultWhitelisted indicates the whitelist vetoed the deletion
	ResultWhitelisted TaskResult = "whitelisted"
	// ResultKept indicates the keep file vetoed the deletion
	ResultKept TaskResult = "kept"
	// ResultPlanned indicates a dry run would have deleted the file
	ResultPlanned TaskResult = "planned"
	// ResultFailed indicates the deletion failed
	ResultFailed TaskResult = "failed"
)

// FileTask tracks one disposable file through the veto and confirmation steps
type FileTask struct {
	Candidate models.Candidate
	Verdict   models.Verdict

	// ResolvedPath is the absolute, symlink-resolved path checked by the whitelist
	ResolvedPath string

	Result   TaskResult
	Error    error
	Duration time.Duration
}

// NewFileTask creates a task for a file the classifier marked disposable
func NewFileTask(candidate models.Candidate, verdict models.Verdict) *FileTask {
	return &FileTask{
		Candidate: candidate,
		Verdict:   verdict,
	}
}

// MarkCompleted records the outcome of the task
func (t *FileTask) MarkCompleted(result TaskResult, duration time.Duration) {
	t.Result = result
	t.Duration = duration
}

// MarkError marks the task as failed with an error
func (t *FileTask) MarkError(err error, duration time.Duration) {
	t.Result = ResultFailed
	t.Error = err
	t.Duration = duration
}
