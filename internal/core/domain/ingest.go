package domain

import "time"

// IngestRequest describes one pipeline invocation.
type IngestRequest struct {
	// Year selects the yearly resource of the dataset.
	Year int

	// OutputPath overrides the default processed file location.
	OutputPath string

	// Progress, when set, receives download progress.
	Progress func(written, total int64)

	// OnStage, when set, is called after each pipeline stage.
	OnStage func(StageEvent)
}

// Pipeline stages in execution order.
const (
	StageResolve   = "resolve"
	StageLocate    = "locate"
	StageFetch     = "fetch"
	StageLoad      = "load"
	StageTransform = "transform"
	StageExport    = "export"
)

// Stages lists the pipeline stages in execution order.
func Stages() []string {
	return []string{StageResolve, StageLocate, StageFetch, StageLoad, StageTransform, StageExport}
}

// StageEvent reports the outcome of one pipeline stage.
type StageEvent struct {
	Stage    string
	Detail   string
	Duration time.Duration
	Err      error
}

// IngestResult summarises a completed pipeline run.
type IngestResult struct {
	RunID      string
	DatasetID  string
	Resource   Resource
	RawPath    string
	OutputPath string
	Rows       int
	Columns    int
	Bytes      int64
	Duration   time.Duration
}

// RunStatus is the terminal state of a recorded run.
type RunStatus string

// Run statuses.
const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// IngestRun is the persisted record of a pipeline invocation.
type IngestRun struct {
	ID          string
	Year        int
	DatasetID   string
	ResourceURL string
	OutputPath  string
	Rows        int
	Columns     int
	Bytes       int64
	Status      RunStatus
	Error       string
	StartedAt   time.Time
	EndedAt     time.Time
}

// Duration returns the wall-clock time of the run.
func (r IngestRun) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
