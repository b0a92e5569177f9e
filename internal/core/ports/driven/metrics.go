package driven

import "time"

// PipelineMetrics records per-stage measurements of a run.
type PipelineMetrics interface {
	// ObserveStage records how long a stage took and whether it failed.
	ObserveStage(stage string, d time.Duration, err error)

	// SetRows records the row and column counts of the exported table.
	SetRows(rows, columns int)

	// AddBytes records bytes moved by a stage ("download" or "export").
	AddBytes(stage string, n int64)

	// Flush persists the collected metrics.
	Flush() error
}
