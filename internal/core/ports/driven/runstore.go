package driven

import (
	"context"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

// RunStore persists ingestion history.
type RunStore interface {
	// Save stores or updates a run.
	Save(ctx context.Context, run domain.IngestRun) error

	// Get retrieves a run by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.IngestRun, error)

	// List returns the most recent runs first, at most limit entries.
	// A limit of zero or less returns all runs.
	List(ctx context.Context, limit int) ([]domain.IngestRun, error)
}
