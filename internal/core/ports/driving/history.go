package driving

import (
	"context"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

// HistoryService reads recorded ingestion runs.
type HistoryService interface {
	// List returns the most recent runs first.
	List(ctx context.Context, limit int) ([]domain.IngestRun, error)

	// Get returns one run by ID.
	Get(ctx context.Context, id string) (*domain.IngestRun, error)
}
