package driven

import (
	"context"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

// Catalog queries an open-data portal.
type Catalog interface {
	// SearchDatasets runs a free-text search and returns the first page
	// of results, at most pageSize entries.
	SearchDatasets(ctx context.Context, query string, pageSize int) ([]domain.Dataset, error)

	// GetDataset returns a dataset with all its resources in portal order.
	GetDataset(ctx context.Context, id string) (*domain.DatasetDetail, error)
}
