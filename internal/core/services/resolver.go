package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// DatasetResolver finds the DVF dataset in the catalog.
type DatasetResolver struct {
	catalog  driven.Catalog
	query    string
	title    string
	pageSize int
}

// NewDatasetResolver creates a resolver searching for query and accepting
// only the entry titled exactly title.
func NewDatasetResolver(catalog driven.Catalog, query, title string, pageSize int) *DatasetResolver {
	return &DatasetResolver{
		catalog:  catalog,
		query:    query,
		title:    title,
		pageSize: pageSize,
	}
}

// Resolve returns the dataset ID. Only the first page of search results
// is examined.
func (r *DatasetResolver) Resolve(ctx context.Context) (string, error) {
	datasets, err := r.catalog.SearchDatasets(ctx, r.query, r.pageSize)
	if err != nil {
		return "", fmt.Errorf("search datasets: %w", err)
	}

	for _, d := range datasets {
		if d.Title == r.title {
			logger.Debug("Resolved dataset %q to %s", d.Title, d.ID)
			return d.ID, nil
		}
	}

	logger.Debug("No dataset titled %q among %d results", r.title, len(datasets))
	return "", domain.ErrDatasetNotFound
}
