package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
)

// ResourceLocator picks the yearly archive among a dataset's resources.
type ResourceLocator struct {
	catalog driven.Catalog
	format  string
}

// NewResourceLocator creates a locator accepting resources of format.
func NewResourceLocator(catalog driven.Catalog, format string) *ResourceLocator {
	return &ResourceLocator{catalog: catalog, format: format}
}

// Locate returns the first resource, in portal order, whose title contains
// the year and whose format matches exactly.
func (l *ResourceLocator) Locate(ctx context.Context, datasetID string, year int) (*domain.Resource, error) {
	detail, err := l.catalog.GetDataset(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}

	needle := strconv.Itoa(year)
	for _, res := range detail.Resources {
		if res.Matches(needle, l.format) {
			found := res
			return &found, nil
		}
	}

	return nil, fmt.Errorf("%w: %d", domain.ErrYearNotFound, year)
}

// List returns every resource of the dataset in the configured format.
func (l *ResourceLocator) List(ctx context.Context, datasetID string) ([]domain.Resource, error) {
	detail, err := l.catalog.GetDataset(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}

	result := make([]domain.Resource, 0, len(detail.Resources))
	for _, res := range detail.Resources {
		if res.Format == l.format {
			result = append(result, res)
		}
	}
	return result, nil
}
