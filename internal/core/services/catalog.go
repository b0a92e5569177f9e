package services

import (
	"context"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driving"
)

// Ensure the services implement their interfaces.
var (
	_ driving.CatalogService = (*CatalogService)(nil)
	_ driving.InspectService = (*InspectService)(nil)
)

// CatalogService exposes dataset discovery without downloading.
type CatalogService struct {
	resolver *DatasetResolver
	locator  *ResourceLocator
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(resolver *DatasetResolver, locator *ResourceLocator) *CatalogService {
	return &CatalogService{resolver: resolver, locator: locator}
}

// ResolveDataset returns the ID of the DVF dataset.
func (s *CatalogService) ResolveDataset(ctx context.Context) (string, error) {
	return s.resolver.Resolve(ctx)
}

// ListResources returns the dataset's resources in the configured format.
func (s *CatalogService) ListResources(ctx context.Context, datasetID string) ([]domain.Resource, error) {
	return s.locator.List(ctx, datasetID)
}

// InspectService loads exported files back into memory.
type InspectService struct {
	reader driven.TableReader
}

// NewInspectService creates a new inspect service.
func NewInspectService(reader driven.TableReader) *InspectService {
	return &InspectService{reader: reader}
}

// Inspect loads the file at path.
func (s *InspectService) Inspect(ctx context.Context, path string) (*domain.Table, error) {
	return s.reader.ReadTable(ctx, path)
}
