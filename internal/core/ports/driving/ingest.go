package driving

import (
	"context"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

// IngestService runs the DVF ingestion pipeline.
type IngestService interface {
	// Ingest resolves, downloads, transforms and exports one year of data.
	// The pipeline stops at the first failing stage.
	Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error)

	// DefaultOutputPath returns the output file used when the request
	// does not name one.
	DefaultOutputPath(year int) string
}

// CatalogService exposes dataset discovery on its own.
type CatalogService interface {
	// ResolveDataset returns the ID of the DVF dataset.
	ResolveDataset(ctx context.Context) (string, error)

	// ListResources returns every archived text resource of the dataset.
	ListResources(ctx context.Context, datasetID string) ([]domain.Resource, error)
}

// InspectService reads exported files back.
type InspectService interface {
	// Inspect loads a columnar file into memory.
	Inspect(ctx context.Context, path string) (*domain.Table, error)
}
