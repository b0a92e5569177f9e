package driven

import (
	"context"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

// TableReader loads a file into a table. Delimited text readers load
// every column as text and keep empty fields as empty strings, not nulls.
type TableReader interface {
	// ReadTable loads the file at path.
	ReadTable(ctx context.Context, path string) (*domain.Table, error)
}

// TableWriter serialises typed tables.
type TableWriter interface {
	// WriteTable writes the table to path and returns the file size.
	WriteTable(ctx context.Context, table *domain.Table, path string) (int64, error)
}
