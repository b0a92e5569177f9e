package services

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// Exporter writes the typed table to its columnar destination.
type Exporter struct {
	writer driven.TableWriter
}

// NewExporter creates a new exporter.
func NewExporter(writer driven.TableWriter) *Exporter {
	return &Exporter{writer: writer}
}

// Export writes table to path and returns the written size in bytes.
func (e *Exporter) Export(ctx context.Context, table *domain.Table, path string) (int64, error) {
	n, err := e.writer.WriteTable(ctx, table, path)
	if err != nil {
		return 0, fmt.Errorf("export %s: %w", path, err)
	}
	logger.Info("Saved %s (%s)", path, humanize.Bytes(uint64(n)))
	return n, nil
}
