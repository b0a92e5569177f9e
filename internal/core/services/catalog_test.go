package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

func TestCatalogService(t *testing.T) {
	catalog := &mockCatalog{
		datasets: []domain.Dataset{{ID: "dvf", Title: dvfTitle}},
		detail:   dvfDetail(),
	}
	service := NewCatalogService(
		NewDatasetResolver(catalog, "q", dvfTitle, 10),
		NewResourceLocator(catalog, "txt.zip"),
	)

	id, err := service.ResolveDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dvf", id)

	resources, err := service.ListResources(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, resources, 3)
}

func TestInspectService(t *testing.T) {
	reader := &mockTableReader{table: rawTable()}
	service := NewInspectService(reader)

	table, err := service.Inspect(context.Background(), "out.parquet")

	require.NoError(t, err)
	assert.Equal(t, 6, table.NumColumns())
	assert.Equal(t, []string{"out.parquet"}, reader.paths)
}

func TestInspectService_Error(t *testing.T) {
	boom := errors.New("not parquet")
	_, err := NewInspectService(&mockTableReader{err: boom}).Inspect(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestExporter_Export(t *testing.T) {
	writer := &mockTableWriter{size: 10}
	table := rawTable()

	n, err := NewExporter(writer).Export(context.Background(), table, "out.parquet")

	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.Same(t, table, writer.written)
}

func TestExporter_Export_Error(t *testing.T) {
	boom := errors.New("permission denied")

	_, err := NewExporter(&mockTableWriter{err: boom}).Export(context.Background(), rawTable(), "out.parquet")

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "out.parquet")
}
