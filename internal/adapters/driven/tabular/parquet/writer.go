package parquet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// DefaultBatchRows is the number of rows converted to Arrow per record batch.
const DefaultBatchRows = 65536

// Ensure Writer implements the interface.
var _ driven.TableWriter = (*Writer)(nil)

// Writer serialises domain tables to Parquet.
type Writer struct {
	allocator   memory.Allocator
	compression compress.Compression
	batchRows   int
}

// NewWriter creates a Parquet writer using the named compression codec
// and record batches of batchRows rows (DefaultBatchRows when <= 0).
func NewWriter(compression string, batchRows int) (*Writer, error) {
	codec, err := Codec(compression)
	if err != nil {
		return nil, err
	}
	if batchRows <= 0 {
		batchRows = DefaultBatchRows
	}
	return &Writer{
		allocator:   memory.NewGoAllocator(),
		compression: codec,
		batchRows:   batchRows,
	}, nil
}

// WriteTable writes table to path, creating parent directories, and
// returns the size of the written file.
func (w *Writer) WriteTable(ctx context.Context, table *domain.Table, path string) (int64, error) {
	if err := table.Validate(); err != nil {
		return 0, err
	}
	schema, err := tableSchema(table)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}

	props := parquet.NewWriterProperties(
		parquet.WithCompression(w.compression),
		parquet.WithDictionaryDefault(true),
		parquet.WithCreatedBy("dvf-ingest"),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	fw, err := pqarrow.NewFileWriter(schema, file, props, arrowProps)
	if err != nil {
		file.Close()
		return 0, fmt.Errorf("creating parquet writer: %w", err)
	}

	rows := table.NumRows()
	for start := 0; start < rows; start += w.batchRows {
		if err := ctx.Err(); err != nil {
			fw.Close()
			return 0, err
		}
		end := min(start+w.batchRows, rows)

		rec, err := w.buildRecord(schema, table, start, end)
		if err != nil {
			fw.Close()
			return 0, err
		}
		err = fw.Write(rec)
		rec.Release()
		if err != nil {
			fw.Close()
			return 0, fmt.Errorf("writing rows %d-%d: %w", start, end, err)
		}
	}

	// Closing the Parquet writer also closes the file.
	if err := fw.Close(); err != nil {
		return 0, fmt.Errorf("closing parquet writer: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	logger.Debug("wrote %d rows x %d columns to %s", rows, table.NumColumns(), path)
	return info.Size(), nil
}

// buildRecord converts rows [start, end) of the table into an Arrow record.
func (w *Writer) buildRecord(schema *arrow.Schema, table *domain.Table, start, end int) (arrow.Record, error) {
	arrays := make([]arrow.Array, 0, table.NumColumns())
	release := func() {
		for _, a := range arrays {
			a.Release()
		}
	}

	for _, c := range table.Columns {
		arr, err := w.buildArray(c, start, end)
		if err != nil {
			release()
			return nil, err
		}
		arrays = append(arrays, arr)
	}

	rec := array.NewRecord(schema, arrays, int64(end-start))
	release()
	return rec, nil
}

func (w *Writer) buildArray(c *domain.Column, start, end int) (arrow.Array, error) {
	valid := c.Valid[start:end]

	switch c.Type {
	case domain.TypeText, domain.TypeString:
		b := array.NewStringBuilder(w.allocator)
		defer b.Release()
		b.AppendValues(c.Strings[start:end], valid)
		return b.NewArray(), nil

	case domain.TypeInteger:
		b := array.NewInt64Builder(w.allocator)
		defer b.Release()
		b.AppendValues(c.Ints[start:end], valid)
		return b.NewArray(), nil

	case domain.TypeFloat:
		b := array.NewFloat64Builder(w.allocator)
		defer b.Release()
		b.AppendValues(c.Floats[start:end], valid)
		return b.NewArray(), nil

	case domain.TypeDate:
		b := array.NewDate32Builder(w.allocator)
		defer b.Release()
		dates := make([]arrow.Date32, end-start)
		for i, t := range c.Dates[start:end] {
			if valid[i] {
				dates[i] = arrow.Date32FromTime(t)
			}
		}
		b.AppendValues(dates, valid)
		return b.NewArray(), nil

	default:
		return nil, fmt.Errorf("%w: column %q has type %q", domain.ErrUnsupportedType, c.Name, c.Type)
	}
}
