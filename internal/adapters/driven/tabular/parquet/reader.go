package parquet

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
)

// ReadTable loads a Parquet file into a domain table.
func ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	mem := memory.NewGoAllocator()
	tbl, err := pqarrow.ReadTable(ctx, f, parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("reading parquet %s: %w", path, err)
	}
	defer tbl.Release()

	out := &domain.Table{Columns: make([]*domain.Column, 0, tbl.NumCols())}
	for i := 0; i < int(tbl.NumCols()); i++ {
		field := tbl.Schema().Field(i)
		col, err := readColumn(field, tbl.Column(i).Data().Chunks(), int(tbl.NumRows()))
		if err != nil {
			return nil, err
		}
		out.Columns = append(out.Columns, col)
	}
	return out, nil
}

// Ensure Reader implements the interface.
var _ driven.TableReader = (*Reader)(nil)

// Reader exposes ReadTable through the driven.TableReader port.
type Reader struct{}

// NewReader creates a Parquet reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTable loads a Parquet file into a domain table.
func (r *Reader) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	return ReadTable(ctx, path)
}

func readColumn(field arrow.Field, chunks []arrow.Array, rows int) (*domain.Column, error) {
	typ, err := semanticType(field)
	if err != nil {
		return nil, err
	}

	col := &domain.Column{Name: field.Name, Type: typ, Valid: make([]bool, 0, rows)}
	for _, chunk := range chunks {
		for i := 0; i < chunk.Len(); i++ {
			valid := chunk.IsValid(i)
			col.Valid = append(col.Valid, valid)

			switch a := chunk.(type) {
			case *array.String:
				v := ""
				if valid {
					v = a.Value(i)
				}
				col.Strings = append(col.Strings, v)
			case *array.Int64:
				var v int64
				if valid {
					v = a.Value(i)
				}
				col.Ints = append(col.Ints, v)
			case *array.Float64:
				var v float64
				if valid {
					v = a.Value(i)
				}
				col.Floats = append(col.Floats, v)
			case *array.Date32:
				var v time.Time
				if valid {
					v = a.Value(i).ToTime()
				}
				col.Dates = append(col.Dates, v)
			default:
				return nil, fmt.Errorf("%w: field %q has Arrow type %s",
					domain.ErrUnsupportedType, field.Name, chunk.DataType())
			}
		}
	}

	// Empty columns still need the slice matching their type.
	switch typ {
	case domain.TypeText, domain.TypeString:
		if col.Strings == nil {
			col.Strings = []string{}
		}
	case domain.TypeInteger:
		if col.Ints == nil {
			col.Ints = []int64{}
		}
	case domain.TypeFloat:
		if col.Floats == nil {
			col.Floats = []float64{}
		}
	case domain.TypeDate:
		if col.Dates == nil {
			col.Dates = []time.Time{}
		}
	}
	return col, nil
}
