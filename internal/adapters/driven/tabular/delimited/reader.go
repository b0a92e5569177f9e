// Package delimited loads delimiter-separated text files as all-text tables.
package delimited

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
)

// DefaultDelimiter is the DVF field separator.
const DefaultDelimiter = '|'

// cancelCheckRows is how often the reader polls the context.
const cancelCheckRows = 10000

// Ensure Reader implements the interface.
var _ driven.TableReader = (*Reader)(nil)

// Reader loads UTF-8 delimited files with a header row.
type Reader struct {
	delimiter rune
}

// NewReader creates a reader splitting fields on delimiter.
func NewReader(delimiter rune) *Reader {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &Reader{delimiter: delimiter}
}

// ReadTable loads the file at path. Every column is text; empty fields
// stay empty strings. Short rows are padded with empty fields, long rows
// are an error.
func (r *Reader) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return r.Read(ctx, f)
}

// Read loads a table from src.
func (r *Reader) Read(ctx context.Context, src io.Reader) (*domain.Table, error) {
	cr := csv.NewReader(bufio.NewReaderSize(src, 1<<20))
	cr.Comma = r.delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &domain.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	names := columnNames(header)

	values := make([][]string, len(names))
	for row := 1; ; row++ {
		if row%cancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}
		if len(rec) > len(names) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d",
				domain.ErrColumnMismatch, row, len(rec), len(names))
		}
		for i := range names {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			values[i] = append(values[i], v)
		}
	}

	table := &domain.Table{Columns: make([]*domain.Column, len(names))}
	for i, name := range names {
		col := values[i]
		if col == nil {
			col = []string{}
		}
		table.Columns[i] = domain.NewTextColumn(name, col)
	}
	return table, nil
}

// columnNames strips a UTF-8 byte order mark and renames duplicate headers
// to "name.1", "name.2" so every column stays addressable.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := h
		if n, dup := seen[h]; dup {
			name = h + "." + strconv.Itoa(n)
		}
		seen[h]++
		names[i] = name
	}
	return names
}
