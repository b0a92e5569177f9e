package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// Transformer loads the raw text file and applies the coercion table.
type Transformer struct {
	reader driven.TableReader
	table  domain.CoercionTable
}

// NewTransformer creates a transformer. The coercion table is validated
// up front.
func NewTransformer(reader driven.TableReader, table domain.CoercionTable) (*Transformer, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("coercion table: %w", err)
	}
	return &Transformer{reader: reader, table: table}, nil
}

// Load reads the extracted file with every column as text.
func (t *Transformer) Load(ctx context.Context, path string) (*domain.Table, error) {
	table, err := t.reader.ReadTable(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logger.Debug("Loaded %d rows x %d columns from %s", table.NumRows(), table.NumColumns(), path)
	return table, nil
}

// Transform marks empty strings as null, then converts each column named
// in the coercion table. Columns not in the table stay text. The table is
// modified in place and returned.
func (t *Transformer) Transform(table *domain.Table) (*domain.Table, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	for _, c := range table.Columns {
		nullEmpty(c)
	}

	for _, spec := range t.table {
		col, ok := table.Column(spec.Name)
		if !ok {
			logger.Warn("Column %q not found in file, skipping", spec.Name)
			continue
		}
		if col.Type != domain.TypeText {
			// Already coerced.
			continue
		}
		coerce(col, spec)
	}

	return table, nil
}

// nullEmpty marks every empty string of a text column as null.
func nullEmpty(c *domain.Column) {
	if c.Type != domain.TypeText && c.Type != domain.TypeString {
		return
	}
	for i, s := range c.Strings {
		if s == "" {
			c.Valid[i] = false
		}
	}
}

// coerce converts a text column in place. Values that fail to parse
// become null.
func coerce(c *domain.Column, spec domain.ColumnSpec) {
	n := c.Len()

	switch spec.Type {
	case domain.TypeString:
		c.Type = domain.TypeString

	case domain.TypeInteger:
		ints := make([]int64, n)
		for i := 0; i < n; i++ {
			if !c.Valid[i] {
				continue
			}
			v, ok := ParseInteger(c.Strings[i])
			ints[i], c.Valid[i] = v, ok
		}
		c.Type, c.Ints, c.Strings = domain.TypeInteger, ints, nil

	case domain.TypeFloat:
		floats := make([]float64, n)
		for i := 0; i < n; i++ {
			if !c.Valid[i] {
				continue
			}
			v, ok := ParseFloat(c.Strings[i], spec.DecimalComma)
			floats[i], c.Valid[i] = v, ok
		}
		c.Type, c.Floats, c.Strings = domain.TypeFloat, floats, nil

	case domain.TypeDate:
		dates := make([]time.Time, n)
		for i := 0; i < n; i++ {
			if !c.Valid[i] {
				continue
			}
			v, ok := ParseDate(c.Strings[i])
			dates[i], c.Valid[i] = v, ok
		}
		c.Type, c.Dates, c.Strings = domain.TypeDate, dates, nil
	}
}

// ParseInteger parses a trimmed integer. Integral decimals such as "12.0"
// are accepted.
func ParseInteger(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	f, ok := ParseFloat(s, false)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// ParseFloat parses a trimmed finite decimal. With decimalComma, a comma
// is read as the decimal separator.
func ParseFloat(s string, decimalComma bool) (float64, bool) {
	s = strings.TrimSpace(s)
	if decimalComma {
		s = strings.ReplaceAll(s, ",", ".")
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseDate parses a day/month/year date.
func ParseDate(s string) (time.Time, bool) {
	v, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return v, true
}
