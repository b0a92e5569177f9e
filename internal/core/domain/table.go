package domain

import (
	"fmt"
	"time"
)

// Column is a named, typed column of a Table.
//
// Exactly one of the value slices is populated, selected by Type:
// Strings for text and string columns, Ints for integers, Floats for
// floats and Dates for dates. Valid[i] is false when row i is null;
// the value slot of a null row holds the zero value.
type Column struct {
	Name string
	Type SemanticType

	Strings []string
	Ints    []int64
	Floats  []float64
	Dates   []time.Time
	Valid   []bool
}

// NewTextColumn creates a text column with every row valid, including
// rows holding the empty string.
func NewTextColumn(name string, values []string) *Column {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return &Column{Name: name, Type: TypeText, Strings: values, Valid: valid}
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return len(c.Valid)
}

// IsNull reports whether row i is null.
func (c *Column) IsNull(i int) bool {
	return !c.Valid[i]
}

// NullCount returns the number of null rows.
func (c *Column) NullCount() int {
	n := 0
	for _, ok := range c.Valid {
		if !ok {
			n++
		}
	}
	return n
}

// Value returns row i as a Go value, or nil when the row is null.
func (c *Column) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	switch c.Type {
	case TypeInteger:
		return c.Ints[i]
	case TypeFloat:
		return c.Floats[i]
	case TypeDate:
		return c.Dates[i]
	default:
		return c.Strings[i]
	}
}

// Table is an ordered collection of equally long named columns.
type Table struct {
	Columns []*Column
}

// NumRows returns the row count, zero for a table without columns.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the first column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Validate checks that all columns have the same length and that each
// column's value slice matches its type.
func (t *Table) Validate() error {
	rows := t.NumRows()
	for _, c := range t.Columns {
		if c.Len() != rows {
			return fmt.Errorf("%w: column %q has %d rows, expected %d", ErrColumnMismatch, c.Name, c.Len(), rows)
		}
		var n int
		switch c.Type {
		case TypeText, TypeString:
			n = len(c.Strings)
		case TypeInteger:
			n = len(c.Ints)
		case TypeFloat:
			n = len(c.Floats)
		case TypeDate:
			n = len(c.Dates)
		default:
			return fmt.Errorf("%w: column %q has type %q", ErrUnsupportedType, c.Name, c.Type)
		}
		if n != rows {
			return fmt.Errorf("%w: column %q holds %d values for %d rows", ErrColumnMismatch, c.Name, n, rows)
		}
	}
	return nil
}
