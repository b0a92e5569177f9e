package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextColumn_KeepsEmptyStringsValid(t *testing.T) {
	col := NewTextColumn("Commune", []string{"PARIS", "", "LYON"})

	assert.Equal(t, TypeText, col.Type)
	assert.Equal(t, 3, col.Len())
	assert.Equal(t, 0, col.NullCount())
	assert.Equal(t, "", col.Value(1))
}

func TestColumn_Value(t *testing.T) {
	date := time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)

	ints := &Column{Name: "n", Type: TypeInteger, Ints: []int64{7, 0}, Valid: []bool{true, false}}
	floats := &Column{Name: "f", Type: TypeFloat, Floats: []float64{1.5}, Valid: []bool{true}}
	dates := &Column{Name: "d", Type: TypeDate, Dates: []time.Time{date}, Valid: []bool{true}}

	assert.Equal(t, int64(7), ints.Value(0))
	assert.Nil(t, ints.Value(1))
	assert.True(t, ints.IsNull(1))
	assert.Equal(t, 1, ints.NullCount())
	assert.Equal(t, 1.5, floats.Value(0))
	assert.Equal(t, date, dates.Value(0))
}

func TestTable_Accessors(t *testing.T) {
	table := &Table{Columns: []*Column{
		NewTextColumn("a", []string{"1", "2"}),
		NewTextColumn("b", []string{"x", "y"}),
	}}

	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, 2, table.NumColumns())
	assert.Equal(t, []string{"a", "b"}, table.ColumnNames())

	col, ok := table.Column("b")
	require.True(t, ok)
	assert.Equal(t, "b", col.Name)

	_, ok = table.Column("c")
	assert.False(t, ok)
}

func TestTable_EmptyTable(t *testing.T) {
	table := &Table{}

	assert.Equal(t, 0, table.NumRows())
	assert.NoError(t, table.Validate())
}

func TestTable_Validate_LengthMismatch(t *testing.T) {
	table := &Table{Columns: []*Column{
		NewTextColumn("a", []string{"1", "2"}),
		NewTextColumn("b", []string{"x"}),
	}}

	assert.ErrorIs(t, table.Validate(), ErrColumnMismatch)
}

func TestTable_Validate_ValueSliceMismatch(t *testing.T) {
	table := &Table{Columns: []*Column{
		{Name: "n", Type: TypeInteger, Ints: []int64{1}, Valid: []bool{true, true}},
	}}

	assert.ErrorIs(t, table.Validate(), ErrColumnMismatch)
}

func TestTable_Validate_UnknownType(t *testing.T) {
	table := &Table{Columns: []*Column{
		{Name: "n", Type: "blob", Valid: []bool{}},
	}}

	assert.ErrorIs(t, table.Validate(), ErrUnsupportedType)
}
