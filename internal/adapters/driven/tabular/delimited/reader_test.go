package delimited

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

const sample = "No disposition|Date mutation|Valeur fonciere|Code postal|Commune\n" +
	"000001|05/03/2023|1234,56|01000|BOURG-EN-BRESSE\n" +
	"000002|||01090|\n"

func TestReader_ReadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dvf.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	table, err := NewReader('|').ReadTable(context.Background(), path)

	require.NoError(t, err)
	require.NoError(t, table.Validate())
	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, []string{"No disposition", "Date mutation", "Valeur fonciere", "Code postal", "Commune"},
		table.ColumnNames())

	for _, c := range table.Columns {
		assert.Equal(t, domain.TypeText, c.Type)
		assert.Zero(t, c.NullCount(), "empty strings must load as values")
	}

	postal, _ := table.Column("Code postal")
	assert.Equal(t, []string{"01000", "01090"}, postal.Strings)

	date, _ := table.Column("Date mutation")
	assert.Equal(t, "", date.Strings[1])
}

func TestReader_DefaultDelimiter(t *testing.T) {
	table, err := NewReader(0).Read(context.Background(), strings.NewReader("a|b\n1|2\n"))

	require.NoError(t, err)
	assert.Equal(t, 2, table.NumColumns())
}

func TestReader_PadsShortRows(t *testing.T) {
	table, err := NewReader('|').Read(context.Background(), strings.NewReader("a|b|c\n1\n"))

	require.NoError(t, err)
	c, _ := table.Column("c")
	assert.Equal(t, []string{""}, c.Strings)
}

func TestReader_RejectsLongRows(t *testing.T) {
	_, err := NewReader('|').Read(context.Background(), strings.NewReader("a|b\n1|2|3\n"))

	assert.ErrorIs(t, err, domain.ErrColumnMismatch)
}

func TestReader_HeaderOnly(t *testing.T) {
	table, err := NewReader('|').Read(context.Background(), strings.NewReader("a|b\n"))

	require.NoError(t, err)
	assert.Equal(t, 0, table.NumRows())
	assert.Equal(t, 2, table.NumColumns())
	require.NoError(t, table.Validate())
}

func TestReader_EmptyFile(t *testing.T) {
	table, err := NewReader('|').Read(context.Background(), strings.NewReader(""))

	require.NoError(t, err)
	assert.Equal(t, 0, table.NumColumns())
}

func TestReader_StripsBOMAndRenamesDuplicates(t *testing.T) {
	table, err := NewReader('|').Read(context.Background(), strings.NewReader("\ufeffa|b|b|b\n1|2|3|4\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "b.1", "b.2"}, table.ColumnNames())
}

func TestReader_LazyQuotes(t *testing.T) {
	table, err := NewReader('|').Read(context.Background(), strings.NewReader("voie\nRUE DE L\"EGLISE\n"))

	require.NoError(t, err)
	c, _ := table.Column("voie")
	assert.Equal(t, `RUE DE L"EGLISE`, c.Strings[0])
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader('|').ReadTable(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))

	assert.Error(t, err)
}
