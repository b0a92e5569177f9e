package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

func writeZip(t *testing.T, files map[string]string, order ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestZipExtractor_ExtractFirstEntry(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"ValeursFoncieres-2023.txt": "a|b\n1|2\n",
	}, "ValeursFoncieres-2023.txt")
	dest := t.TempDir()

	path, err := NewZipExtractor().Extract(archive, 0, dest)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "ValeursFoncieres-2023.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a|b\n1|2\n", string(data))
}

func TestZipExtractor_Entries(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"dir/":    "",
		"one.txt": "1",
		"two.txt": "22",
	}, "dir/", "one.txt", "two.txt")

	entries, err := NewZipExtractor().Entries(archive)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "one.txt", entries[0].Name)
	assert.Equal(t, int64(2), entries[1].Size)
}

func TestZipExtractor_EmptyArchive(t *testing.T) {
	archive := writeZip(t, nil)

	_, err := NewZipExtractor().Extract(archive, 0, t.TempDir())

	assert.ErrorIs(t, err, domain.ErrEmptyArchive)
}

func TestZipExtractor_IndexOutOfRange(t *testing.T) {
	archive := writeZip(t, map[string]string{"a.txt": "a"}, "a.txt")

	_, err := NewZipExtractor().Extract(archive, 3, t.TempDir())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestZipExtractor_RejectsPathTraversal(t *testing.T) {
	archive := writeZip(t, map[string]string{"../evil.txt": "x"}, "../evil.txt")
	dest := t.TempDir()

	_, err := NewZipExtractor().Extract(archive, 0, dest)

	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "evil.txt"))
}

func TestZipExtractor_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, err := NewZipExtractor().Entries(path)
	assert.Error(t, err)

	_, err = NewZipExtractor().Extract(path, 0, t.TempDir())
	assert.Error(t, err)
}
