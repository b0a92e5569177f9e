// Package archive extracts downloaded zip archives.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
)

// Ensure ZipExtractor implements the interface.
var _ driven.ArchiveExtractor = (*ZipExtractor)(nil)

// ZipExtractor reads zip archives. Directory entries are skipped, so
// entry indexes refer to files only.
type ZipExtractor struct{}

// NewZipExtractor creates a zip extractor.
func NewZipExtractor() *ZipExtractor {
	return &ZipExtractor{}
}

// Entries lists the file entries of the archive in stored order.
func (z *ZipExtractor) Entries(archivePath string) ([]driven.ArchiveEntry, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	files := fileEntries(r.File)
	entries := make([]driven.ArchiveEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, driven.ArchiveEntry{
			Name: f.Name,
			Size: int64(f.UncompressedSize64),
		})
	}
	return entries, nil
}

// Extract writes the file entry at index into destDir.
func (z *ZipExtractor) Extract(archivePath string, index int, destDir string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	files := fileEntries(r.File)
	if len(files) == 0 {
		return "", domain.ErrEmptyArchive
	}
	if index < 0 || index >= len(files) {
		return "", fmt.Errorf("%w: entry %d of %d", domain.ErrInvalidInput, index, len(files))
	}

	f := files[index]
	dest, err := safeJoin(destDir, f.Name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	src, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("opening entry %s: %w", f.Name, err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", dest, err)
	}
	return dest, nil
}

func fileEntries(all []*zip.File) []*zip.File {
	files := make([]*zip.File, 0, len(all))
	for _, f := range all {
		if f.FileInfo().IsDir() {
			continue
		}
		files = append(files, f)
	}
	return files
}

// safeJoin joins name under dir, rejecting entries that escape it.
func safeJoin(dir, name string) (string, error) {
	dest := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: archive entry %q escapes destination", domain.ErrInvalidInput, name)
	}
	return dest, nil
}
