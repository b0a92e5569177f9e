package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// ArchiveName is the temporary file the archive is downloaded to.
const ArchiveName = "temp_download.zip"

// Fetcher downloads an archive and extracts its first entry.
type Fetcher struct {
	downloader driven.Downloader
	extractor  driven.ArchiveExtractor
}

// NewFetcher creates a new fetcher.
func NewFetcher(downloader driven.Downloader, extractor driven.ArchiveExtractor) *Fetcher {
	return &Fetcher{downloader: downloader, extractor: extractor}
}

// Fetch downloads url into workDir, extracts the first archive entry next
// to it and returns the extracted path. The temporary archive is removed
// whether or not extraction succeeds.
func (f *Fetcher) Fetch(ctx context.Context, url, workDir string, progress driven.ProgressFunc) (string, error) {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("creating work directory: %w", err)
	}

	archive := filepath.Join(workDir, ArchiveName)
	defer removeArchive(archive)

	n, err := f.downloader.Download(ctx, url, archive, progress)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	logger.Info("Downloaded %s from %s", humanize.Bytes(uint64(n)), url)

	entries, err := f.extractor.Entries(archive)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	if len(entries) == 0 {
		return "", domain.ErrEmptyArchive
	}
	if len(entries) > 1 {
		logger.Warn("Archive holds %d entries, extracting only %s", len(entries), entries[0].Name)
	}

	path, err := f.extractor.Extract(archive, 0, workDir)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", entries[0].Name, err)
	}

	logger.Debug("Extracted %s (%s)", path, humanize.Bytes(uint64(entries[0].Size)))
	return path, nil
}

func removeArchive(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to remove %s: %v", path, err)
	}
}
