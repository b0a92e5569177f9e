package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
)

// --- Mock implementations of driven ports ---

// mockCatalog implements driven.Catalog for testing.
type mockCatalog struct {
	datasets  []domain.Dataset
	detail    *domain.DatasetDetail
	searchErr error
	getErr    error

	lastQuery    string
	lastPageSize int
	lastID       string
}

func (m *mockCatalog) SearchDatasets(_ context.Context, query string, pageSize int) ([]domain.Dataset, error) {
	m.lastQuery = query
	m.lastPageSize = pageSize
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.datasets, nil
}

func (m *mockCatalog) GetDataset(_ context.Context, id string) (*domain.DatasetDetail, error) {
	m.lastID = id
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.detail == nil {
		return nil, domain.ErrNotFound
	}
	return m.detail, nil
}

// mockDownloader implements driven.Downloader by writing fixed content.
type mockDownloader struct {
	content []byte
	err     error
	urls    []string
}

func (m *mockDownloader) Download(_ context.Context, url, dest string, progress driven.ProgressFunc) (int64, error) {
	m.urls = append(m.urls, url)
	if m.err != nil {
		return 0, m.err
	}
	if err := os.WriteFile(dest, m.content, 0o600); err != nil {
		return 0, err
	}
	n := int64(len(m.content))
	if progress != nil {
		progress(n, n)
	}
	return n, nil
}

// mockExtractor implements driven.ArchiveExtractor. Extract writes
// content to the first entry's name in destDir.
type mockExtractor struct {
	entries    []driven.ArchiveEntry
	content    string
	entriesErr error
	extractErr error

	sawArchive bool
}

func (m *mockExtractor) Entries(archivePath string) ([]driven.ArchiveEntry, error) {
	_, err := os.Stat(archivePath)
	m.sawArchive = err == nil
	if m.entriesErr != nil {
		return nil, m.entriesErr
	}
	return m.entries, nil
}

func (m *mockExtractor) Extract(_ string, index int, destDir string) (string, error) {
	if m.extractErr != nil {
		return "", m.extractErr
	}
	path := filepath.Join(destDir, m.entries[index].Name)
	if err := os.WriteFile(path, []byte(m.content), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// mockTableReader implements driven.TableReader.
type mockTableReader struct {
	table *domain.Table
	err   error
	paths []string
}

func (m *mockTableReader) ReadTable(_ context.Context, path string) (*domain.Table, error) {
	m.paths = append(m.paths, path)
	if m.err != nil {
		return nil, m.err
	}
	return m.table, nil
}

// mockTableWriter implements driven.TableWriter.
type mockTableWriter struct {
	size    int64
	err     error
	written *domain.Table
	path    string
}

func (m *mockTableWriter) WriteTable(_ context.Context, table *domain.Table, path string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.written = table
	m.path = path
	return m.size, nil
}

// mockRunStore implements driven.RunStore.
type mockRunStore struct {
	mu      sync.Mutex
	runs    []domain.IngestRun
	saveErr error
	listErr error
}

func (m *mockRunStore) Save(_ context.Context, run domain.IngestRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockRunStore) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runs {
		if r.ID == id {
			run := r
			return &run, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRunStore) List(_ context.Context, limit int) ([]domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit > 0 && limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

// mockMetrics implements driven.PipelineMetrics.
type mockMetrics struct {
	stages   []string
	failed   []string
	rows     int
	columns  int
	bytes    map[string]int64
	flushes  int
	flushErr error
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{bytes: make(map[string]int64)}
}

func (m *mockMetrics) ObserveStage(stage string, _ time.Duration, err error) {
	m.stages = append(m.stages, stage)
	if err != nil {
		m.failed = append(m.failed, stage)
	}
}

func (m *mockMetrics) SetRows(rows, columns int) {
	m.rows, m.columns = rows, columns
}

func (m *mockMetrics) AddBytes(stage string, n int64) {
	m.bytes[stage] += n
}

func (m *mockMetrics) Flush() error {
	m.flushes++
	return m.flushErr
}
