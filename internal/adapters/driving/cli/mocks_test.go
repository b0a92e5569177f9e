package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// mockIngestService implements driving.IngestService for CLI tests.
type mockIngestService struct {
	result *domain.IngestResult
	err    error
	events []domain.StageEvent
	req    domain.IngestRequest
}

func (m *mockIngestService) Ingest(_ context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	m.req = req
	for _, e := range m.events {
		if req.OnStage != nil {
			req.OnStage(e)
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockIngestService) DefaultOutputPath(year int) string {
	return fmt.Sprintf("data/processed/dvf_%d.parquet", year)
}

// mockCatalogService implements driving.CatalogService.
type mockCatalogService struct {
	datasetID  string
	resources  []domain.Resource
	resolveErr error
	listErr    error
}

func (m *mockCatalogService) ResolveDataset(_ context.Context) (string, error) {
	return m.datasetID, m.resolveErr
}

func (m *mockCatalogService) ListResources(_ context.Context, _ string) ([]domain.Resource, error) {
	return m.resources, m.listErr
}

// mockInspectService implements driving.InspectService.
type mockInspectService struct {
	table *domain.Table
	err   error
	path  string
}

func (m *mockInspectService) Inspect(_ context.Context, path string) (*domain.Table, error) {
	m.path = path
	return m.table, m.err
}

// mockHistoryService implements driving.HistoryService.
type mockHistoryService struct {
	runs  []domain.IngestRun
	err   error
	limit int
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.IngestRun, error) {
	m.limit = limit
	return m.runs, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	setErr   error
	set      map[string]any
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]any)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) ConfigPath() string {
	return "/home/test/.dvf-ingest/config.toml"
}

// executeCommand runs rootCmd with args and returns combined output. Flag
// values and services are reset afterwards.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		ingestYear = DefaultYear
		ingestOutput = ""
		historyLimit = 10
		inspectHead = 0
		verbose = false
		logger.SetVerbose(false)
		ingestService = nil
		catalogService = nil
		inspectService = nil
		historyService = nil
		settingsService = nil
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
