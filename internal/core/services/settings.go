package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCatalogBaseURL      = "catalog.base_url"
	keyCatalogSearchQuery  = "catalog.search_query"
	keyCatalogDatasetTitle = "catalog.dataset_title"
	keyCatalogPageSize     = "catalog.page_size"
	keyCatalogFormat       = "catalog.resource_format"
	keyCatalogRPS          = "catalog.requests_per_second"
	keyRawDir              = "paths.raw_dir"
	keyProcessedDir        = "paths.processed_dir"
	keyHistoryDir          = "paths.history_dir"
	keyCompression         = "export.compression"
	keyBatchRows           = "export.batch_rows"
	keyMetricsTextfile     = "metrics.textfile"
)

// settingKind is the value type accepted by a settings key.
type settingKind int

const (
	kindString settingKind = iota
	kindPositiveInt
)

var settingKinds = map[string]settingKind{
	keyCatalogBaseURL:      kindString,
	keyCatalogSearchQuery:  kindString,
	keyCatalogDatasetTitle: kindString,
	keyCatalogPageSize:     kindPositiveInt,
	keyCatalogFormat:       kindString,
	keyCatalogRPS:          kindPositiveInt,
	keyRawDir:              kindString,
	keyProcessedDir:        kindString,
	keyHistoryDir:          kindString,
	keyCompression:         kindString,
	keyBatchRows:           kindPositiveInt,
	keyMetricsTextfile:     kindString,
}

// compressions lists the accepted export.compression values.
var compressions = map[string]bool{
	"snappy": true, "none": true, "uncompressed": true,
	"gzip": true, "zstd": true, "brotli": true, "lz4": true,
}

// SettingsKeys returns every recognised settings key in sorted order.
func SettingsKeys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService reads pipeline settings from a config store, falling
// back to domain.DefaultSettings for absent or invalid values.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Catalog: domain.CatalogSettings{
			BaseURL:           s.getString(keyCatalogBaseURL, defaults.Catalog.BaseURL),
			SearchQuery:       s.getString(keyCatalogSearchQuery, defaults.Catalog.SearchQuery),
			DatasetTitle:      s.getString(keyCatalogDatasetTitle, defaults.Catalog.DatasetTitle),
			PageSize:          s.getInt(keyCatalogPageSize, defaults.Catalog.PageSize),
			ResourceFormat:    s.getString(keyCatalogFormat, defaults.Catalog.ResourceFormat),
			RequestsPerSecond: s.getInt(keyCatalogRPS, defaults.Catalog.RequestsPerSecond),
		},
		Paths: domain.PathSettings{
			RawDir:       s.getString(keyRawDir, defaults.Paths.RawDir),
			ProcessedDir: s.getString(keyProcessedDir, defaults.Paths.ProcessedDir),
			HistoryDir:   s.getString(keyHistoryDir, defaults.Paths.HistoryDir),
		},
		Export: domain.ExportSettings{
			Compression: s.getCompression(defaults.Export.Compression),
			BatchRows:   s.getInt(keyBatchRows, defaults.Export.BatchRows),
		},
		Metrics: domain.MetricsSettings{
			Textfile: s.configStore.GetString(keyMetricsTextfile), // No default - empty disables export
		},
	}

	return settings, nil
}

// Set validates and stores one setting. Integer keys accept an int or a
// decimal string.
func (s *SettingsService) Set(key string, value any) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	switch kind {
	case kindPositiveInt:
		n, err := toInt(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %v", domain.ErrInvalidInput, key, value)
		}
		value = n
	default:
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be a string, got %T", domain.ErrInvalidInput, key, value)
		}
		if key == keyCompression && !compressions[str] {
			return fmt.Errorf("%w: unsupported compression %q", domain.ErrInvalidInput, str)
		}
		value = str
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ConfigPath returns the location of the backing configuration.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// getString returns a string value or default.
func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt returns a positive integer value or default.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

// getCompression returns a recognised compression or default.
func (s *SettingsService) getCompression(defaultVal string) string {
	if val := s.configStore.GetString(keyCompression); compressions[val] {
		return val
	}
	return defaultVal
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("not an integer: %T", value)
	}
}
