package main

import (
	"github.com/custodia-labs/dvf-ingest/internal/adapters/driven/archive"
	"github.com/custodia-labs/dvf-ingest/internal/adapters/driven/catalog/datagouv"
	"github.com/custodia-labs/dvf-ingest/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dvf-ingest/internal/adapters/driven/download"
	"github.com/custodia-labs/dvf-ingest/internal/adapters/driven/metrics"
	"github.com/custodia-labs/dvf-ingest/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dvf-ingest/internal/adapters/driven/tabular/delimited"
	"github.com/custodia-labs/dvf-ingest/internal/adapters/driven/tabular/parquet"
	"github.com/custodia-labs/dvf-ingest/internal/adapters/driving/cli"
	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
	"github.com/custodia-labs/dvf-ingest/internal/core/services"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// dvfDelimiter separates fields in the yearly DVF text files.
const dvfDelimiter = '|'

// buildServices wires adapters into services from the settings stored in
// configDir. The returned cleanup closes the run history database.
func buildServices(configDir string) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, err
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("config: %s", configStore.Path())

	catalog := datagouv.NewClient(settings.Catalog.BaseURL,
		datagouv.WithRateLimiter(datagouv.NewRateLimiter(settings.Catalog.RequestsPerSecond)))

	resolver := services.NewDatasetResolver(catalog,
		settings.Catalog.SearchQuery, settings.Catalog.DatasetTitle, settings.Catalog.PageSize)
	locator := services.NewResourceLocator(catalog, settings.Catalog.ResourceFormat)
	fetcher := services.NewFetcher(download.NewDownloader(), archive.NewZipExtractor())

	transformer, err := services.NewTransformer(delimited.NewReader(dvfDelimiter), domain.DefaultCoercionTable())
	if err != nil {
		return nil, nil, err
	}

	writer, err := parquet.NewWriter(settings.Export.Compression, settings.Export.BatchRows)
	if err != nil {
		return nil, nil, err
	}

	store, err := sqlite.NewStore(settings.Paths.HistoryDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("history: %s", store.Path())

	ingest := services.NewIngestService(
		resolver,
		locator,
		fetcher,
		transformer,
		services.NewExporter(writer),
		store.RunStore(),
		metrics.New(settings.Metrics.Textfile),
		settings.Paths,
	)

	svc := &cli.Services{
		Ingest:   ingest,
		Catalog:  services.NewCatalogService(resolver, locator),
		Inspect:  services.NewInspectService(parquet.NewReader()),
		History:  services.NewHistoryService(store.RunStore()),
		Settings: settingsService,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close history store: %v", err)
		}
	}
	return svc, cleanup, nil
}
