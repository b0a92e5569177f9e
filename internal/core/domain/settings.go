package domain

// Settings holds the pipeline configuration.
type Settings struct {
	Catalog CatalogSettings
	Paths   PathSettings
	Export  ExportSettings
	Metrics MetricsSettings
}

// CatalogSettings configures dataset and resource discovery.
type CatalogSettings struct {
	BaseURL           string
	SearchQuery       string
	DatasetTitle      string
	PageSize          int
	ResourceFormat    string
	RequestsPerSecond int
}

// PathSettings configures the on-disk layout.
type PathSettings struct {
	RawDir       string
	ProcessedDir string
	HistoryDir   string
}

// ExportSettings configures the columnar output.
type ExportSettings struct {
	Compression string
	BatchRows   int
}

// MetricsSettings configures the metrics textfile export.
// An empty Textfile disables the export.
type MetricsSettings struct {
	Textfile string
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Catalog: CatalogSettings{
			BaseURL:           "https://www.data.gouv.fr/api/1",
			SearchQuery:       "demandes valeurs foncieres",
			DatasetTitle:      "Demandes de valeurs foncières",
			PageSize:          10,
			ResourceFormat:    "txt.zip",
			RequestsPerSecond: 5,
		},
		Paths: PathSettings{
			RawDir:       "data/raw/dvf",
			ProcessedDir: "data/processed",
			HistoryDir:   "data/history",
		},
		Export: ExportSettings{
			Compression: "snappy",
			BatchRows:   65536,
		},
	}
}
