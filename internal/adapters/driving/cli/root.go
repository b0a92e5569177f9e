package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dvf-ingest/internal/adapters/driving/styles"
	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driving"
	"github.com/custodia-labs/dvf-ingest/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// Services wired by the factory.
var (
	ingestService   driving.IngestService
	catalogService  driving.CatalogService
	inspectService  driving.InspectService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
)

// Services bundles the driving ports used by the commands.
type Services struct {
	Ingest   driving.IngestService
	Catalog  driving.CatalogService
	Inspect  driving.InspectService
	History  driving.HistoryService
	Settings driving.SettingsService
}

// Factory builds the services for a configuration directory. The returned
// cleanup function releases what the services hold open.
type Factory func(configDir string) (*Services, func(), error)

var (
	factory Factory
	cleanup func()
)

// annotationNoServices marks commands that run without wired services.
const annotationNoServices = "no-services"

// ui holds the output styles.
var ui = styles.DefaultStyles()

var rootCmd = &cobra.Command{
	Use:   "dvf-ingest",
	Short: "Download and convert French DVF real-estate transactions",
	Long: `dvf-ingest fetches one year of "Demandes de valeurs foncières" from the
data.gouv.fr catalog, types its columns and writes a snappy Parquet file.

Running without a subcommand is the same as "dvf-ingest ingest".`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runIngest,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default ~/.dvf-ingest)")
	addIngestFlags(rootCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetFactory sets how services are built once flags are parsed.
func SetFactory(f Factory) {
	factory = f
}

// Execute runs the root command and releases the services afterwards.
func Execute(ctx context.Context) error {
	defer teardown()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if factory == nil || cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}

	services, done, err := factory(configDir)
	if err != nil {
		return err
	}
	cleanup = done

	ingestService = services.Ingest
	catalogService = services.Catalog
	inspectService = services.Inspect
	historyService = services.History
	settingsService = services.Settings
	return nil
}

func teardown() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

// errNotConfigured is returned when a command runs without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
