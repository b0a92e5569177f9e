package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change catalog, path, export and metrics settings.

Settings are stored in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by dotted key, for example:

  dvf-ingest settings set export.compression zstd
  dvf-ingest settings set catalog.page_size 20`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("File: %s\n", settingsService.ConfigPath())
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Base URL: %s\n", settings.Catalog.BaseURL)
	cmd.Printf("  Search query: %s\n", settings.Catalog.SearchQuery)
	cmd.Printf("  Dataset title: %s\n", settings.Catalog.DatasetTitle)
	cmd.Printf("  Page size: %d\n", settings.Catalog.PageSize)
	cmd.Printf("  Resource format: %s\n", settings.Catalog.ResourceFormat)
	cmd.Printf("  Requests per second: %d\n", settings.Catalog.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Raw: %s\n", settings.Paths.RawDir)
	cmd.Printf("  Processed: %s\n", settings.Paths.ProcessedDir)
	cmd.Printf("  History: %s\n", settings.Paths.HistoryDir)
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Compression: %s\n", settings.Export.Compression)
	cmd.Printf("  Batch rows: %d\n", settings.Export.BatchRows)
	cmd.Println()

	cmd.Println("[Metrics]")
	if settings.Metrics.Textfile != "" {
		cmd.Printf("  Textfile: %s\n", settings.Metrics.Textfile)
	} else {
		cmd.Printf("  Textfile: (disabled)\n")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key, value := args[0], strings.TrimSpace(args[1])
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
