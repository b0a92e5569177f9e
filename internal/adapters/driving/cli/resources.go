package cli

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the yearly archives of the DVF dataset",
	Long: `Resolves the DVF dataset and lists its txt.zip resources without
downloading anything.`,
	Args: cobra.NoArgs,
	RunE: runResources,
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errNotConfigured("catalog")
	}

	datasetID, err := catalogService.ResolveDataset(cmd.Context())
	if err != nil {
		return err
	}

	resources, err := catalogService.ListResources(cmd.Context(), datasetID)
	if err != nil {
		return err
	}

	cmd.Printf("%s %s\n\n", ui.Title.Render("Dataset"), datasetID)

	if len(resources) == 0 {
		cmd.Println("No resources found.")
		return nil
	}

	for _, r := range resources {
		size := "-"
		if r.FileSize > 0 {
			size = humanize.Bytes(uint64(r.FileSize))
		}
		cmd.Printf("%-40s %10s\n", r.Title, size)
		cmd.Printf("  %s\n", ui.Muted.Render(r.URL))
	}
	return nil
}
