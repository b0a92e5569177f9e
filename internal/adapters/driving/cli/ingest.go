package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

// DefaultYear is the year ingested when --year is not given.
const DefaultYear = 2023

var (
	ingestYear   int
	ingestOutput string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Download one year of DVF data and write it as Parquet",
	Long: `Resolves the DVF dataset on data.gouv.fr, downloads the txt.zip archive
of the requested year, types its columns and writes a snappy Parquet file.

The pipeline stops at the first failing step.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	addIngestFlags(ingestCmd)
	rootCmd.AddCommand(ingestCmd)
}

func addIngestFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ingestYear, "year", DefaultYear, "year to ingest")
	cmd.Flags().StringVar(&ingestOutput, "output", "", "output Parquet file (default <processed_dir>/dvf_{year}.parquet)")
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	output := ingestOutput
	if output == "" {
		output = ingestService.DefaultOutputPath(ingestYear)
	}

	cmd.Println(ui.Banner.Render(fmt.Sprintf("DVF ingest %d", ingestYear)))
	cmd.Println()

	bar := newDownloadProgress(cmd.ErrOrStderr())
	req := domain.IngestRequest{
		Year:       ingestYear,
		OutputPath: output,
		Progress:   bar.Update,
		OnStage: func(e domain.StageEvent) {
			if e.Stage == domain.StageFetch {
				bar.Done()
			}
			printStage(cmd, e)
		},
	}

	result, err := ingestService.Ingest(cmd.Context(), req)
	bar.Done()
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Println(ui.Subtitle.Render("Summary"))
	printField(cmd, "Run", result.RunID)
	printField(cmd, "Dataset", result.DatasetID)
	printField(cmd, "Resource", result.Resource.Title)
	printField(cmd, "Output", result.OutputPath)
	printField(cmd, "Size", humanize.Bytes(uint64(result.Bytes)))
	printField(cmd, "Rows", humanize.Comma(int64(result.Rows)))
	printField(cmd, "Columns", fmt.Sprintf("%d", result.Columns))
	printField(cmd, "Duration", result.Duration.Round(time.Millisecond).String())
	return nil
}

// printStage prints one line per pipeline stage.
func printStage(cmd *cobra.Command, e domain.StageEvent) {
	mark := ui.Success.Render("✓")
	if e.Err != nil {
		mark = ui.Error.Render("✗")
	}

	detail := e.Detail
	if e.Stage == domain.StageFetch && detail != "" {
		detail = filepath.Base(detail)
	}

	cmd.Printf("%s %-10s %s %s\n", mark, e.Stage, detail,
		ui.Muted.Render("("+e.Duration.Round(time.Millisecond).String()+")"))
}

// printField prints an aligned label/value line.
func printField(cmd *cobra.Command, label, value string) {
	cmd.Printf("  %s %s\n", ui.Label.Render(label), value)
}
