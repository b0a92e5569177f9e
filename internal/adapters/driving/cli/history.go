package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded ingest runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	runs, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for i := range runs {
		r := &runs[i]
		cmd.Printf("%s  %s  %d  %s  %s rows  %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Year,
			statusLabel(r.Status),
			humanize.Comma(int64(r.Rows)),
			humanize.Bytes(uint64(r.Bytes)))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	r, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	cmd.Println(ui.Title.Render("Run " + r.ID))
	printField(cmd, "Status", statusLabel(r.Status))
	printField(cmd, "Year", fmt.Sprintf("%d", r.Year))
	printField(cmd, "Dataset", r.DatasetID)
	printField(cmd, "Resource", r.ResourceURL)
	printField(cmd, "Output", r.OutputPath)
	printField(cmd, "Rows", humanize.Comma(int64(r.Rows)))
	printField(cmd, "Columns", fmt.Sprintf("%d", r.Columns))
	printField(cmd, "Size", humanize.Bytes(uint64(r.Bytes)))
	printField(cmd, "Started", r.StartedAt.Local().Format(time.RFC3339))
	printField(cmd, "Duration", r.Duration().Round(time.Millisecond).String())
	if r.Error != "" {
		printField(cmd, "Error", ui.Error.Render(r.Error))
	}
	return nil
}

func statusLabel(s domain.RunStatus) string {
	if s == domain.RunStatusFailed {
		return ui.Error.Render(string(s))
	}
	return ui.Success.Render(string(s))
}
