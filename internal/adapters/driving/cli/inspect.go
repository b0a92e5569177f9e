package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

var inspectHead int

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Describe a Parquet file written by ingest",
	Long: `Reads a Parquet file back and prints its row count and, for every
column, the semantic type and the number of null values.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectHead, "head", 0, "also print the first N rows")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectService == nil {
		return errNotConfigured("inspect")
	}

	table, err := inspectService.Inspect(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Println(ui.Title.Render(args[0]))
	printField(cmd, "Rows", humanize.Comma(int64(table.NumRows())))
	printField(cmd, "Columns", fmt.Sprintf("%d", table.NumColumns()))
	cmd.Println()

	for _, c := range table.Columns {
		cmd.Printf("  %-32s %-8s %s nulls\n", c.Name, c.Type, humanize.Comma(int64(c.NullCount())))
	}

	rows := min(inspectHead, table.NumRows())
	if rows > 0 {
		cmd.Println()
		cmd.Println(strings.Join(table.ColumnNames(), " | "))
		for i := 0; i < rows; i++ {
			values := make([]string, 0, table.NumColumns())
			for _, c := range table.Columns {
				values = append(values, formatValue(c, i))
			}
			cmd.Println(strings.Join(values, " | "))
		}
	}
	return nil
}

// formatValue renders one cell; nulls print as an empty field.
func formatValue(c *domain.Column, i int) string {
	switch v := c.Value(i).(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}
