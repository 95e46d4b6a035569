package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shiftsync/output"
)

var (
	exportFormat string
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export schedules with reconciled attendance to CSV/Excel",
	Long: `Export every non-deleted schedule with its reconciled attendance fields
(actual in/out, attendance flag, attendance note).

Output format can be selected explicitly via --format or inferred from the
--output extension.`,
	Example: `
  # Export to CSV
  shiftsync export --output ./schedules.csv

  # Export to Excel
  shiftsync export --output ./schedules.xlsx

  # Force Excel format independent of extension
  shiftsync export --format excel --output ./schedules.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		ctx := cmd.Context()
		store, err := openStore(ctx, exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		schedules, err := store.ListSchedules(ctx)
		if err != nil {
			return err
		}

		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}
		if err := writer.Write(exportOutput, schedules); err != nil {
			return err
		}

		fmt.Printf("Export completed. Schedules: %d, Format: %s, File: %s\n", len(schedules), format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "SQLite database path override (forces the sqlite backend)")

	_ = exportCmd.MarkFlagRequired("output")
}
