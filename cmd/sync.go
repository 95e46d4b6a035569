package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shiftsync/reconcile"
	"shiftsync/rowsource"
)

var (
	syncInputs []string
	syncFormat string
	syncDBPath string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile grouped attendance rows against scheduled shifts",
	Long: `Read grouped attendance rows (one per user per calendar day) and reconcile
each against that user's schedules for the day.

A lone punch is classified as arrival or departure by comparing it to the
shift's configured boundary window; when the window is unreadable, the punch
is recorded on both fields without guessing a direction. A first/last punch
pair is assigned verbatim to a single schedule, or distributed across several
schedules by nearest configured boundary.

Rows naming days without any schedule are reported but never fail the run.
Re-running the same batch is safe: matched counts stay, modifications drop
to zero.`,
	Example: `
  # Reconcile one attendance batch
  shiftsync sync -i attendance-2024-03.csv

  # Several input files, explicit format
  shiftsync sync -i week1.xlsx -i week2.xlsx --format excel

  # Against a specific SQLite database
  shiftsync sync -i attendance.csv --db ./shiftsync.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		read, err := rowsource.ReadAttendanceRows(syncInputs, syncFormat)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		store, err := openStore(ctx, syncDBPath)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		result, err := reconcile.Sync(ctx, store, store, read.Rows)
		if err != nil {
			return err
		}

		fmt.Printf(
			"Sync completed. Rows read: %d, Rows processed: %d, Rows skipped: %d, Schedules matched: %d, Schedules modified: %d, Update errors: %d\n",
			read.RowsRead,
			result.RowsProcessed,
			result.RowsSkipped+read.RowsSkipped,
			result.Matched,
			result.Modified,
			result.UpdateErrors,
		)

		if len(result.NoSchedule) > 0 {
			fmt.Printf("No schedule found for %d row(s):\n", len(result.NoSchedule))
			for _, ref := range result.NoSchedule {
				fmt.Printf("  %s on %s\n", ref.UserID, ref.Date)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringArrayVarP(&syncInputs, "input", "i", nil, "Grouped attendance file path (repeatable)")
	syncCmd.Flags().StringVarP(&syncFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	syncCmd.Flags().StringVar(&syncDBPath, "db", "", "SQLite database path override (forces the sqlite backend)")

	_ = syncCmd.MarkFlagRequired("input")
}
