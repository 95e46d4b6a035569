package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shiftsync/rowsource"
)

var (
	importSchedules []string
	importShifts    []string
	importFormat    string
	importDBPath    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import schedules and shift definitions into the store",
	Long: `Load roster data into the configured store: schedule assignments
(user, work date, shift code) and shift definitions (code, boundary window).

Schedule files need userId/workDate/shiftCode columns; shift files need
code/timeFrom/timeTo columns. Header spelling is matched loosely. When
--format is omitted, format is inferred from each input file extension.`,
	Example: `
  # Seed schedules and shift windows together
  shiftsync import --schedules roster.csv --shifts shifts.csv

  # Excel roster into a specific SQLite database
  shiftsync import --schedules roster.xlsx --db ./shiftsync.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(importSchedules) == 0 && len(importShifts) == 0 {
			return fmt.Errorf("nothing to import: pass --schedules and/or --shifts")
		}

		ctx := cmd.Context()
		store, err := openStore(ctx, importDBPath)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		if len(importSchedules) > 0 {
			read, err := rowsource.ReadSchedules(importSchedules, importFormat)
			if err != nil {
				return err
			}
			inserted, err := store.InsertSchedules(ctx, read.Schedules)
			if err != nil {
				return err
			}
			fmt.Printf("Schedules imported. Files: %d, Rows read: %d, Rows mapped: %d, Rows skipped: %d, Rows persisted: %d\n",
				read.FilesProcessed, read.RowsRead, read.RowsMapped, read.RowsSkipped, inserted)
		}

		if len(importShifts) > 0 {
			read, err := rowsource.ReadShifts(importShifts, importFormat)
			if err != nil {
				return err
			}
			inserted, err := store.InsertShifts(ctx, read.Shifts)
			if err != nil {
				return err
			}
			fmt.Printf("Shifts imported. Files: %d, Rows read: %d, Rows mapped: %d, Rows skipped: %d, Rows persisted: %d\n",
				read.FilesProcessed, read.RowsRead, read.RowsMapped, read.RowsSkipped, inserted)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVar(&importSchedules, "schedules", nil, "Schedule roster file path (repeatable)")
	importCmd.Flags().StringArrayVar(&importShifts, "shifts", nil, "Shift definition file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "SQLite database path override (forces the sqlite backend)")
}
