package rowsource

import (
	"fmt"
	"strconv"

	"shiftsync/reconcile"
)

// AttendanceResult reports one attendance-file read.
type AttendanceResult struct {
	FilesProcessed int
	RowsRead       int
	RowsMapped     int
	RowsSkipped    int
	Rows           []reconcile.Row
}

// ReadAttendanceRows loads grouped per-user-per-day attendance rows from
// CSV/Excel files. Grouping raw punches into these rows happens upstream;
// this reader only normalizes the already-grouped contract.
func ReadAttendanceRows(paths []string, format string) (*AttendanceResult, error) {
	result := &AttendanceResult{Rows: make([]reconcile.Row, 0, 256)}
	for _, path := range paths {
		sourceFormat, err := InferFormat(path, format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}

		records, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(records)
		for _, record := range records {
			row, ok, err := mapAttendanceRow(record)
			if err != nil {
				return nil, err
			}
			if !ok {
				result.RowsSkipped++
				continue
			}
			result.RowsMapped++
			result.Rows = append(result.Rows, row)
		}
	}

	return result, nil
}

func mapAttendanceRow(record Record) (reconcile.Row, bool, error) {
	userID := record.Get("userid", "user", "employeeid")
	date := record.Get("date", "workdate")
	if userID == "" || date == "" {
		return reconcile.Row{}, false, nil
	}

	punchCount := 0
	if value := record.Get("punchcount", "punches"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return reconcile.Row{}, false, fmt.Errorf("row %d: parse punch count %q: %w", record.RowNumber, value, err)
		}
		punchCount = parsed
	}

	return reconcile.Row{
		UserID:     userID,
		Date:       date,
		PunchCount: punchCount,
		ActualIn:   record.Get("actualin", "firstpunch", "in"),
		ActualOut:  record.Get("actualout", "lastpunch", "out"),
		SingleTime: record.Get("singletime", "singlepunch", "punch"),
	}, true, nil
}
