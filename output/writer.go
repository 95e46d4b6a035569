package output

import (
	"fmt"
	"strings"
	"time"

	"shiftsync/internal/timeutil"
	"shiftsync/roster"
)

type Writer interface {
	Write(path string, schedules []roster.Schedule) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

func headerRow() []string {
	return []string{"UserID", "WorkDate", "ShiftCode", "ActualIn", "ActualOut", "AttendanceFlag", "AttendanceNote"}
}

func scheduleRow(schedule roster.Schedule) []string {
	return []string{
		schedule.UserID,
		schedule.WorkDate.Format(time.RFC3339),
		schedule.ShiftCode,
		clockValue(schedule.Attendance.ActualIn),
		clockValue(schedule.Attendance.ActualOut),
		schedule.Attendance.Flag,
		schedule.Attendance.Note,
	}
}

// clockValue normalizes parseable punch times to zero-padded form for
// export; values that do not read as clock times pass through verbatim.
func clockValue(value string) string {
	if parsed := timeutil.ParseClock(value); parsed.Known {
		return parsed.String()
	}
	return value
}
