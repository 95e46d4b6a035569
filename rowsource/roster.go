package rowsource

import (
	"fmt"
	"strings"
	"time"

	"shiftsync/roster"
)

// RosterResult reports one roster-file read (schedules or shift definitions).
type RosterResult struct {
	FilesProcessed int
	RowsRead       int
	RowsMapped     int
	RowsSkipped    int
	Schedules      []roster.Schedule
	Shifts         []roster.ShiftWindow
}

// ReadSchedules loads shift assignments from CSV/Excel roster files.
func ReadSchedules(paths []string, format string) (*RosterResult, error) {
	result := &RosterResult{Schedules: make([]roster.Schedule, 0, 256)}
	err := readRoster(paths, format, result, func(record Record) (bool, error) {
		schedule, ok, err := mapSchedule(record)
		if err != nil || !ok {
			return false, err
		}
		result.Schedules = append(result.Schedules, schedule)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReadShifts loads shift definitions (boundary windows) from CSV/Excel files.
func ReadShifts(paths []string, format string) (*RosterResult, error) {
	result := &RosterResult{Shifts: make([]roster.ShiftWindow, 0, 32)}
	err := readRoster(paths, format, result, func(record Record) (bool, error) {
		shift, ok := mapShift(record)
		if !ok {
			return false, nil
		}
		result.Shifts = append(result.Shifts, shift)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func readRoster(paths []string, format string, result *RosterResult, mapRecord func(Record) (bool, error)) error {
	for _, path := range paths {
		sourceFormat, err := InferFormat(path, format)
		if err != nil {
			return err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return err
		}

		records, err := reader.Read(path)
		if err != nil {
			return err
		}

		result.FilesProcessed++
		result.RowsRead += len(records)
		for _, record := range records {
			mapped, err := mapRecord(record)
			if err != nil {
				return err
			}
			if !mapped {
				result.RowsSkipped++
				continue
			}
			result.RowsMapped++
		}
	}
	return nil
}

func mapSchedule(record Record) (roster.Schedule, bool, error) {
	userID := record.Get("userid", "user", "employeeid")
	shiftCode := record.Get("shiftcode", "shift", "code")
	dateValue := record.Get("workdate", "date")
	if userID == "" || shiftCode == "" || dateValue == "" {
		return roster.Schedule{}, false, nil
	}

	workDate, err := parseWorkDate(dateValue)
	if err != nil {
		return roster.Schedule{}, false, fmt.Errorf("row %d: %w", record.RowNumber, err)
	}

	return roster.Schedule{
		UserID:    userID,
		WorkDate:  workDate,
		ShiftCode: shiftCode,
	}, true, nil
}

func mapShift(record Record) (roster.ShiftWindow, bool) {
	code := record.Get("code", "shiftcode", "shift")
	if code == "" {
		return roster.ShiftWindow{}, false
	}

	return roster.ShiftWindow{
		Code:     code,
		TimeFrom: record.Get("timefrom", "from", "starttime"),
		TimeTo:   record.Get("timeto", "to", "endtime"),
	}, true
}

func parseWorkDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	layouts := []string{
		"2006-01-02",
		"02.01.2006",
		time.RFC3339,
	}

	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported work date format: %q", value)
}
