package reconcile

import (
	"context"
	"errors"

	"shiftsync/internal/timeutil"
	"shiftsync/roster"
	"shiftsync/storage"
)

// RowRef identifies a row in the no-schedule exception list.
type RowRef struct {
	UserID string
	Date   string
}

// Result totals one batch run. Matched counts schedules found as update
// targets, Modified those whose stored values changed; running the same
// batch twice leaves Matched equal and Modified at zero on the second run.
type Result struct {
	RowsProcessed int
	RowsSkipped   int
	Matched       int
	Modified      int
	UpdateErrors  int
	NoSchedule    []RowRef
}

// Sync reconciles a batch of grouped attendance rows against the schedule
// store. Rows are processed sequentially and independently: a row whose date
// cannot be resolved or whose candidates cannot be read is skipped, a row
// with no candidate schedules is recorded in NoSchedule, and a failed update
// never blocks the remaining candidates or rows.
func Sync(ctx context.Context, schedules storage.ScheduleStore, shifts storage.ShiftStore, rows []Row) (*Result, error) {
	if len(rows) == 0 {
		return nil, errors.New("attendance batch must not be empty")
	}

	result := &Result{}
	for _, row := range rows {
		if !row.usable() {
			result.RowsSkipped++
			continue
		}

		from, to, err := timeutil.DayRange(row.Date)
		if err != nil {
			result.RowsSkipped++
			continue
		}

		candidates, err := schedules.FindByUserAndDay(ctx, row.UserID, from, to)
		if err != nil {
			result.RowsSkipped++
			continue
		}
		if len(candidates) == 0 {
			result.NoSchedule = append(result.NoSchedule, RowRef{UserID: row.UserID, Date: row.Date})
			continue
		}

		codes := make([]string, 0, len(candidates))
		for _, candidate := range candidates {
			codes = append(codes, candidate.ShiftCode)
		}
		windows, err := shifts.WindowsByCodes(ctx, codes)
		if err != nil {
			result.RowsSkipped++
			continue
		}

		var updates []roster.AttendanceUpdate
		if row.PunchCount == 1 {
			updates = classifySinglePunch(row, candidates, windows)
		} else {
			updates = assignDualPunch(row, candidates, windows)
		}

		result.RowsProcessed++
		for _, update := range updates {
			res, err := schedules.ApplyAttendance(ctx, update)
			if err != nil {
				result.UpdateErrors++
				continue
			}
			result.Matched += int(res.Matched)
			result.Modified += int(res.Modified)
		}
	}

	return result, nil
}
