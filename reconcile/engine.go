package reconcile

import (
	"strings"

	"shiftsync/internal/timeutil"
	"shiftsync/roster"
)

// singlePunchNote marks schedules whose lone punch was classified against
// the shift's boundary window.
const singlePunchNote = "single punch"

// windowFor resolves a candidate's boundary window. Stores key windows on
// trimmed upper-case codes, so the candidate's code is normalized the same
// way before the lookup.
func windowFor(windows map[string]roster.ShiftWindow, shiftCode string) roster.ShiftWindow {
	return windows[strings.ToUpper(strings.TrimSpace(shiftCode))]
}

// classifySinglePunch decides whether a day's lone punch is an arrival or a
// departure. Each candidate schedule is judged independently against its own
// configured window; a day with several candidates yields several updates.
func classifySinglePunch(row Row, candidates []roster.Schedule, windows map[string]roster.ShiftWindow) []roster.AttendanceUpdate {
	punch := timeutil.ParseClock(row.SingleTime)

	updates := make([]roster.AttendanceUpdate, 0, len(candidates))
	for _, candidate := range candidates {
		window := windowFor(windows, candidate.ShiftCode)
		from := timeutil.ParseClock(window.TimeFrom)
		to := timeutil.ParseClock(window.TimeTo)

		update := roster.AttendanceUpdate{ScheduleID: candidate.ID}
		if punch.Known && from.Known && to.Known {
			// Ties favor arrival.
			if absDiff(punch.Seconds, from.Seconds) <= absDiff(punch.Seconds, to.Seconds) {
				update.ActualIn = row.SingleTime
				update.Flag = roster.FlagInOnly
			} else {
				update.ActualOut = row.SingleTime
				update.Flag = roster.FlagOutOnly
			}
			update.Note = singlePunchNote
		} else {
			// Window or punch unreadable: record the punch on both fields
			// without guessing a direction.
			update.ActualIn = row.SingleTime
			update.ActualOut = row.SingleTime
		}

		updates = append(updates, update)
	}

	return updates
}

// assignDualPunch distributes a day's first and last punch across the
// candidate schedules. With a single candidate the row values are assigned
// verbatim. With several, the arrival goes to the candidate whose configured
// timeFrom is strictly closest to it, the departure symmetrically to the
// closest timeTo, and every other candidate keeps its own configured bounds.
func assignDualPunch(row Row, candidates []roster.Schedule, windows map[string]roster.ShiftWindow) []roster.AttendanceUpdate {
	if len(candidates) == 1 {
		return []roster.AttendanceUpdate{{
			ScheduleID: candidates[0].ID,
			Attendance: roster.Attendance{
				ActualIn:  row.ActualIn,
				ActualOut: row.ActualOut,
			},
		}}
	}

	punchIn := timeutil.ParseClock(row.ActualIn)
	punchOut := timeutil.ParseClock(row.ActualOut)

	bestIn, bestOut := -1, -1
	var bestInDist, bestOutDist int
	for i, candidate := range candidates {
		window := windowFor(windows, candidate.ShiftCode)
		from := timeutil.ParseClock(window.TimeFrom)
		to := timeutil.ParseClock(window.TimeTo)

		if punchIn.Known && from.Known {
			if dist := absDiff(punchIn.Seconds, from.Seconds); bestIn < 0 || dist < bestInDist {
				bestIn, bestInDist = i, dist
			}
		}
		if punchOut.Known && to.Known {
			if dist := absDiff(punchOut.Seconds, to.Seconds); bestOut < 0 || dist < bestOutDist {
				bestOut, bestOutDist = i, dist
			}
		}
	}

	updates := make([]roster.AttendanceUpdate, 0, len(candidates))
	for i, candidate := range candidates {
		window := windowFor(windows, candidate.ShiftCode)
		update := roster.AttendanceUpdate{
			ScheduleID: candidate.ID,
			Attendance: roster.Attendance{
				ActualIn:  window.TimeFrom,
				ActualOut: window.TimeTo,
			},
		}
		if i == bestIn {
			update.ActualIn = row.ActualIn
		}
		if i == bestOut {
			update.ActualOut = row.ActualOut
		}
		updates = append(updates, update)
	}

	return updates
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}
