package roster

import "time"

// Attendance flag values written by the reconciliation engine. An empty flag
// means no classification was recorded.
const (
	FlagInOnly  = "IN_ONLY"
	FlagOutOnly = "OUT_ONLY"
)

// Attendance holds the reconciled time-clock fields of a schedule. Empty
// strings stand for absent values and are persisted as NULL.
type Attendance struct {
	ActualIn  string
	ActualOut string
	Flag      string
	Note      string
}

// Schedule is one persisted shift assignment for a user on a work date.
// Many schedules may share the same user and date when the user holds
// multiple ward or shift assignments that day. The reconciliation engine
// only ever mutates the Attendance fields; schedules themselves are created
// and deleted by the scheduling application.
type Schedule struct {
	ID         string
	UserID     string
	WorkDate   time.Time
	ShiftCode  string
	Attendance Attendance
	Deleted    bool
}

// AttendanceUpdate is a partial update of one schedule's attendance fields,
// keyed by schedule ID. All four fields are written on every update; empty
// strings clear the stored value.
type AttendanceUpdate struct {
	ScheduleID string
	Attendance
}

// ShiftWindow is a shift definition's configured boundary window: the
// expected arrival (TimeFrom) and departure (TimeTo) time of day as clock
// strings. Either bound may be empty when the master data does not carry it.
type ShiftWindow struct {
	Code     string
	TimeFrom string
	TimeTo   string
}
