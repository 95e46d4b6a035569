package reconcile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"shiftsync/internal/timeutil"
	"shiftsync/roster"
	"shiftsync/storage"
)

func TestSync_SinglePunchAgainstOneSchedule(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	seedShifts(t, store, roster.ShiftWindow{Code: "DAY", TimeFrom: "06:00", TimeTo: "14:00"})
	seedSchedule(t, store, "u1", "2024-03-01", "DAY")

	rows := []Row{{UserID: "u1", Date: "2024-03-01", PunchCount: 1, SingleTime: "06:05"}}

	result, err := Sync(ctx, store, store, rows)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.Matched != 1 || result.Modified != 1 {
		t.Fatalf("expected matched=1 modified=1, got matched=%d modified=%d", result.Matched, result.Modified)
	}
	if len(result.NoSchedule) != 0 {
		t.Fatalf("expected no exceptions, got %v", result.NoSchedule)
	}

	schedule := findSchedule(t, store, "u1", "2024-03-01")
	if schedule.Attendance.ActualIn != "06:05" || schedule.Attendance.ActualOut != "" {
		t.Fatalf("unexpected attendance times: in=%q out=%q", schedule.Attendance.ActualIn, schedule.Attendance.ActualOut)
	}
	if schedule.Attendance.Flag != roster.FlagInOnly {
		t.Fatalf("expected flag %s, got %q", roster.FlagInOnly, schedule.Attendance.Flag)
	}
	if schedule.Attendance.Note != "single punch" {
		t.Fatalf("expected single punch note, got %q", schedule.Attendance.Note)
	}
}

func TestSync_SecondRunModifiesNothing(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	seedShifts(t, store, roster.ShiftWindow{Code: "DAY", TimeFrom: "06:00", TimeTo: "14:00"})
	seedSchedule(t, store, "u1", "2024-03-01", "DAY")

	rows := []Row{{UserID: "u1", Date: "2024-03-01", PunchCount: 2, ActualIn: "06:10", ActualOut: "14:05"}}

	first, err := Sync(ctx, store, store, rows)
	if err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if first.Matched != 1 || first.Modified != 1 {
		t.Fatalf("first run: expected matched=1 modified=1, got matched=%d modified=%d", first.Matched, first.Modified)
	}

	second, err := Sync(ctx, store, store, rows)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if second.Matched != 1 || second.Modified != 0 {
		t.Fatalf("second run: expected matched=1 modified=0, got matched=%d modified=%d", second.Matched, second.Modified)
	}
}

func TestSync_NoScheduleDayIsReported(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	rows := []Row{{UserID: "u9", Date: "2024-03-02", PunchCount: 2, ActualIn: "08:00", ActualOut: "16:00"}}

	result, err := Sync(ctx, store, store, rows)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(result.NoSchedule) != 1 {
		t.Fatalf("expected 1 no-schedule entry, got %d", len(result.NoSchedule))
	}
	if result.NoSchedule[0] != (RowRef{UserID: "u9", Date: "2024-03-02"}) {
		t.Fatalf("unexpected no-schedule ref: %+v", result.NoSchedule[0])
	}
	if result.Matched != 0 || result.Modified != 0 {
		t.Fatalf("expected no updates, got matched=%d modified=%d", result.Matched, result.Modified)
	}
}

func TestSync_EmptyBatchIsRejected(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := Sync(ctx, store, store, nil); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}

func TestSync_UnusableRowsAreSkippedSilently(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	seedShifts(t, store, roster.ShiftWindow{Code: "DAY", TimeFrom: "06:00", TimeTo: "14:00"})
	seedSchedule(t, store, "u1", "2024-03-01", "DAY")

	rows := []Row{
		{UserID: "u1", Date: "2024-03-01", PunchCount: 0},
		{UserID: "u1", Date: "2024-03-01", PunchCount: 3, ActualIn: "06:10"},
		{UserID: "u1", Date: "bad-date", PunchCount: 1, SingleTime: "06:05"},
		{UserID: "u1", Date: "2024-03-01", PunchCount: 1, SingleTime: "06:05"},
	}

	result, err := Sync(ctx, store, store, rows)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.RowsSkipped != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", result.RowsSkipped)
	}
	if result.RowsProcessed != 1 {
		t.Fatalf("expected 1 processed row, got %d", result.RowsProcessed)
	}
	if len(result.NoSchedule) != 0 {
		t.Fatalf("skipped rows must not produce exceptions, got %v", result.NoSchedule)
	}
}

func TestSync_DualPunchDistributedAcrossSchedules(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	seedShifts(t, store,
		roster.ShiftWindow{Code: "EARLY", TimeFrom: "06:00", TimeTo: "14:00"},
		roster.ShiftWindow{Code: "LATE", TimeFrom: "14:00", TimeTo: "22:00"},
	)
	seedSchedule(t, store, "u1", "2024-03-01", "EARLY")
	seedSchedule(t, store, "u1", "2024-03-01", "LATE")

	rows := []Row{{UserID: "u1", Date: "2024-03-01", PunchCount: 2, ActualIn: "06:10", ActualOut: "21:50"}}

	result, err := Sync(ctx, store, store, rows)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.Matched != 2 || result.Modified != 2 {
		t.Fatalf("expected matched=2 modified=2, got matched=%d modified=%d", result.Matched, result.Modified)
	}

	from, to, err := timeutil.DayRange("2024-03-01")
	if err != nil {
		t.Fatalf("day range: %v", err)
	}
	schedules, err := store.FindByUserAndDay(ctx, "u1", from, to)
	if err != nil {
		t.Fatalf("find schedules: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(schedules))
	}

	early, late := schedules[0], schedules[1]
	if early.Attendance.ActualIn != "06:10" || early.Attendance.ActualOut != "14:00" {
		t.Fatalf("early shift: expected in=06:10 out=14:00, got in=%q out=%q", early.Attendance.ActualIn, early.Attendance.ActualOut)
	}
	if late.Attendance.ActualIn != "14:00" || late.Attendance.ActualOut != "21:50" {
		t.Fatalf("late shift: expected in=14:00 out=21:50, got in=%q out=%q", late.Attendance.ActualIn, late.Attendance.ActualOut)
	}
}

func TestSync_ShiftCodeMatchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	seedShifts(t, store, roster.ShiftWindow{Code: "day", TimeFrom: "06:00", TimeTo: "14:00"})
	seedSchedule(t, store, "u1", "2024-03-01", "Day")

	rows := []Row{{UserID: "u1", Date: "2024-03-01", PunchCount: 1, SingleTime: "06:05"}}

	if _, err := Sync(ctx, store, store, rows); err != nil {
		t.Fatalf("sync: %v", err)
	}

	schedule := findSchedule(t, store, "u1", "2024-03-01")
	if schedule.Attendance.Flag != roster.FlagInOnly {
		t.Fatalf("expected window to resolve despite code casing, got flag %q", schedule.Attendance.Flag)
	}
}

func openTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "sync.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func seedShifts(t *testing.T, store *storage.SQLiteStore, shifts ...roster.ShiftWindow) {
	t.Helper()
	if _, err := store.InsertShifts(context.Background(), shifts); err != nil {
		t.Fatalf("insert shifts: %v", err)
	}
}

// seedSchedule persists a schedule whose work-date timestamp carries a
// morning time-of-day component, so the day window filter is exercised.
func seedSchedule(t *testing.T, store *storage.SQLiteStore, userID, date, shiftCode string) {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	schedule := roster.Schedule{
		UserID:    userID,
		WorkDate:  day.Add(8 * time.Hour),
		ShiftCode: shiftCode,
	}
	if _, err := store.InsertSchedules(context.Background(), []roster.Schedule{schedule}); err != nil {
		t.Fatalf("insert schedule: %v", err)
	}
}

func findSchedule(t *testing.T, store *storage.SQLiteStore, userID, date string) roster.Schedule {
	t.Helper()
	from, to, err := timeutil.DayRange(date)
	if err != nil {
		t.Fatalf("day range: %v", err)
	}
	schedules, err := store.FindByUserAndDay(context.Background(), userID, from, to)
	if err != nil {
		t.Fatalf("find schedules: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("expected exactly one schedule, got %d", len(schedules))
	}
	return schedules[0]
}
