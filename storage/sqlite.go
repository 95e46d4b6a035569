package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shiftsync/roster"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close(_ context.Context) error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS schedules (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	work_date TEXT NOT NULL,
	shift_code TEXT NOT NULL,
	actual_in TEXT,
	actual_out TEXT,
	attendance_flag TEXT,
	attendance_note TEXT,
	deleted INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_schedules_user_date ON schedules(user_id, work_date);

CREATE TABLE IF NOT EXISTS masters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL,
	code TEXT NOT NULL,
	time_from TEXT,
	time_to TEXT,
	UNIQUE(category, code)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertSchedules(ctx context.Context, schedules []roster.Schedule) (int, error) {
	if len(schedules) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const insertStmt = `
INSERT INTO schedules (user_id, work_date, shift_code, actual_in, actual_out, attendance_flag, attendance_note, deleted)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, schedule := range schedules {
		res, err := stmt.ExecContext(ctx,
			schedule.UserID,
			schedule.WorkDate.Format(time.RFC3339),
			schedule.ShiftCode,
			nullable(schedule.Attendance.ActualIn),
			nullable(schedule.Attendance.ActualOut),
			nullable(schedule.Attendance.Flag),
			nullable(schedule.Attendance.Note),
			boolToInt(schedule.Deleted),
		)
		if err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("insert schedule: %w", err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

const scheduleColumns = `id, user_id, work_date, shift_code, actual_in, actual_out, attendance_flag, attendance_note, deleted`

func (s *SQLiteStore) FindByUserAndDay(ctx context.Context, userID string, from, to time.Time) ([]roster.Schedule, error) {
	const query = `
SELECT ` + scheduleColumns + `
FROM schedules
WHERE user_id = ? AND work_date >= ? AND work_date <= ? AND deleted = 0
ORDER BY id;`

	rows, err := s.db.QueryContext(ctx, query, userID, from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query schedules for %s: %w", userID, err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

func (s *SQLiteStore) ListSchedules(ctx context.Context) ([]roster.Schedule, error) {
	const query = `
SELECT ` + scheduleColumns + `
FROM schedules
WHERE deleted = 0
ORDER BY work_date, id;`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query schedules: %w", err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

func scanSchedules(rows *sql.Rows) ([]roster.Schedule, error) {
	schedules := make([]roster.Schedule, 0, 16)
	for rows.Next() {
		var (
			id       int64
			dateRaw  string
			deleted  int
			in, out  sql.NullString
			flag     sql.NullString
			note     sql.NullString
			schedule roster.Schedule
		)

		if err := rows.Scan(&id, &schedule.UserID, &dateRaw, &schedule.ShiftCode, &in, &out, &flag, &note, &deleted); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}

		workDate, err := time.Parse(time.RFC3339, dateRaw)
		if err != nil {
			return nil, fmt.Errorf("parse work date %q: %w", dateRaw, err)
		}

		schedule.ID = strconv.FormatInt(id, 10)
		schedule.WorkDate = workDate
		schedule.Attendance = roster.Attendance{
			ActualIn:  in.String,
			ActualOut: out.String,
			Flag:      flag.String,
			Note:      note.String,
		}
		schedule.Deleted = deleted != 0
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}

	return schedules, nil
}

// ApplyAttendance writes the attendance fields of one schedule. Modified
// stays zero when the stored values already equal the update, so re-running
// the same batch reports no changes.
func (s *SQLiteStore) ApplyAttendance(ctx context.Context, update roster.AttendanceUpdate) (UpdateResult, error) {
	id, err := strconv.ParseInt(update.ScheduleID, 10, 64)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("invalid schedule id %q: %w", update.ScheduleID, err)
	}

	var matched int64
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules WHERE id = ? AND deleted = 0;`, id).Scan(&matched)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("count schedule %d: %w", id, err)
	}
	if matched == 0 {
		return UpdateResult{}, nil
	}

	const updateStmt = `
UPDATE schedules
SET actual_in = ?, actual_out = ?, attendance_flag = ?, attendance_note = ?
WHERE id = ? AND deleted = 0
  AND (actual_in IS NOT ? OR actual_out IS NOT ? OR attendance_flag IS NOT ? OR attendance_note IS NOT ?);`

	in := nullable(update.ActualIn)
	out := nullable(update.ActualOut)
	flag := nullable(update.Flag)
	note := nullable(update.Note)

	res, err := s.db.ExecContext(ctx, updateStmt, in, out, flag, note, id, in, out, flag, note)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update schedule %d: %w", id, err)
	}

	modified, err := res.RowsAffected()
	if err != nil {
		return UpdateResult{}, fmt.Errorf("read updated row count: %w", err)
	}

	return UpdateResult{Matched: matched, Modified: modified}, nil
}

func (s *SQLiteStore) InsertShifts(ctx context.Context, shifts []roster.ShiftWindow) (int, error) {
	if len(shifts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const insertStmt = `
INSERT OR IGNORE INTO masters (category, code, time_from, time_to)
VALUES (?, ?, ?, ?);`

	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, shift := range shifts {
		res, err := stmt.ExecContext(ctx, ShiftCategory, strings.ToUpper(strings.TrimSpace(shift.Code)), nullable(shift.TimeFrom), nullable(shift.TimeTo))
		if err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("insert shift %s: %w", shift.Code, err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

func (s *SQLiteStore) WindowsByCodes(ctx context.Context, codes []string) (map[string]roster.ShiftWindow, error) {
	windows := make(map[string]roster.ShiftWindow, len(codes))
	if len(codes) == 0 {
		return windows, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(codes)), ", ")
	query := `
SELECT code, time_from, time_to
FROM masters
WHERE category = ? AND upper(code) IN (` + placeholders + `);`

	args := make([]any, 0, len(codes)+1)
	args = append(args, ShiftCategory)
	for _, code := range codes {
		args = append(args, strings.ToUpper(strings.TrimSpace(code)))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shift windows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code     string
			from, to sql.NullString
		)
		if err := rows.Scan(&code, &from, &to); err != nil {
			return nil, fmt.Errorf("scan shift window: %w", err)
		}
		windows[strings.ToUpper(code)] = roster.ShiftWindow{
			Code:     code,
			TimeFrom: from.String,
			TimeTo:   to.String,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shift windows: %w", err)
	}

	return windows, nil
}

// nullable maps the domain's empty-string "absent" values to SQL NULL.
func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
