package rowsource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadSchedules_FromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	content := "user_id,work_date,shift_code\n" +
		"u1,2024-03-01,DAY\n" +
		"u1,01.03.2024,LATE\n" +
		"u2,2024-03-01,\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	result, err := ReadSchedules([]string{path}, "csv")
	if err != nil {
		t.Fatalf("read schedules: %v", err)
	}

	if result.RowsMapped != 2 || result.RowsSkipped != 1 {
		t.Fatalf("expected 2 mapped and 1 skipped, got %+v", result)
	}

	expected := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	for i, schedule := range result.Schedules {
		if !schedule.WorkDate.Equal(expected) {
			t.Fatalf("schedule %d: expected work date %v, got %v", i, expected, schedule.WorkDate)
		}
	}
	if result.Schedules[0].ShiftCode != "DAY" || result.Schedules[1].ShiftCode != "LATE" {
		t.Fatalf("unexpected shift codes: %+v", result.Schedules)
	}
}

func TestReadSchedules_MalformedDateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	content := "user_id,work_date,shift_code\nu1,sometime,DAY\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	if _, err := ReadSchedules([]string{path}, "csv"); err == nil {
		t.Fatalf("expected error for malformed work date")
	}
}

func TestReadShifts_FromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shifts.csv")
	content := "code,time_from,time_to\n" +
		"DAY,06:00,14:00\n" +
		"NIGHT,22:00,\n" +
		",07:00,15:00\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	result, err := ReadShifts([]string{path}, "")
	if err != nil {
		t.Fatalf("read shifts: %v", err)
	}

	if result.RowsMapped != 2 || result.RowsSkipped != 1 {
		t.Fatalf("expected 2 mapped and 1 skipped, got %+v", result)
	}
	if result.Shifts[0].Code != "DAY" || result.Shifts[0].TimeFrom != "06:00" || result.Shifts[0].TimeTo != "14:00" {
		t.Fatalf("unexpected first shift: %+v", result.Shifts[0])
	}
	if result.Shifts[1].TimeTo != "" {
		t.Fatalf("expected open-ended night window, got %+v", result.Shifts[1])
	}
}

func TestRecordGet_ChecksEveryKeyVariant(t *testing.T) {
	record := Record{Values: map[string]string{"timefrom": "06:00"}}

	if got := record.Get("time_from", "from"); got != "06:00" {
		t.Fatalf("expected normalized key lookup to succeed, got %q", got)
	}
	if got := record.Get("timeto", "to"); got != "" {
		t.Fatalf("expected empty value for absent keys, got %q", got)
	}
}
