package rowsource

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCSVReader_TrimsPaddedHeadersAndCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "padded.csv")
	content := " User ID , Shift Code ,Time From\n" +
		"  u1  ,  DAY ,06:00\n" +
		"u2, LATE\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := (&CSVReader{}).Read(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Values["userid"] != "u1" || records[0].Values["shiftcode"] != "DAY" {
		t.Fatalf("expected padded cells trimmed at read time, got %+v", records[0].Values)
	}
	if records[0].RowNumber != 2 {
		t.Fatalf("expected row number 2, got %d", records[0].RowNumber)
	}
	if records[1].Values["timefrom"] != "" {
		t.Fatalf("expected short row to pad missing cells, got %+v", records[1].Values)
	}
}

func TestInferFormat(t *testing.T) {
	if format, err := InferFormat("rows.csv", ""); err != nil || format != "csv" {
		t.Fatalf("expected csv, got %q (%v)", format, err)
	}
	if format, err := InferFormat("rows.xlsx", ""); err != nil || format != "excel" {
		t.Fatalf("expected excel, got %q (%v)", format, err)
	}
	if format, err := InferFormat("rows.xlsx", "csv"); err != nil || format != "csv" {
		t.Fatalf("expected explicit format to win, got %q (%v)", format, err)
	}
	if _, err := InferFormat("rows.dat", ""); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
