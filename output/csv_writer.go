package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"shiftsync/roster"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, schedules []roster.Schedule) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headerRow()); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, schedule := range schedules {
		if err := writer.Write(scheduleRow(schedule)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
