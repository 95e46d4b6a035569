package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a time of day expressed as seconds since midnight. Known is
// false when the source string could not be parsed; an unknown value must
// not participate in boundary comparisons.
type ClockTime struct {
	Seconds int
	Known   bool
}

// ParseClock parses "H:MM" or "H:MM:SS" clock strings, tolerating a leading
// zero. Malformed input yields an unknown ClockTime rather than an error.
func ParseClock(value string) ClockTime {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 {
		return ClockTime{}
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ClockTime{}
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ClockTime{}
	}

	seconds := 0
	if len(parts) >= 3 {
		seconds, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return ClockTime{}
		}
	}

	return ClockTime{Seconds: hours*3600 + minutes*60 + seconds, Known: true}
}

// String formats the clock time as "HH:MM", or "HH:MM:SS" when the value
// does not fall on a whole minute. Unknown values format as the empty string.
func (c ClockTime) String() string {
	if !c.Known {
		return ""
	}
	hours := c.Seconds / 3600
	minutes := c.Seconds % 3600 / 60
	seconds := c.Seconds % 60
	if seconds == 0 {
		return fmt.Sprintf("%02d:%02d", hours, minutes)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// DayRange resolves a "YYYY-MM-DD" calendar date to the inclusive instant
// pair [local midnight, 23:59:59.999] used to query schedules for that day.
func DayRange(date string) (time.Time, time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}

	start := StartOfDay(parsed)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end, nil
}

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
