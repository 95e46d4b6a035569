package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shiftsync/roster"
)

// ShiftCategory is the master-data category holding shift definitions.
const ShiftCategory = "SHIFT"

// UpdateResult reports how an attendance update landed: Matched counts
// schedules found as update targets, Modified counts those whose stored
// values actually changed. Re-applying an identical update yields
// Matched > 0 with Modified == 0.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// ScheduleStore reads and updates persisted shift assignments.
type ScheduleStore interface {
	InsertSchedules(ctx context.Context, schedules []roster.Schedule) (int, error)
	// FindByUserAndDay returns all non-deleted schedules whose work-date
	// timestamp falls within [from, to], in the store's natural order.
	FindByUserAndDay(ctx context.Context, userID string, from, to time.Time) ([]roster.Schedule, error)
	ListSchedules(ctx context.Context) ([]roster.Schedule, error)
	ApplyAttendance(ctx context.Context, update roster.AttendanceUpdate) (UpdateResult, error)
}

// ShiftStore reads shift definitions from master data.
type ShiftStore interface {
	InsertShifts(ctx context.Context, shifts []roster.ShiftWindow) (int, error)
	// WindowsByCodes resolves boundary windows for a set of shift codes,
	// matching case-insensitively. The returned map is keyed by upper-cased
	// code; codes without a definition are simply absent.
	WindowsByCodes(ctx context.Context, codes []string) (map[string]roster.ShiftWindow, error)
}

// Store combines both stores behind one backend connection.
type Store interface {
	ScheduleStore
	ShiftStore
	Close(ctx context.Context) error
}

// Open returns the store selected by backend name: "sqlite" or "mongo".
func Open(ctx context.Context, backend, sqlitePath, mongoURI, mongoDatabase string) (Store, error) {
	switch strings.TrimSpace(strings.ToLower(backend)) {
	case "", "sqlite":
		return OpenSQLite(sqlitePath)
	case "mongo", "mongodb":
		return OpenMongo(ctx, mongoURI, mongoDatabase)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}
}
