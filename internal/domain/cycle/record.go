// internal/domain/cycle/record.go
package cycle

import (
	"errors"
	"time"
)

// Custom errors for ledger operations.
var (
	ErrEndBeforeStart = errors.New("cycle end date is before its start date")
	ErrDuplicateStart = errors.New("a cycle with this start date already exists")
	ErrCycleNotFound  = errors.New("cycle not found")
)

// Record represents one observed menstrual cycle.
// Records are immutable value objects: the ledger replaces a record
// wholesale when a derived field changes, it never edits one in place.
type Record struct {
	StartDate    time.Time
	EndDate      time.Time
	DurationDays int // EndDate - StartDate, bleeding-day span
	CycleLength  int // days since the previous cycle's start; 0 for the first record
}

// SameSpan reports whether two records describe the same start/end pair.
// Undo matches ledger entries by span, not by derived fields, so a
// snapshot with a stale CycleLength still finds its live counterpart.
func (r Record) SameSpan(other Record) bool {
	return r.StartDate.Equal(other.StartDate) && r.EndDate.Equal(other.EndDate)
}
