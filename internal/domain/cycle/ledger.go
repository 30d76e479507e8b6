// internal/domain/cycle/ledger.go
package cycle

import (
	"sort"
	"time"

	"period_tracker_bot/internal/domain/dates"
)

// Ledger is the ordered collection of cycle records, ascending by start
// date with unique starts. It is a pure data structure: triggering
// stats recomputation and reminder rebuilds after a mutation is the
// caller's job.
type Ledger struct {
	records []Record
}

func NewLedger() *Ledger {
	return &Ledger{records: make([]Record, 0)}
}

// Add validates and inserts a new cycle at its chronological position.
// DurationDays is computed from the span; CycleLength from the record
// with the latest start strictly before this one, or 0 when none.
func (l *Ledger) Add(start, end time.Time) (Record, error) {
	start = dates.Midnight(start)
	end = dates.Midnight(end)
	duration := dates.DaysBetween(start, end)
	if duration < 0 {
		return Record{}, ErrEndBeforeStart
	}
	if l.indexOfStart(start) >= 0 {
		return Record{}, ErrDuplicateStart
	}
	i := l.insert(Record{StartDate: start, EndDate: end, DurationDays: duration})
	l.refreshLengthAt(i)
	l.refreshLengthAt(i + 1)
	return l.records[i], nil
}

// DeleteByStart removes and returns the record whose start date equals
// start.
func (l *Ledger) DeleteByStart(start time.Time) (Record, error) {
	i := l.indexOfStart(dates.Midnight(start))
	if i < 0 {
		return Record{}, ErrCycleNotFound
	}
	removed := l.records[i]
	l.records = append(l.records[:i], l.records[i+1:]...)
	l.refreshLengthAt(i) // the successor lost its predecessor
	return removed, nil
}

// Restore re-inserts a previously removed record at its chronological
// position. Used only by undo/redo and snapshot loading; derived
// lengths are recomputed against the current neighbors.
func (l *Ledger) Restore(rec Record) error {
	rec.StartDate = dates.Midnight(rec.StartDate)
	rec.EndDate = dates.Midnight(rec.EndDate)
	if l.indexOfStart(rec.StartDate) >= 0 {
		return ErrDuplicateStart
	}
	i := l.insert(rec)
	l.refreshLengthAt(i)
	l.refreshLengthAt(i + 1)
	return nil
}

// All returns a copy of the records in ascending start-date order.
func (l *Ledger) All() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// LatestStart returns the most recent cycle start, or false on an
// empty ledger.
func (l *Ledger) LatestStart() (time.Time, bool) {
	if len(l.records) == 0 {
		return time.Time{}, false
	}
	return l.records[len(l.records)-1].StartDate, true
}

func (l *Ledger) Len() int {
	return len(l.records)
}

func (l *Ledger) indexOfStart(start time.Time) int {
	for i, r := range l.records {
		if r.StartDate.Equal(start) {
			return i
		}
	}
	return -1
}

// insert places rec at its sorted position and returns the index.
func (l *Ledger) insert(rec Record) int {
	i := sort.Search(len(l.records), func(i int) bool {
		return l.records[i].StartDate.After(rec.StartDate)
	})
	l.records = append(l.records, Record{})
	copy(l.records[i+1:], l.records[i:])
	l.records[i] = rec
	return i
}

// refreshLengthAt recomputes the CycleLength of the record at index i
// from its current chronological predecessor, replacing the record.
// Keeps the ledger invariant intact after out-of-order inserts and
// mid-sequence deletes.
func (l *Ledger) refreshLengthAt(i int) {
	if i < 0 || i >= len(l.records) {
		return
	}
	length := 0
	if i > 0 {
		length = dates.DaysBetween(l.records[i-1].StartDate, l.records[i].StartDate)
	}
	rec := l.records[i]
	rec.CycleLength = length
	l.records[i] = rec
}
