// internal/domain/cycle/stats.go
package cycle

import (
	"time"

	"period_tracker_bot/internal/domain/dates"
)

// DefaultCycleLength is assumed until at least two recorded cycles
// yield a measured cycle-to-cycle interval.
const DefaultCycleLength = 28

// Summary aggregates the ledger for the analytics view. The cycle
// length figures are meaningful only when HasCycleLengthData is set;
// with fewer than two cycles there is no interval to measure.
type Summary struct {
	Count              int
	AvgDuration        float64
	MinDuration        int
	MaxDuration        int
	HasCycleLengthData bool
	AvgCycleLength     float64
	MinCycleLength     int
	MaxCycleLength     int
}

// AverageCycleLength returns the integer-truncated mean of all
// positive cycle lengths, or DefaultCycleLength when none exist.
func AverageCycleLength(records []Record) int {
	sum, n := 0, 0
	for _, r := range records {
		if r.CycleLength > 0 {
			sum += r.CycleLength
			n++
		}
	}
	if n == 0 {
		return DefaultCycleLength
	}
	return sum / n
}

// PredictNextStart projects the next cycle start from the latest
// recorded start plus the average cycle length. Returns false on an
// empty ledger.
func PredictNextStart(records []Record) (time.Time, bool) {
	if len(records) == 0 {
		return time.Time{}, false
	}
	latest := records[0].StartDate
	for _, r := range records[1:] {
		if r.StartDate.After(latest) {
			latest = r.StartDate
		}
	}
	return dates.AddDays(latest, AverageCycleLength(records)), true
}

// Summarize derives the analytics summary from the given records.
func Summarize(records []Record) Summary {
	s := Summary{Count: len(records)}
	if len(records) == 0 {
		return s
	}

	sumDur := 0
	s.MinDuration = records[0].DurationDays
	s.MaxDuration = records[0].DurationDays
	sumLen, countLen := 0, 0
	for _, r := range records {
		sumDur += r.DurationDays
		if r.DurationDays < s.MinDuration {
			s.MinDuration = r.DurationDays
		}
		if r.DurationDays > s.MaxDuration {
			s.MaxDuration = r.DurationDays
		}
		if r.CycleLength > 0 {
			sumLen += r.CycleLength
			countLen++
			if !s.HasCycleLengthData || r.CycleLength < s.MinCycleLength {
				s.MinCycleLength = r.CycleLength
			}
			if !s.HasCycleLengthData || r.CycleLength > s.MaxCycleLength {
				s.MaxCycleLength = r.CycleLength
			}
			s.HasCycleLengthData = true
		}
	}
	s.AvgDuration = float64(sumDur) / float64(len(records))
	if countLen > 0 {
		s.AvgCycleLength = float64(sumLen) / float64(countLen)
	}
	return s
}
