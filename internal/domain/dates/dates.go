// internal/domain/dates/dates.go
package dates

import (
	"errors"
	"time"
)

// Layout is the only date shape the tracker accepts from users and storage.
const Layout = "2006-01-02"

var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// Parse converts a YYYY-MM-DD string into a date at midnight UTC.
// Any other shape is rejected with ErrInvalidDateFormat.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// Format renders a date back into the YYYY-MM-DD shape.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Midnight drops the time-of-day component. Both arguments of a day
// difference are normalized through here, so sub-day components never
// introduce rounding ambiguity.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed whole-day difference b - a.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// AddDays performs calendar-correct day addition, handling month and
// year rollover.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, n)
}

// DaysFromToday returns the signed day count from now's date to d.
// Negative means d is in the past.
func DaysFromToday(d, now time.Time) int {
	return DaysBetween(now, d)
}
