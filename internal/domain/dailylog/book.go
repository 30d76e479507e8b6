// internal/domain/dailylog/book.go
package dailylog

import (
	"context"
	"sort"
	"time"

	"period_tracker_bot/internal/domain/dates"
)

// Entry records symptoms and mood for a single day, keyed by date.
type Entry struct {
	Date     time.Time
	Symptoms string
	Mood     string
}

// Repository defines the persistence collaborator for daily logs,
// exchanged as whole snapshots like the cycle repository.
type Repository interface {
	LoadAll(ctx context.Context) ([]Entry, error)
	ReplaceAll(ctx context.Context, entries []Entry) error
}

// Book is the in-memory keyed store of daily logs. No derived logic
// lives here.
type Book struct {
	entries map[string]Entry
}

func NewBook() *Book {
	return &Book{entries: make(map[string]Entry)}
}

// Log records symptoms and mood for a date. Logging the same date
// again appends new symptoms with "; " and replaces the mood; empty
// fields leave the existing values alone.
func (b *Book) Log(date time.Time, symptoms, mood string) {
	key := dates.Format(date)
	existing, ok := b.entries[key]
	if !ok {
		b.entries[key] = Entry{Date: dates.Midnight(date), Symptoms: symptoms, Mood: mood}
		return
	}
	if symptoms != "" {
		if existing.Symptoms != "" {
			existing.Symptoms += "; "
		}
		existing.Symptoms += symptoms
	}
	if mood != "" {
		existing.Mood = mood
	}
	b.entries[key] = existing
}

// All returns the entries in ascending date order.
func (b *Book) All() []Entry {
	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Reset replaces the book's contents with a loaded snapshot.
func (b *Book) Reset(entries []Entry) {
	b.entries = make(map[string]Entry, len(entries))
	for _, e := range entries {
		b.entries[dates.Format(e.Date)] = Entry{
			Date:     dates.Midnight(e.Date),
			Symptoms: e.Symptoms,
			Mood:     e.Mood,
		}
	}
}

func (b *Book) Len() int {
	return len(b.entries)
}
