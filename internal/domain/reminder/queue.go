// internal/domain/reminder/queue.go
package reminder

import (
	"container/heap"
	"sort"
	"time"

	"period_tracker_bot/internal/domain/dates"
)

// Source tells an auto-derived prediction reminder apart from a
// manually entered one. Rebuilds only ever touch the auto slot.
type Source string

const (
	SourceAuto   Source = "AUTO"
	SourceManual Source = "MANUAL"
)

// Reminder is a scheduled, dated notification.
type Reminder struct {
	When    time.Time
	Message string
	Source  Source
}

// item wraps a reminder with an insertion sequence so that ties on
// When are broken by insertion order.
type item struct {
	Reminder
	seq uint64
}

type minHeap []item

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if !h[i].When.Equal(h[j].When) {
		return h[i].When.Before(h[j].When)
	}
	return h[i].seq < h[j].seq
}
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(item)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Queue holds upcoming reminders ordered by When ascending. It is a
// derived cache over the ledger's prediction plus whatever manual
// reminders the user entered; it is always safe to discard and
// rebuild.
type Queue struct {
	items   minHeap
	nextSeq uint64
}

func NewQueue() *Queue {
	return &Queue{items: make(minHeap, 0)}
}

func (q *Queue) push(r Reminder) {
	heap.Push(&q.items, item{Reminder: r, seq: q.nextSeq})
	q.nextSeq++
}

// RebuildFromPrediction replaces the single auto-generated prediction
// reminder. Manual entries are left untouched. When ok is false (empty
// ledger, no prediction) the auto slot is simply cleared.
func (q *Queue) RebuildFromPrediction(predicted time.Time, ok bool) {
	q.removeAuto()
	if !ok {
		return
	}
	q.push(Reminder{
		When:    dates.Midnight(predicted),
		Message: "Predicted next period: " + dates.Format(predicted),
		Source:  SourceAuto,
	})
}

func (q *Queue) removeAuto() {
	kept := q.items[:0]
	for _, it := range q.items {
		if it.Source != SourceAuto {
			kept = append(kept, it)
		}
	}
	q.items = kept
	heap.Init(&q.items)
}

// AddManual schedules a user-entered reminder.
func (q *Queue) AddManual(when time.Time, message string) {
	q.push(Reminder{When: dates.Midnight(when), Message: message, Source: SourceManual})
}

// PurgeExpired drops every reminder strictly before now, earliest
// first. The ordering invariant guarantees no later expired entry
// survives once the front is current.
func (q *Queue) PurgeExpired(now time.Time) {
	for q.items.Len() > 0 && q.items[0].When.Before(now) {
		heap.Pop(&q.items)
	}
}

// PopDue removes and returns every reminder with When <= now, in
// order. The delivery job drains due reminders through here so each
// one is handed out exactly once.
func (q *Queue) PopDue(now time.Time) []Reminder {
	var due []Reminder
	for q.items.Len() > 0 && !q.items[0].When.After(now) {
		it := heap.Pop(&q.items).(item)
		due = append(due, it.Reminder)
	}
	return due
}

// Upcoming returns up to limit reminders in ascending order without
// mutating the queue.
func (q *Queue) Upcoming(limit int) []Reminder {
	snapshot := make(minHeap, len(q.items))
	copy(snapshot, q.items)
	sort.Sort(snapshot)

	if limit < 0 || limit > len(snapshot) {
		limit = len(snapshot)
	}
	out := make([]Reminder, 0, limit)
	for _, it := range snapshot[:limit] {
		out = append(out, it.Reminder)
	}
	return out
}

func (q *Queue) Len() int {
	return q.items.Len()
}
