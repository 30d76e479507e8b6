package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"period_tracker_bot/internal/domain/cycle"
	"period_tracker_bot/internal/domain/dates"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	require.NoError(t, err)
	return d
}

func addCycle(t *testing.T, l *cycle.Ledger, h *History, start, end string) cycle.Record {
	t.Helper()
	rec, err := l.Add(date(t, start), date(t, end))
	require.NoError(t, err)
	h.Record(KindAdd, rec)
	return rec
}

func TestUndoEmptyHistory(t *testing.T) {
	l := cycle.NewLedger()
	h := NewHistory()

	out := h.UndoLast(l)
	assert.Equal(t, ResultNothingToUndo, out.Result)
	assert.Equal(t, 0, l.Len(), "ledger is untouched")

	out = h.RedoLast(l)
	assert.Equal(t, ResultNothingToRedo, out.Result)
}

func TestUndoRedoRoundTripAfterAdd(t *testing.T) {
	l := cycle.NewLedger()
	h := NewHistory()
	rec := addCycle(t, l, h, "2024-01-01", "2024-01-05")

	out := h.UndoLast(l)
	assert.Equal(t, ResultReversedAdd, out.Result)
	assert.Equal(t, rec, out.Record)
	assert.Equal(t, 0, l.Len())

	out = h.RedoLast(l)
	assert.Equal(t, ResultReversedDelete, out.Result)
	require.Equal(t, 1, l.Len())
	assert.Equal(t, rec, l.All()[0], "redo restores the record byte-for-byte")
}

func TestUndoRedoRoundTripAfterDelete(t *testing.T) {
	l := cycle.NewLedger()
	h := NewHistory()
	rec := addCycle(t, l, h, "2024-01-01", "2024-01-05")

	removed, err := l.DeleteByStart(rec.StartDate)
	require.NoError(t, err)
	h.Record(KindDelete, removed)

	out := h.UndoLast(l)
	assert.Equal(t, ResultReversedDelete, out.Result)
	assert.Equal(t, 1, l.Len())

	out = h.RedoLast(l)
	assert.Equal(t, ResultReversedAdd, out.Result)
	assert.Equal(t, 0, l.Len())
}

func TestNewActionClearsRedoTrail(t *testing.T) {
	l := cycle.NewLedger()
	h := NewHistory()
	addCycle(t, l, h, "2024-01-01", "2024-01-05")

	h.UndoLast(l)
	_, redoDepth := h.Depth()
	require.Equal(t, 1, redoDepth)

	addCycle(t, l, h, "2024-02-01", "2024-02-05")
	_, redoDepth = h.Depth()
	assert.Equal(t, 0, redoDepth, "a new action invalidates the redo trail")

	out := h.RedoLast(l)
	assert.Equal(t, ResultNothingToRedo, out.Result)
}

func TestUndoReportsAlreadyMissing(t *testing.T) {
	l := cycle.NewLedger()
	h := NewHistory()
	rec := addCycle(t, l, h, "2024-01-01", "2024-01-05")

	// The record vanished outside the history's knowledge.
	_, err := l.DeleteByStart(rec.StartDate)
	require.NoError(t, err)

	out := h.UndoLast(l)
	assert.Equal(t, ResultAlreadyMissing, out.Result)

	// The trail stays balanced: redo can still bring the record back.
	out = h.RedoLast(l)
	assert.Equal(t, ResultReversedDelete, out.Result)
	assert.Equal(t, 1, l.Len())
}

func TestUndoReportsAlreadyPresent(t *testing.T) {
	l := cycle.NewLedger()
	h := NewHistory()
	rec := addCycle(t, l, h, "2024-01-01", "2024-01-05")

	removed, err := l.DeleteByStart(rec.StartDate)
	require.NoError(t, err)
	h.Record(KindDelete, removed)

	// The record reappeared outside the history's knowledge.
	require.NoError(t, l.Restore(removed))

	out := h.UndoLast(l)
	assert.Equal(t, ResultAlreadyPresent, out.Result)
	assert.Equal(t, 1, l.Len())
}

func TestUndoMatchesBySpanNotDerivedFields(t *testing.T) {
	l := cycle.NewLedger()
	h := NewHistory()
	addCycle(t, l, h, "2024-02-01", "2024-02-05")

	// Inserting an earlier cycle replaces the February record with one
	// carrying a recomputed length; the snapshot in the history still
	// matches it by span.
	addCycle(t, l, h, "2024-01-01", "2024-01-05")
	h.UndoLast(l) // removes January
	out := h.UndoLast(l)
	assert.Equal(t, ResultReversedAdd, out.Result)
	assert.Equal(t, 0, l.Len())
}

func TestHistoryHoldsSnapshotsNotReferences(t *testing.T) {
	l := cycle.NewLedger()
	h := NewHistory()
	rec := addCycle(t, l, h, "2024-01-01", "2024-01-05")

	// Mutating the ledger afterwards must not corrupt the snapshot.
	addCycle(t, l, h, "2023-12-01", "2023-12-05")
	h.UndoLast(l) // removes December
	out := h.UndoLast(l)
	assert.Equal(t, rec, out.Record)
}
