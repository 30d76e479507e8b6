// internal/domain/history/history.go
package history

import (
	"period_tracker_bot/internal/domain/cycle"
)

// ActionKind tags which ledger mutation produced a history entry.
// Tagging matters: an untagged stack cannot tell "undo an add" from
// "undo a delete" when two records happen to match.
type ActionKind string

const (
	KindAdd    ActionKind = "ADD"
	KindDelete ActionKind = "DELETE"
)

// Entry is a recorded ledger mutation. The record is a value snapshot
// owned by the history stacks, never a live reference into the
// ledger's storage.
type Entry struct {
	Kind   ActionKind
	Record cycle.Record
}

// Result classifies what undo/redo did. None of these are fatal.
type Result string

const (
	ResultReversedAdd    Result = "REVERSED_ADD"     // an added record was removed
	ResultReversedDelete Result = "REVERSED_DELETE"  // a deleted record was restored
	ResultAlreadyMissing Result = "ALREADY_MISSING"  // record to remove was not in the ledger
	ResultAlreadyPresent Result = "ALREADY_PRESENT"  // record to restore already exists
	ResultNothingToUndo  Result = "NOTHING_TO_UNDO"
	ResultNothingToRedo  Result = "NOTHING_TO_REDO"
)

// Outcome reports the result of an undo/redo together with the record
// it touched. Record is the zero value for the nothing-to-do results.
type Outcome struct {
	Result Result
	Record cycle.Record
}

// History holds the linear undo/redo log of reversible ledger
// mutations.
type History struct {
	undo []Entry
	redo []Entry
}

func NewHistory() *History {
	return &History{}
}

// Record pushes a completed mutation onto the undo stack and clears
// the redo trail: any new action invalidates it.
func (h *History) Record(kind ActionKind, rec cycle.Record) {
	h.undo = append(h.undo, Entry{Kind: kind, Record: rec})
	h.redo = h.redo[:0]
}

// UndoLast reverses the most recent mutation against the ledger and
// pushes the inverse entry onto the redo stack.
func (h *History) UndoLast(ledger *cycle.Ledger) Outcome {
	if len(h.undo) == 0 {
		return Outcome{Result: ResultNothingToUndo}
	}
	entry := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	outcome, inverse := reverse(ledger, entry)
	h.redo = append(h.redo, inverse)
	return outcome
}

// RedoLast re-applies the most recent undone mutation, pushing the
// inverse back onto the undo stack.
func (h *History) RedoLast(ledger *cycle.Ledger) Outcome {
	if len(h.redo) == 0 {
		return Outcome{Result: ResultNothingToRedo}
	}
	entry := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	outcome, inverse := reverse(ledger, entry)
	h.undo = append(h.undo, inverse)
	return outcome
}

// Depth reports the current stack sizes for display purposes.
func (h *History) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// reverse applies the inverse of entry to the ledger and returns the
// entry that would reverse that reversal. A missing or already-present
// record is reported, not treated as fatal, and the inverse entry is
// still produced so the trail stays balanced.
func reverse(ledger *cycle.Ledger, entry Entry) (Outcome, Entry) {
	switch entry.Kind {
	case KindAdd:
		inverse := Entry{Kind: KindDelete, Record: entry.Record}
		live, ok := findBySpan(ledger, entry.Record)
		if !ok {
			return Outcome{Result: ResultAlreadyMissing, Record: entry.Record}, inverse
		}
		removed, err := ledger.DeleteByStart(live.StartDate)
		if err != nil {
			return Outcome{Result: ResultAlreadyMissing, Record: entry.Record}, inverse
		}
		return Outcome{Result: ResultReversedAdd, Record: removed}, inverse
	default: // KindDelete
		inverse := Entry{Kind: KindAdd, Record: entry.Record}
		if err := ledger.Restore(entry.Record); err != nil {
			return Outcome{Result: ResultAlreadyPresent, Record: entry.Record}, inverse
		}
		return Outcome{Result: ResultReversedDelete, Record: entry.Record}, inverse
	}
}

// findBySpan locates the live ledger record matching the snapshot by
// start+end equality.
func findBySpan(ledger *cycle.Ledger, snapshot cycle.Record) (cycle.Record, bool) {
	for _, r := range ledger.All() {
		if r.SameSpan(snapshot) {
			return r, true
		}
	}
	return cycle.Record{}, false
}
