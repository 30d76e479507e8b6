package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"period_tracker_bot/internal/domain/dates"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	require.NoError(t, err)
	return d
}

func TestLedgerAddComputesDerivedFields(t *testing.T) {
	l := NewLedger()

	first, err := l.Add(date(t, "2024-01-01"), date(t, "2024-01-05"))
	require.NoError(t, err)
	assert.Equal(t, 4, first.DurationDays)
	assert.Equal(t, 0, first.CycleLength, "first-ever record has no measurable cycle length")

	second, err := l.Add(date(t, "2024-01-29"), date(t, "2024-02-02"))
	require.NoError(t, err)
	assert.Equal(t, 4, second.DurationDays)
	assert.Equal(t, 28, second.CycleLength)
}

func TestLedgerAddValidation(t *testing.T) {
	l := NewLedger()

	_, err := l.Add(date(t, "2024-01-05"), date(t, "2024-01-01"))
	assert.ErrorIs(t, err, ErrEndBeforeStart)
	assert.Equal(t, 0, l.Len(), "failed add must not mutate the ledger")

	_, err = l.Add(date(t, "2024-01-01"), date(t, "2024-01-01"))
	assert.NoError(t, err, "zero-day duration is allowed")

	_, err = l.Add(date(t, "2024-01-01"), date(t, "2024-01-06"))
	assert.ErrorIs(t, err, ErrDuplicateStart)
	assert.Equal(t, 1, l.Len())
}

func TestLedgerOutOfOrderAddKeepsOrderAndLengths(t *testing.T) {
	l := NewLedger()

	_, err := l.Add(date(t, "2024-03-01"), date(t, "2024-03-05"))
	require.NoError(t, err)
	_, err = l.Add(date(t, "2024-01-01"), date(t, "2024-01-05"))
	require.NoError(t, err)
	_, err = l.Add(date(t, "2024-02-01"), date(t, "2024-02-05"))
	require.NoError(t, err)

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "2024-01-01", dates.Format(all[0].StartDate))
	assert.Equal(t, "2024-02-01", dates.Format(all[1].StartDate))
	assert.Equal(t, "2024-03-01", dates.Format(all[2].StartDate))

	// Every record's length reflects its chronological predecessor,
	// even though the records arrived out of order.
	assert.Equal(t, 0, all[0].CycleLength)
	assert.Equal(t, 31, all[1].CycleLength)
	assert.Equal(t, 29, all[2].CycleLength)
}

func TestLedgerDeleteByStart(t *testing.T) {
	l := NewLedger()

	_, err := l.DeleteByStart(date(t, "2024-01-01"))
	assert.ErrorIs(t, err, ErrCycleNotFound, "delete on empty ledger")

	_, err = l.Add(date(t, "2024-01-01"), date(t, "2024-01-05"))
	require.NoError(t, err)
	_, err = l.Add(date(t, "2024-02-01"), date(t, "2024-02-05"))
	require.NoError(t, err)
	_, err = l.Add(date(t, "2024-03-01"), date(t, "2024-03-05"))
	require.NoError(t, err)

	removed, err := l.DeleteByStart(date(t, "2024-02-01"))
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", dates.Format(removed.StartDate))

	all := l.All()
	require.Len(t, all, 2)
	// The March record's predecessor is now January.
	assert.Equal(t, 60, all[1].CycleLength)
}

func TestLedgerAddThenDeleteIsExactInverse(t *testing.T) {
	l := NewLedger()
	_, err := l.Add(date(t, "2024-01-01"), date(t, "2024-01-05"))
	require.NoError(t, err)
	before := l.All()

	added, err := l.Add(date(t, "2024-01-29"), date(t, "2024-02-02"))
	require.NoError(t, err)
	removed, err := l.DeleteByStart(added.StartDate)
	require.NoError(t, err)

	assert.Equal(t, added, removed)
	assert.Equal(t, before, l.All())
}

func TestLedgerRestore(t *testing.T) {
	l := NewLedger()
	_, err := l.Add(date(t, "2024-01-01"), date(t, "2024-01-05"))
	require.NoError(t, err)
	rec, err := l.Add(date(t, "2024-01-29"), date(t, "2024-02-02"))
	require.NoError(t, err)

	_, err = l.DeleteByStart(rec.StartDate)
	require.NoError(t, err)
	require.NoError(t, l.Restore(rec))

	all := l.All()
	require.Len(t, all, 2)
	assert.Equal(t, rec, all[1], "restored record regains its derived fields")

	assert.ErrorIs(t, l.Restore(rec), ErrDuplicateStart)
}

func TestLedgerLatestStart(t *testing.T) {
	l := NewLedger()
	_, ok := l.LatestStart()
	assert.False(t, ok)

	_, err := l.Add(date(t, "2024-02-01"), date(t, "2024-02-05"))
	require.NoError(t, err)
	_, err = l.Add(date(t, "2024-01-01"), date(t, "2024-01-05"))
	require.NoError(t, err)

	latest, ok := l.LatestStart()
	require.True(t, ok)
	assert.Equal(t, "2024-02-01", dates.Format(latest))
}

func TestLedgerAllReturnsCopy(t *testing.T) {
	l := NewLedger()
	_, err := l.Add(date(t, "2024-01-01"), date(t, "2024-01-05"))
	require.NoError(t, err)

	all := l.All()
	all[0].CycleLength = 99
	assert.Equal(t, 0, l.All()[0].CycleLength)
}
