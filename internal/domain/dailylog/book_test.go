package dailylog

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

func TestLogNewEntry(t *testing.T) {
	b := NewBook()
	b.Log(date(t, "2024-01-10"), "cramps", "tired")

	all := b.All()
	require.Len(t, all, 1)
	assert.Equal(t, "cramps", all[0].Symptoms)
	assert.Equal(t, "tired", all[0].Mood)
}

func TestLogMergesSameDate(t *testing.T) {
	b := NewBook()
	d := date(t, "2024-01-10")
	b.Log(d, "cramps", "tired")
	b.Log(d, "headache", "irritable")

	all := b.All()
	require.Len(t, all, 1)
	assert.Equal(t, "cramps; headache", all[0].Symptoms)
	assert.Equal(t, "irritable", all[0].Mood, "mood is replaced, not appended")

	// Empty fields leave existing values alone.
	b.Log(d, "", "")
	all = b.All()
	assert.Equal(t, "cramps; headache", all[0].Symptoms)
	assert.Equal(t, "irritable", all[0].Mood)
}

func TestAllSortsByDate(t *testing.T) {
	b := NewBook()
	b.Log(date(t, "2024-02-01"), "b", "")
	b.Log(date(t, "2024-01-01"), "a", "")
	b.Log(date(t, "2024-03-01"), "c", "")

	all := b.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Symptoms)
	assert.Equal(t, "b", all[1].Symptoms)
	assert.Equal(t, "c", all[2].Symptoms)
}

func TestReset(t *testing.T) {
	b := NewBook()
	b.Log(date(t, "2024-01-01"), "old", "")

	b.Reset([]Entry{
		{Date: date(t, "2024-02-01"), Symptoms: "loaded", Mood: "calm"},
	})
	all := b.All()
	require.Len(t, all, 1)
	assert.Equal(t, "loaded", all[0].Symptoms)
}
