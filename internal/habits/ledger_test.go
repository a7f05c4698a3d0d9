package habits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/storage"
)

var policy = rollover.Policy{Hour: 4, Loc: time.UTC}

func newTestLedger(t *testing.T, now time.Time) (*Ledger, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewLedger(store, policy, rollover.FixedClock{T: now}), store
}

func TestIsDateModifiable(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		date string
		want bool
	}{
		{"today", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), "2024-03-10", true},
		{"future", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), "2024-03-15", true},
		{"yesterday after rollover", time.Date(2024, 3, 10, 4, 0, 0, 0, time.UTC), "2024-03-09", false},
		{"yesterday before rollover", time.Date(2024, 3, 10, 3, 59, 0, 0, time.UTC), "2024-03-09", true},
		{"two days ago before rollover", time.Date(2024, 3, 10, 3, 59, 0, 0, time.UTC), "2024-03-08", false},
		{"last week", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), "2024-03-03", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDateModifiable(policy, tt.date, tt.now))
		})
	}
}

func TestSetEntryUpserts(t *testing.T) {
	ledger, _ := newTestLedger(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	h, err := ledger.AddHabit("Meditate", "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultHabitColors[0], h.Color)

	require.NoError(t, ledger.SetEntry(h.ID, "2024-03-10", true))
	require.NoError(t, ledger.SetEntry(h.ID, "2024-03-10", false))
	require.NoError(t, ledger.SetEntry(h.ID, "2024-03-10", true))

	entries := ledger.EntriesForDate("2024-03-10")
	require.Len(t, entries, 1, "at most one entry per habit and date")
	assert.True(t, entries[0].Completed)

	entry, ok := ledger.GetEntry(h.ID, "2024-03-10")
	assert.True(t, ok)
	assert.True(t, entry.Completed)

	_, ok = ledger.GetEntry(h.ID, "2024-03-11")
	assert.False(t, ok)
}

func TestSetEntryRefusesLockedDate(t *testing.T) {
	ledger, _ := newTestLedger(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	h, err := ledger.AddHabit("Read", "")
	require.NoError(t, err)

	err = ledger.SetEntry(h.ID, "2024-03-09", true)
	assert.True(t, errors.Is(err, errors.ErrDateLocked))
	assert.Empty(t, ledger.Entries())

	err = ledger.SetEntry(h.ID, "03/10/2024", true)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	err = ledger.SetEntry("no-such-habit", "2024-03-10", true)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestYesterdayEditableBeforeRollover(t *testing.T) {
	ledger, _ := newTestLedger(t, time.Date(2024, 3, 10, 2, 30, 0, 0, time.UTC))
	h, err := ledger.AddHabit("Stretch", "")
	require.NoError(t, err)
	assert.True(t, ledger.IsDateModifiable("2024-03-09"))
	require.NoError(t, ledger.SetEntry(h.ID, "2024-03-09", true))
}

func TestToggle(t *testing.T) {
	ledger, _ := newTestLedger(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	h, err := ledger.AddHabit("Walk", "#fff")
	require.NoError(t, err)

	state, err := ledger.Toggle(h.ID, "2024-03-10")
	require.NoError(t, err)
	assert.True(t, state)

	state, err = ledger.Toggle(h.ID, "2024-03-10")
	require.NoError(t, err)
	assert.False(t, state)
}

func TestDeleteHabitCascades(t *testing.T) {
	ledger, store := newTestLedger(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	keep, err := ledger.AddHabit("Keep", "")
	require.NoError(t, err)
	drop, err := ledger.AddHabit("Drop", "")
	require.NoError(t, err)

	require.NoError(t, ledger.SetEntry(keep.ID, "2024-03-10", true))
	require.NoError(t, ledger.SetEntry(drop.ID, "2024-03-10", true))
	require.NoError(t, ledger.SetEntry(drop.ID, "2024-03-11", false))

	require.NoError(t, ledger.DeleteHabit(drop.ID))

	habits := storage.LoadList[models.Habit](store, constants.KeyHabits)
	require.Len(t, habits, 1)
	assert.Equal(t, keep.ID, habits[0].ID)

	for _, e := range ledger.Entries() {
		assert.NotEqual(t, drop.ID, e.HabitID, "orphan entry left behind")
	}
	assert.Len(t, ledger.Entries(), 1)

	assert.True(t, errors.Is(ledger.DeleteHabit(drop.ID), errors.ErrNotFound))
}

func TestResolve(t *testing.T) {
	ledger, _ := newTestLedger(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	h, err := ledger.AddHabit("Drink water", "")
	require.NoError(t, err)

	got, err := ledger.Resolve("drink WATER")
	require.NoError(t, err)
	assert.Equal(t, h.ID, got.ID)

	got, err = ledger.Resolve(h.ID)
	require.NoError(t, err)
	assert.Equal(t, h.Name, got.Name)

	_, err = ledger.Resolve("drnk")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), "Drink water")
}

func TestAddHabitRequiresName(t *testing.T) {
	ledger, _ := newTestLedger(t, time.Now())
	_, err := ledger.AddHabit("   ", "")
	assert.True(t, errors.Is(err, errors.ErrValidation))
}
