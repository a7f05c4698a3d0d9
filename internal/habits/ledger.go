// Package habits tracks per-day habit completion and the streaks derived
// from it.
package habits

import (
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/storage"
)

// Ledger owns the habit and habit-entry collections.
type Ledger struct {
	store  storage.Provider
	policy rollover.Policy
	clock  rollover.Clock
}

func NewLedger(store storage.Provider, policy rollover.Policy, clock rollover.Clock) *Ledger {
	return &Ledger{store: store, policy: policy, clock: clock}
}

func (l *Ledger) Habits() []models.Habit {
	return storage.LoadList[models.Habit](l.store, constants.KeyHabits)
}

func (l *Ledger) Entries() []models.HabitEntry {
	return storage.LoadList[models.HabitEntry](l.store, constants.KeyHabitEntries)
}

// AddHabit creates a habit. An empty color picks the next one from the palette.
func (l *Ledger) AddHabit(name, color string) (models.Habit, error) {
	habits := l.Habits()
	if color == "" {
		color = models.DefaultHabitColors[len(habits)%len(models.DefaultHabitColors)]
	}
	h := models.Habit{
		ID:        models.NewID(),
		Name:      strings.TrimSpace(name),
		Color:     color,
		CreatedAt: l.clock.Now(),
	}
	if err := h.Validate(); err != nil {
		return models.Habit{}, err
	}
	if err := storage.SaveList(l.store, constants.KeyHabits, append(habits, h)); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// Resolve finds a habit by id or case-insensitive name. When nothing matches
// the error suggests the closest names.
func (l *Ledger) Resolve(ref string) (models.Habit, error) {
	habits := l.Habits()
	names := make([]string, len(habits))
	for i, h := range habits {
		if h.ID == ref || strings.EqualFold(h.Name, ref) {
			return h, nil
		}
		names[i] = h.Name
	}
	matches := fuzzy.Find(ref, names)
	if len(matches) > 0 {
		return models.Habit{}, errors.NotFound("habit", ref+" (did you mean "+matches[0].Str+"?)")
	}
	return models.Habit{}, errors.NotFound("habit", ref)
}

// IsDateModifiable reports whether entries for date may still change: today
// and later always, yesterday only until the rollover hour.
func (l *Ledger) IsDateModifiable(date string) bool {
	return IsDateModifiable(l.policy, date, l.clock.Now())
}

// IsDateModifiable compares YYYY-MM-DD strings, which order the same as dates.
func IsDateModifiable(policy rollover.Policy, date string, now time.Time) bool {
	return date >= policy.EffectiveDay(now)
}

// SetEntry records completion for a habit on a date, replacing any existing
// entry. Locked dates are refused with ErrDateLocked.
func (l *Ledger) SetEntry(habitID, date string, completed bool) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return errors.Validation("invalid date %q: expected YYYY-MM-DD", date)
	}
	if !l.IsDateModifiable(date) {
		return errors.ErrDateLocked
	}
	if !l.exists(habitID) {
		return errors.NotFound("habit", habitID)
	}

	entries := l.Entries()
	found := false
	for i := range entries {
		if entries[i].HabitID == habitID && entries[i].Date == date {
			entries[i].Completed = completed
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, models.HabitEntry{HabitID: habitID, Date: date, Completed: completed})
	}
	return storage.SaveList(l.store, constants.KeyHabitEntries, entries)
}

// Toggle flips the entry for a habit on a date and returns the new state.
func (l *Ledger) Toggle(habitID, date string) (bool, error) {
	entry, _ := l.GetEntry(habitID, date)
	if err := l.SetEntry(habitID, date, !entry.Completed); err != nil {
		return entry.Completed, err
	}
	return !entry.Completed, nil
}

func (l *Ledger) GetEntry(habitID, date string) (models.HabitEntry, bool) {
	for _, e := range l.Entries() {
		if e.HabitID == habitID && e.Date == date {
			return e, true
		}
	}
	return models.HabitEntry{}, false
}

func (l *Ledger) EntriesForDate(date string) []models.HabitEntry {
	return entriesOn(l.Entries(), date)
}

func entriesOn(entries []models.HabitEntry, date string) []models.HabitEntry {
	out := []models.HabitEntry{}
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// DeleteHabit removes the habit and then every entry that references it.
func (l *Ledger) DeleteHabit(id string) error {
	habits := l.Habits()
	kept := habits[:0]
	for _, h := range habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(habits) {
		return errors.NotFound("habit", id)
	}
	if err := storage.SaveList(l.store, constants.KeyHabits, kept); err != nil {
		return err
	}

	entries := l.Entries()
	keptEntries := entries[:0]
	for _, e := range entries {
		if e.HabitID != id {
			keptEntries = append(keptEntries, e)
		}
	}
	return storage.SaveList(l.store, constants.KeyHabitEntries, keptEntries)
}

func (l *Ledger) exists(id string) bool {
	for _, h := range l.Habits() {
		if h.ID == id {
			return true
		}
	}
	return false
}
