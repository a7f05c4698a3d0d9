// Package dashboard aggregates the home screen numbers and the activity
// calendar from every collection.
package dashboard

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/stride/internal/habits"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/todos"
)

// Snapshot is everything the dashboard reads, loaded once.
type Snapshot struct {
	Todos          []models.Todo
	Habits         []models.Habit
	Entries        []models.HabitEntry
	Routines       []models.Routine
	WeeklyRoutines []models.WeeklyRoutine
	Collections    []models.NoteCollection
	Notes          []models.Note
}

type Stats struct {
	ActiveTodos     int
	CompletedToday  int
	HabitsDoneToday int
	TotalHabits     int
	TotalRoutines   int
	CurrentStreak   int
	LongestStreak   int
	Collections     int
	Notes           int
}

// Summarize computes the dashboard cards. Everything counts from the
// calendar day of now; the rollover hour only governs habit locking.
func Summarize(s Snapshot, now time.Time, policy rollover.Policy) Stats {
	summary := todos.Summarize(s.Todos)
	return Stats{
		ActiveTodos:     summary.Active,
		CompletedToday:  todos.CompletedOn(s.Todos, policy, now),
		HabitsDoneToday: habits.CompletedOn(s.Habits, s.Entries, policy.Today(now)),
		TotalHabits:     len(s.Habits),
		TotalRoutines:   len(s.Routines) + len(s.WeeklyRoutines),
		CurrentStreak:   habits.CurrentStreak(s.Habits, s.Entries, policy.Midnight(now)),
		LongestStreak:   habits.LongestStreak(s.Habits, s.Entries),
		Collections:     len(s.Collections),
		Notes:           len(s.Notes),
	}
}

// Activity counts what happened on one date.
type Activity struct {
	Date     string
	Todos    int // active todos due
	Habits   int // habits completed
	Routines int // routines performed
}

func (a Activity) HasActivity() bool {
	return a.Todos > 0 || a.Habits > 0 || a.Routines > 0
}

// ActivityOn reports the activity for date (YYYY-MM-DD).
func ActivityOn(s Snapshot, date string, policy rollover.Policy) Activity {
	a := Activity{Date: date, Habits: habits.CompletedOn(s.Habits, s.Entries, date)}
	for _, t := range s.Todos {
		if t.Completed || t.DueDate == "" {
			continue
		}
		if due, err := policy.ParseDate(t.DueDate); err == nil && policy.Today(due) == date {
			a.Todos++
		}
	}
	for _, r := range s.Routines {
		if r.LastPerformed != nil && policy.Today(*r.LastPerformed) == date {
			a.Routines++
		}
	}
	for _, w := range s.WeeklyRoutines {
		for _, at := range w.LastPerformedDays {
			if policy.Today(at) == date {
				a.Routines++
				break
			}
		}
	}
	return a
}

// Month returns one Activity per day of the month containing t.
func Month(s Snapshot, t time.Time, policy rollover.Policy) []Activity {
	first := policy.Midnight(t).AddDate(0, 0, 1-policy.Midnight(t).Day())
	days := first.AddDate(0, 1, -1).Day()
	out := make([]Activity, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, ActivityOn(s, policy.Today(first.AddDate(0, 0, i)), policy))
	}
	return out
}

// LastPerformed renders when a routine was last done, relative to now.
func LastPerformed(at *time.Time, now time.Time) string {
	if at == nil {
		return "never"
	}
	return humanize.RelTime(*at, now, "ago", "from now")
}

// LastPerformedWeekly is LastPerformed for the most recent day of a weekly routine.
func LastPerformedWeekly(w models.WeeklyRoutine, now time.Time) string {
	var latest *time.Time
	for _, at := range w.LastPerformedDays {
		if latest == nil || at.After(*latest) {
			at := at
			latest = &at
		}
	}
	return LastPerformed(latest, now)
}
