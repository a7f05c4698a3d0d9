package habits

import (
	"sort"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
)

// CurrentStreak counts consecutive days, ending today, on which at least one
// habit was completed. A day with no entries at all or with only incomplete
// entries ends the streak. today is a calendar date at midnight.
func CurrentStreak(habits []models.Habit, entries []models.HabitEntry, today time.Time) int {
	if len(habits) == 0 {
		return 0
	}
	byDate := groupByDate(entries)
	streak := 0
	for day := today; ; day = day.AddDate(0, 0, -1) {
		dayEntries, ok := byDate[day.Format(constants.DateFormat)]
		if !ok || !anyCompleted(dayEntries) {
			return streak
		}
		streak++
	}
}

// LongestStreak walks the recorded dates in order and returns the longest
// run of dates with a completed entry. Only dates that have entries are
// visited, so a calendar gap between two recorded dates does not end a run.
func LongestStreak(habits []models.Habit, entries []models.HabitEntry) int {
	if len(habits) == 0 {
		return 0
	}
	byDate := groupByDate(entries)
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	longest, run := 0, 0
	for _, d := range dates {
		if anyCompleted(byDate[d]) {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

func groupByDate(entries []models.HabitEntry) map[string][]models.HabitEntry {
	m := make(map[string][]models.HabitEntry)
	for _, e := range entries {
		m[e.Date] = append(m[e.Date], e)
	}
	return m
}

func anyCompleted(entries []models.HabitEntry) bool {
	for _, e := range entries {
		if e.Completed {
			return true
		}
	}
	return false
}
