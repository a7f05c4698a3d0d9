package habits

import (
	"math"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
)

// WeekStats summarizes one Sunday-to-Saturday week.
type WeekStats struct {
	Completed  int
	Possible   int
	Percentage int
}

// Week returns the seven YYYY-MM-DD dates starting at weekStart.
func Week(weekStart time.Time) []string {
	days := make([]string, 7)
	for i := range days {
		days[i] = weekStart.AddDate(0, 0, i).Format(constants.DateFormat)
	}
	return days
}

// WeeklyStats counts completed entries in the week against habits × 7.
func WeeklyStats(habits []models.Habit, entries []models.HabitEntry, weekStart time.Time) WeekStats {
	stats := WeekStats{Possible: len(habits) * 7}
	if stats.Possible == 0 {
		return stats
	}
	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
	}
	inWeek := make(map[string]bool, 7)
	for _, d := range Week(weekStart) {
		inWeek[d] = true
	}
	for _, e := range entries {
		if e.Completed && inWeek[e.Date] && known[e.HabitID] {
			stats.Completed++
		}
	}
	stats.Percentage = int(math.Round(float64(stats.Completed) / float64(stats.Possible) * 100))
	return stats
}

// DayCompletion is the percentage of habits completed on date.
func DayCompletion(habits []models.Habit, entries []models.HabitEntry, date string) int {
	if len(habits) == 0 {
		return 0
	}
	done := 0
	for _, e := range entriesOn(entries, date) {
		if e.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(habits)) * 100))
}

// ChartPoint is one bar of the completion chart.
type ChartPoint struct {
	Date       string
	Percentage int
}

// Chart returns daily completion for the days ending at today, oldest first.
func Chart(habits []models.Habit, entries []models.HabitEntry, today time.Time, days int) []ChartPoint {
	if days <= 0 {
		days = constants.StreakChartDays
	}
	points := make([]ChartPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(constants.DateFormat)
		points = append(points, ChartPoint{Date: date, Percentage: DayCompletion(habits, entries, date)})
	}
	return points
}

// CompletedOn counts habits with a completed entry on date.
func CompletedOn(habits []models.Habit, entries []models.HabitEntry, date string) int {
	done := make(map[string]bool)
	for _, e := range entriesOn(entries, date) {
		if e.Completed {
			done[e.HabitID] = true
		}
	}
	n := 0
	for _, h := range habits {
		if done[h.ID] {
			n++
		}
	}
	return n
}
