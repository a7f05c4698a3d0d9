package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/stride/internal/dashboard"
	"github.com/julianstephens/stride/internal/rollover"
)

// RenderDashboard draws the stat cards and the activity calendar for the
// month containing now. Days with any activity are highlighted.
func RenderDashboard(s dashboard.Snapshot, now time.Time, policy rollover.Policy) string {
	st := dashboard.Summarize(s, now, policy)
	card := func(label, value string) string {
		return cardStyle.Render(cardValueStyle.Render(value) + "\n" + mutedStyle.Render(label))
	}
	rows := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("active todos", fmt.Sprint(st.ActiveTodos)),
			card("done today", fmt.Sprint(st.CompletedToday)),
			card("habits today", fmt.Sprintf("%d/%d", st.HabitsDoneToday, st.TotalHabits)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("current streak", fmt.Sprintf("%d days", st.CurrentStreak)),
			card("longest streak", fmt.Sprintf("%d days", st.LongestStreak)),
			card("routines", fmt.Sprint(st.TotalRoutines)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("collections", fmt.Sprint(st.Collections)),
			card("notes", fmt.Sprint(st.Notes)),
		),
	)
	return lipgloss.JoinVertical(lipgloss.Left, rows, "", renderCalendar(s, now, policy))
}

func renderCalendar(s dashboard.Snapshot, now time.Time, policy rollover.Policy) string {
	month := dashboard.Month(s, now, policy)
	first := policy.Midnight(now).AddDate(0, 0, 1-policy.Midnight(now).Day())
	today := policy.Today(now)

	var b strings.Builder
	b.WriteString(first.Format("January 2006") + "\n")
	b.WriteString(mutedStyle.Render("Su Mo Tu We Th Fr Sa") + "\n")
	b.WriteString(strings.Repeat("   ", int(first.Weekday())))
	for i, a := range month {
		cell := fmt.Sprintf("%2d", i+1)
		switch {
		case a.HasActivity():
			cell = activeDayStyle.Render(cell)
		case a.Date == today:
			cell = todayStyle.Render(cell)
		}
		b.WriteString(cell)
		if (int(first.Weekday())+i)%7 == 6 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), " \n")
}
