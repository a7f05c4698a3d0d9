package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/stride/internal/habits"
	"github.com/julianstephens/stride/internal/tui/components/todolist"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = docStyle.Render(RenderDashboard(m.snapshot, m.svc.Clock.Now(), m.svc.Policy))
	case StateMatrix:
		content = m.viewMatrix()
	case StateHabits:
		content = docStyle.Render(m.viewHabits())
	case StateWorkout:
		content = docStyle.Render(m.workoutPlan.View())
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, "  "+m.status)
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewMatrix() string {
	items := m.todoItems(m.svc.Clock.Now())
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(todolist.Counts(items)),
		m.todoList.View(),
	))
}

func (m Model) viewHabits() string {
	list := m.snapshot.Habits
	if len(list) == 0 {
		return "No habits yet.\nAdd one with 'stride habit add'."
	}
	now := m.svc.Clock.Now()
	today := m.svc.Policy.EffectiveDate(now)
	start := m.svc.Policy.WeekStart(today)
	days := habits.Week(start)
	todayKey := m.svc.Policy.EffectiveDay(now)

	width := 5
	for _, h := range list {
		width = max(width, len(h.Name))
	}

	done := make(map[string]bool)
	for _, e := range m.snapshot.Entries {
		if e.Completed {
			done[e.HabitID+"|"+e.Date] = true
		}
	}

	var b strings.Builder
	b.WriteString("  " + fmt.Sprintf("%-*s", width, ""))
	for i, d := range days {
		label := start.AddDate(0, 0, i).Format("Mon")
		if d == todayKey {
			label = todayStyle.Render(label)
		}
		b.WriteString(" " + label)
	}
	b.WriteString("\n")

	for i, h := range list {
		prefix := "  "
		name := fmt.Sprintf("%-*s", width, h.Name)
		if i == m.habitCursor {
			prefix = cursorStyle.Render("> ")
			name = cursorStyle.Render(name)
		}
		b.WriteString(prefix + name)
		for _, d := range days {
			cell := mutedStyle.Render(" · ")
			if done[h.ID+"|"+d] {
				cell = doneStyle.Render(" ✓ ")
			}
			b.WriteString(" " + cell)
		}
		b.WriteString("\n")
	}

	stats := habits.WeeklyStats(list, m.snapshot.Entries, start)
	fmt.Fprintf(&b, "\n%d/%d this week (%d%%)   current streak %d   longest %d",
		stats.Completed, stats.Possible, stats.Percentage,
		habits.CurrentStreak(list, m.snapshot.Entries, today),
		habits.LongestStreak(list, m.snapshot.Entries))
	return b.String()
}
