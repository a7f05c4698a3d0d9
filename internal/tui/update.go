package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	strideerrors "github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/logger"
	"github.com/julianstephens/stride/internal/tui/components/todolist"
)

type resetMsg struct {
	reset bool
	err   error
}

// doneMsg reports the outcome of a mutation; the model reloads afterwards.
type doneMsg struct {
	status string
	err    error
}

func (m Model) checkReset() tea.Cmd {
	return func() tea.Msg {
		reset, err := m.svc.Scheduler.CheckReset()
		return resetMsg{reset: reset, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.todoList.SetSize(msg.Width-4, msg.Height-8)
		m.workoutPlan.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.checkReset(), m.tick())

	case resetMsg:
		if msg.err != nil {
			logger.Component("tui").Error("reset check failed", "error", msg.err)
			return m, nil
		}
		if msg.reset {
			m.status = "New day started"
			m.reload()
		}
		return m, nil

	case doneMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = dangerStyle.Render(msg.err.Error())
		}
		m.reload()
		return m, nil

	case todolist.ToggleTodoMsg:
		return m, m.do(func() (string, error) {
			t, err := m.svc.Todos.Toggle(msg.ID)
			return "Toggled " + t.Title, err
		})

	case todolist.MoveTodoMsg:
		return m, m.do(func() (string, error) {
			t, moved, err := m.svc.Todos.Move(msg.ID, msg.Quadrant)
			if !moved {
				return fmt.Sprintf("%s is already in %s", t.Title, msg.Quadrant.Title()), err
			}
			return fmt.Sprintf("Moved %s to %s", t.Title, msg.Quadrant.Title()), err
		})

	case todolist.DeleteTodoMsg:
		return m, m.do(func() (string, error) {
			return "Deleted todo", m.svc.Todos.Delete(msg.ID)
		})

	case tea.KeyMsg:
		if m.state == StateMatrix && m.todoList.Filtering() {
			return m.updateMatrix(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.reload()
			return m, nil
		}

		switch m.state {
		case StateMatrix:
			return m.updateMatrix(msg)
		case StateHabits:
			return m.updateHabits(msg)
		case StateWorkout:
			return m.updateWorkout(msg)
		}
	}
	return m, nil
}

func (m Model) updateMatrix(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.todoList, cmd = m.todoList.Update(msg)
	return m, cmd
}

func (m Model) updateHabits(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.snapshot.Habits
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.habitCursor > 0 {
			m.habitCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.habitCursor < len(list)-1 {
			m.habitCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if len(list) == 0 {
			return m, nil
		}
		h := list[m.habitCursor]
		day := m.svc.Policy.EffectiveDay(m.svc.Clock.Now())
		return m, m.do(func() (string, error) {
			done, err := m.svc.Habits.Toggle(h.ID, day)
			if errors.Is(err, strideerrors.ErrDateLocked) {
				return "", fmt.Errorf("%s is locked", day)
			}
			if done {
				return "✓ " + h.Name, err
			}
			return "○ " + h.Name, err
		})
	}
	return m, nil
}

func (m Model) updateWorkout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Rest):
		return m, m.do(func() (string, error) {
			return "Rest day marked", m.svc.Scheduler.MarkRestDay()
		})
	case key.Matches(msg, m.keys.Complete):
		return m, m.do(func() (string, error) {
			return "Workout completed", m.svc.Scheduler.CompleteToday()
		})
	}
	var cmd tea.Cmd
	m.workoutPlan, cmd = m.workoutPlan.Update(msg)
	return m, cmd
}

func (m Model) do(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn()
		return doneMsg{status: status, err: err}
	}
}
