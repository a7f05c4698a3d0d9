// Package tui is the interactive dashboard: the matrix, habits and today's
// workout in tabs.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/dashboard"
	"github.com/julianstephens/stride/internal/habits"
	"github.com/julianstephens/stride/internal/notes"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/todos"
	"github.com/julianstephens/stride/internal/tui/components/todolist"
	"github.com/julianstephens/stride/internal/tui/components/workoutplan"
	"github.com/julianstephens/stride/internal/workout"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateMatrix
	StateHabits
	StateWorkout
)

var tabTitles = []string{"Dashboard", "Matrix", "Habits", "Workout"}

// Services are the domain objects the TUI reads and mutates.
type Services struct {
	Todos        *todos.Repository
	Habits       *habits.Ledger
	Notes        *notes.Repository
	Scheduler    *workout.Scheduler
	Policy       rollover.Policy
	Clock        rollover.Clock
	PollInterval time.Duration
	// ExerciseName maps a catalog id to a display name.
	ExerciseName func(id string) string
}

func (s Services) snapshot() dashboard.Snapshot {
	routines := s.Scheduler.Routines()
	return dashboard.Snapshot{
		Todos:          s.Todos.List(),
		Habits:         s.Habits.Habits(),
		Entries:        s.Habits.Entries(),
		Routines:       routines.Daily(),
		WeeklyRoutines: routines.Weekly(),
		Collections:    s.Notes.Collections(),
		Notes:          s.Notes.Notes(),
	}
}

type Model struct {
	svc         Services
	state       SessionState
	keys        KeyMap
	help        help.Model
	todoList    todolist.Model
	workoutPlan workoutplan.Model
	snapshot    dashboard.Snapshot
	habitCursor int
	status      string
	quitting    bool
	width       int
	height      int
}

// tickMsg drives the workout reset timer.
type tickMsg time.Time

func NewModel(svc Services) Model {
	if svc.PollInterval <= 0 {
		svc.PollInterval = constants.DefaultResetPollInterval
	}
	m := Model{
		svc:         svc,
		state:       StateDashboard,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		todoList:    todolist.New(nil, 0, 0),
		workoutPlan: workoutplan.New(0, 0, svc.ExerciseName),
	}
	m.reload()
	return m
}

// reload rereads every collection from storage.
func (m *Model) reload() {
	now := m.svc.Clock.Now()
	m.snapshot = m.svc.snapshot()
	m.todoList.SetItems(m.todoItems(now))
	m.svc.Scheduler.Refresh()
	m.workoutPlan.SetPlan(m.svc.Scheduler.Banner(),
		workout.TodaysPlan(m.snapshot.Routines, m.snapshot.WeeklyRoutines, now, m.svc.Policy))
	if m.habitCursor >= len(m.snapshot.Habits) {
		m.habitCursor = max(len(m.snapshot.Habits)-1, 0)
	}
}

// todoItems lists active todos grouped by quadrant in matrix order.
func (m Model) todoItems(now time.Time) []todolist.Item {
	matrix := m.svc.Todos.Classifier.Matrix(m.snapshot.Todos, now)
	var items []todolist.Item
	for _, q := range todos.Quadrants {
		for _, t := range matrix[q] {
			if !t.Completed {
				items = append(items, todolist.Item{Todo: t, Quadrant: q})
			}
		}
	}
	return items
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateMatrix:
		keys = append(keys, m.todoList.Keys()...)
	case StateHabits:
		keys = append(keys, m.keys.Up, m.keys.Down, m.keys.Toggle)
	case StateWorkout:
		keys = append(keys, m.keys.Complete, m.keys.Rest)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case StateMatrix:
		actions = m.todoList.Keys()
	case StateHabits:
		actions = []key.Binding{m.keys.Toggle}
	case StateWorkout:
		actions = []key.Binding{m.keys.Complete, m.keys.Rest}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkReset(), m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.svc.PollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(svc Services) error {
	_, err := tea.NewProgram(NewModel(svc), tea.WithAltScreen()).Run()
	return err
}
