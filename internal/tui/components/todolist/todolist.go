package todolist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/todos"
)

type ToggleTodoMsg struct {
	ID string
}

type MoveTodoMsg struct {
	ID       string
	Quadrant todos.Quadrant
}

type DeleteTodoMsg struct {
	ID string
}

type Item struct {
	Todo     models.Todo
	Quadrant todos.Quadrant
}

func (i Item) Title() string {
	if i.Todo.Completed {
		return "[x] " + i.Todo.Title
	}
	return "[ ] " + i.Todo.Title
}

func (i Item) Description() string {
	parts := []string{i.Quadrant.Action(), string(i.Todo.Priority), "#" + i.Todo.Category}
	if i.Todo.DueDate != "" {
		parts = append(parts, "due "+i.Todo.DueDate)
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Todo.Title + " " + i.Todo.Category }

type KeyMap struct {
	Toggle key.Binding
	Move   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "done"),
		),
		Move: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "move to quadrant"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// New lists items in the order given; callers group them by quadrant.
func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Todos"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Move, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

// Keys are the list actions for the help footer.
func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Move, m.keys.Delete}
}

// Filtering reports whether the filter input has focus and should receive
// every key.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		i, selected := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if selected {
				return m, func() tea.Msg { return ToggleTodoMsg{ID: i.Todo.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Move):
			if selected {
				q, err := todos.ParseQuadrant(msg.String())
				if err == nil {
					return m, func() tea.Msg { return MoveTodoMsg{ID: i.Todo.ID, Quadrant: q} }
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if selected {
				return m, func() tea.Msg { return DeleteTodoMsg{ID: i.Todo.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No todos yet.\n  Add one with 'stride todo add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Counts returns how many listed todos fall in each quadrant.
func Counts(items []Item) string {
	counts := make(map[todos.Quadrant]int)
	for _, it := range items {
		counts[it.Quadrant]++
	}
	parts := make([]string, 0, len(todos.Quadrants))
	for i, q := range todos.Quadrants {
		parts = append(parts, fmt.Sprintf("%d %s: %d", i+1, q.Action(), counts[q]))
	}
	return strings.Join(parts, "   ")
}
