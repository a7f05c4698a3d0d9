package workoutplan

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/workout"
)

var (
	bannerTitleStyle = map[workout.BannerKind]lipgloss.Style{
		workout.BannerNoWorkouts: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		workout.BannerRestDay:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		workout.BannerCompleted:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		workout.BannerDue:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	}

	bannerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	routineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type Model struct {
	viewport viewport.Model
	banner   workout.Banner
	plan     []workout.PlannedWorkout
	name     func(string) string
}

// New renders exercise ids through name, typically a catalog lookup.
func New(width, height int, name func(string) string) Model {
	if name == nil {
		name = func(id string) string { return id }
	}
	return Model{viewport: viewport.New(width, height), name: name}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetPlan(banner workout.Banner, plan []workout.PlannedWorkout) {
	m.banner = banner
	m.plan = plan
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	box := bannerTitleStyle[m.banner.Kind].Render(m.banner.Title) + "\n" + m.banner.Message
	for _, tip := range m.banner.Tips {
		box += fmt.Sprintf("\n  • %s: %s", tip.Title, tip.Description)
	}
	b.WriteString(bannerBoxStyle.Render(box))
	b.WriteString("\n\n")

	if len(m.plan) == 0 {
		b.WriteString(detailStyle.Render("Nothing scheduled today."))
	}
	for _, p := range m.plan {
		mark := "[ ]"
		if p.Done {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, routineStyle.Render(p.RoutineName),
			detailStyle.Render(fmt.Sprintf("%s, about %s", p.Type, workout.Duration(p.Exercises).Round(time.Minute))))
		for _, e := range p.Exercises {
			b.WriteString("    " + detailStyle.Render(m.describe(e)) + "\n")
		}
	}
	m.viewport.SetContent(b.String())
}

func (m Model) describe(e models.RoutineExercise) string {
	if e.Type == models.ExerciseTime {
		return fmt.Sprintf("%s  %d x %ds", m.name(e.ExerciseID), e.Sets, e.TimePerSet)
	}
	return fmt.Sprintf("%s  %d x %d", m.name(e.ExerciseID), e.Sets, e.RepsPerSet)
}
