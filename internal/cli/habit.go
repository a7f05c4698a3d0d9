package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/habits"
	"github.com/julianstephens/stride/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Mark   HabitMarkCmd   `cmd:"" help:"Toggle a habit for a day."`
	Today  HabitTodayCmd  `cmd:"" help:"Show today's habit status."`
	Week   HabitWeekCmd   `cmd:"" help:"Show the weekly habit grid."`
	Streak HabitStreakCmd `cmd:"" help:"Show streaks and the completion chart."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its entries."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Color       string `help:"Hex color; defaults to the next palette color."`
	Interactive bool   `short:"i" help:"Fill the fields in a form."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if c.Interactive {
		if err := habitForm(c).Run(); err != nil {
			return err
		}
	}
	for _, h := range ctx.Habits.Habits() {
		if strings.EqualFold(h.Name, strings.TrimSpace(c.Name)) {
			return errors.Validation("habit with name %q already exists", h.Name)
		}
	}
	h, err := ctx.Habits.AddHabit(c.Name, c.Color)
	if err != nil {
		return err
	}
	ctx.printf("Added habit: %s\n", swatch(h.Color)+" "+h.Name)
	return nil
}

func habitForm(c *HabitAddCmd) *huh.Form {
	options := []huh.Option[string]{huh.NewOption("Next in palette", "")}
	for _, color := range models.DefaultHabitColors {
		options = append(options, huh.NewOption(swatch(color)+" "+color, color))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit Name").Value(&c.Name).Validate(notBlank("habit name")),
			huh.NewSelect[string]().Title("Color").Options(options...).Value(&c.Color),
		),
	).WithTheme(huh.ThemeDracula())
}

func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	list := ctx.Habits.Habits()
	if len(list) == 0 {
		ctx.println("No habits found.")
		return nil
	}
	today := ctx.Policy.EffectiveDay(ctx.now())
	for _, h := range list {
		mark := " "
		if e, ok := ctx.Habits.GetEntry(h.ID, today); ok && e.Completed {
			mark = "✓"
		}
		ctx.printf("%s %s %s  (%s)\n", mark, swatch(h.Color), h.Name, shortID(h.ID))
	}
	return nil
}

type HabitMarkCmd struct {
	Name string `arg:"" help:"Habit name or id."`
	Date string `help:"Date in YYYY-MM-DD format, or yesterday (default: today)."`
	Undo bool   `help:"Mark as not done instead of toggling."`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	h, err := ctx.Habits.Resolve(c.Name)
	if err != nil {
		return err
	}
	day, err := ctx.parseHabitDate(c.Date)
	if err != nil {
		return err
	}

	done := false
	if c.Undo {
		err = ctx.Habits.SetEntry(h.ID, day, false)
	} else {
		done, err = ctx.Habits.Toggle(h.ID, day)
	}
	if errors.Is(err, errors.ErrDateLocked) {
		return fmt.Errorf("%s: entries before %s are locked", day, ctx.Policy.EffectiveDay(ctx.now()))
	}
	if err != nil {
		return err
	}
	if done {
		ctx.printf("✓ %s done on %s\n", h.Name, day)
	} else {
		ctx.printf("○ %s not done on %s\n", h.Name, day)
	}
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	list := ctx.Habits.Habits()
	if len(list) == 0 {
		ctx.println("No habits found.")
		return nil
	}
	today := ctx.Policy.EffectiveDay(ctx.now())
	entries := ctx.Habits.EntriesForDate(today)
	completed := make(map[string]bool, len(entries))
	for _, e := range entries {
		completed[e.HabitID] = e.Completed
	}
	done := habits.CompletedOn(list, entries, today)
	ctx.printf("Habits for %s: %d/%d done\n\n", today, done, len(list))
	for _, h := range list {
		status := "[ ]"
		if completed[h.ID] {
			status = "[x]"
		}
		ctx.printf("%s %s %s\n", status, swatch(h.Color), h.Name)
	}
	return nil
}

type HabitWeekCmd struct {
	Offset int `short:"o" help:"Weeks relative to this one (-1 is last week)."`
}

func (c *HabitWeekCmd) Run(ctx *Context) error {
	list := ctx.Habits.Habits()
	entries := ctx.Habits.Entries()
	start := ctx.Policy.WeekStart(ctx.Policy.EffectiveDate(ctx.now())).AddDate(0, 0, 7*c.Offset)
	days := habits.Week(start)

	width := len("Habit")
	for _, h := range list {
		width = max(width, len(h.Name))
	}
	header := fmt.Sprintf("%-*s", width, "Habit")
	for i := range days {
		header += "  " + start.AddDate(0, 0, i).Format("Mon")
	}
	ctx.printf("Week of %s\n\n%s\n", days[0], header)

	done := make(map[string]bool)
	for _, e := range entries {
		if e.Completed {
			done[e.HabitID+"|"+e.Date] = true
		}
	}
	for _, h := range list {
		row := fmt.Sprintf("%-*s", width, h.Name)
		for _, d := range days {
			cell := " · "
			if done[h.ID+"|"+d] {
				cell = " ✓ "
			}
			row += "  " + cell
		}
		ctx.println(row)
	}

	stats := habits.WeeklyStats(list, entries, start)
	ctx.printf("\n%d/%d completed (%d%%)\n", stats.Completed, stats.Possible, stats.Percentage)
	return nil
}

type HabitStreakCmd struct {
	Days int `default:"30" help:"Days shown in the completion chart."`
}

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

func (c *HabitStreakCmd) Run(ctx *Context) error {
	list := ctx.Habits.Habits()
	entries := ctx.Habits.Entries()
	today := ctx.Policy.EffectiveDate(ctx.now())

	ctx.printf("Current streak: %d day(s)\n", habits.CurrentStreak(list, entries, today))
	ctx.printf("Longest streak: %d day(s)\n\n", habits.LongestStreak(list, entries))

	const barWidth = 20
	for _, p := range habits.Chart(list, entries, today, c.Days) {
		bar := strings.Repeat("█", p.Percentage*barWidth/100)
		ctx.printf("%s %s%s %3d%%\n", p.Date, barStyle.Render(bar), strings.Repeat(" ", barWidth-len([]rune(bar))), p.Percentage)
	}
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	h, err := ctx.Habits.Resolve(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Habits.DeleteHabit(h.ID); err != nil {
		return err
	}
	ctx.printf("Deleted habit: %s\n", h.Name)
	return nil
}
