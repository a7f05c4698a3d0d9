package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/todos"
)

type TodoCmd struct {
	Add        TodoAddCmd        `cmd:"" help:"Add a todo."`
	List       TodoListCmd       `cmd:"" help:"List todos."`
	Done       TodoDoneCmd       `cmd:"" help:"Toggle a todo's completion."`
	Edit       TodoEditCmd       `cmd:"" help:"Edit a todo."`
	Delete     TodoDeleteCmd     `cmd:"" help:"Delete a todo."`
	Matrix     TodoMatrixCmd     `cmd:"" help:"Show the Eisenhower matrix."`
	Move       TodoMoveCmd       `cmd:"" help:"Move a todo to another quadrant."`
	Categories TodoCategoriesCmd `cmd:"" help:"List categories in use."`
}

func (ctx *Context) resolveTodo(ref string) (models.Todo, error) {
	return resolveID(ctx.Todos.List(), func(t models.Todo) string { return t.ID }, ref, "todo")
}

type TodoAddCmd struct {
	Title       string `arg:"" optional:"" help:"Todo title."`
	Category    string `short:"c" help:"Category."`
	Priority    string `short:"p" enum:"low,medium,high" default:"medium" help:"Priority (low, medium, high)."`
	Due         string `help:"Due date (YYYY-MM-DD, today, tomorrow)."`
	Description string `short:"d" help:"Longer description."`
	Interactive bool   `short:"i" help:"Fill the fields in a form."`
}

func (c *TodoAddCmd) Run(ctx *Context) error {
	if c.Interactive {
		if err := todoForm(c).Run(); err != nil {
			return err
		}
	}
	due, err := ctx.parseDate(c.Due, "")
	if err != nil {
		return err
	}
	priority, err := models.ParsePriority(c.Priority)
	if err != nil {
		return errors.Validation("%v", err)
	}
	todo, err := ctx.Todos.Add(todos.Input{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Priority:    priority,
		DueDate:     due,
	})
	if err != nil {
		return err
	}
	q := ctx.Todos.Classifier.Classify(todo, ctx.now())
	ctx.printf("Added todo %s: %s (%s)\n", shortID(todo.ID), todo.Title, q.Action())
	return nil
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func todoForm(c *TodoAddCmd) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&c.Title).Validate(notBlank("title")),
			huh.NewInput().Title("Category").Value(&c.Category).Validate(notBlank("category")),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High", string(models.PriorityHigh)),
					huh.NewOption("Medium", string(models.PriorityMedium)),
					huh.NewOption("Low", string(models.PriorityLow)),
				).
				Value(&c.Priority),
			huh.NewInput().Title("Due date (YYYY-MM-DD, optional)").Value(&c.Due),
			huh.NewText().Title("Description").Value(&c.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

type TodoListCmd struct {
	Category string `short:"c" default:"all" help:"Only this category."`
	Priority string `short:"p" default:"all" enum:"all,low,medium,high" help:"Only this priority."`
	Status   string `short:"s" default:"active" enum:"all,active,completed" help:"Completion filter."`
}

func (c *TodoListCmd) Run(ctx *Context) error {
	list := todos.Filter{Category: c.Category, Priority: c.Priority, Status: todos.Status(c.Status)}.Apply(ctx.Todos.List())
	if len(list) == 0 {
		ctx.println("No todos found.")
		return nil
	}
	todos.Sort(list)
	for _, t := range list {
		ctx.println(formatTodo(ctx, t))
	}
	stats := todos.Summarize(ctx.Todos.List())
	ctx.printf("\n%d total, %d active, %d completed\n", stats.Total, stats.Active, stats.Completed)
	return nil
}

var (
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	priorityStyle = map[models.Priority]lipgloss.Style{
		models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func formatTodo(ctx *Context, t models.Todo) string {
	box := "[ ]"
	title := t.Title
	if t.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("%s %s %s  %s  #%s", shortID(t.ID), box, priorityStyle[t.Priority].Render(string(t.Priority)), title, t.Category)
	if t.DueDate != "" {
		line += "  due " + t.DueDate
		if !t.Completed && ctx.Todos.Classifier.IsUrgent(t, ctx.now()) {
			line += " (urgent)"
		}
	}
	return line
}

type TodoDoneCmd struct {
	ID string `arg:"" help:"Todo id (or its last characters)."`
}

func (c *TodoDoneCmd) Run(ctx *Context) error {
	t, err := ctx.resolveTodo(c.ID)
	if err != nil {
		return err
	}
	t, err = ctx.Todos.Toggle(t.ID)
	if err != nil {
		return err
	}
	if t.Completed {
		ctx.printf("Completed: %s\n", t.Title)
	} else {
		ctx.printf("Reopened: %s\n", t.Title)
	}
	return nil
}

type TodoEditCmd struct {
	ID          string  `arg:"" help:"Todo id (or its last characters)."`
	Title       *string `help:"New title."`
	Category    *string `short:"c" help:"New category."`
	Priority    *string `short:"p" help:"New priority."`
	Due         *string `help:"New due date; empty clears it."`
	Description *string `short:"d" help:"New description."`
}

func (c *TodoEditCmd) Run(ctx *Context) error {
	t, err := ctx.resolveTodo(c.ID)
	if err != nil {
		return err
	}
	in := todos.Input{Title: t.Title, Description: t.Description, Category: t.Category, Priority: t.Priority, DueDate: t.DueDate}
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.Category != nil {
		in.Category = *c.Category
	}
	if c.Description != nil {
		in.Description = *c.Description
	}
	if c.Priority != nil {
		p, err := models.ParsePriority(*c.Priority)
		if err != nil {
			return errors.Validation("%v", err)
		}
		in.Priority = p
	}
	if c.Due != nil {
		if in.DueDate, err = ctx.parseDate(*c.Due, ""); err != nil {
			return err
		}
	}
	updated, err := ctx.Todos.Edit(t.ID, in)
	if err != nil {
		return err
	}
	ctx.printf("Updated todo: %s\n", updated.Title)
	return nil
}

type TodoDeleteCmd struct {
	ID string `arg:"" help:"Todo id (or its last characters)."`
}

func (c *TodoDeleteCmd) Run(ctx *Context) error {
	t, err := ctx.resolveTodo(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Todos.Delete(t.ID); err != nil {
		return err
	}
	ctx.printf("Deleted todo: %s\n", t.Title)
	return nil
}

type TodoMatrixCmd struct{}

var quadrantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

func (c *TodoMatrixCmd) Run(ctx *Context) error {
	matrix := ctx.Todos.Classifier.Matrix(ctx.Todos.List(), ctx.now())
	for i, q := range todos.Quadrants {
		if i > 0 {
			ctx.println()
		}
		ctx.println(quadrantStyle.Render(fmt.Sprintf("%d. %s (%s)", i+1, q.Title(), q.Action())))
		if len(matrix[q]) == 0 {
			ctx.println("   (empty)")
			continue
		}
		for _, t := range matrix[q] {
			ctx.println("   " + formatTodo(ctx, t))
		}
	}
	return nil
}

type TodoMoveCmd struct {
	ID       string `arg:"" help:"Todo id (or its last characters)."`
	Quadrant string `arg:"" help:"Target quadrant: 1-4 or its id (urgent-important, ...)."`
}

func (c *TodoMoveCmd) Run(ctx *Context) error {
	q, err := todos.ParseQuadrant(c.Quadrant)
	if err != nil {
		return errors.Validation("%v", err)
	}
	t, err := ctx.resolveTodo(c.ID)
	if err != nil {
		return err
	}
	t, moved, err := ctx.Todos.Move(t.ID, q)
	if err != nil {
		return err
	}
	if !moved {
		ctx.printf("%s is already in %s\n", t.Title, q.Title())
		return nil
	}
	ctx.printf("Moved %s to %s (priority %s", t.Title, q.Title(), t.Priority)
	if t.DueDate != "" {
		ctx.printf(", due %s", t.DueDate)
	}
	ctx.println(")")
	return nil
}

type TodoCategoriesCmd struct{}

func (c *TodoCategoriesCmd) Run(ctx *Context) error {
	cats := todos.Categories(ctx.Todos.List())
	if len(cats) == 0 {
		ctx.println("No categories yet.")
		return nil
	}
	for _, cat := range cats {
		ctx.println(cat)
	}
	return nil
}
