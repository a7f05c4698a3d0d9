package cli

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/notes"
)

type NoteCmd struct {
	Collection CollectionCmd `cmd:"" help:"Manage note collections."`
	Add        NoteAddCmd    `cmd:"" help:"Add a note to a collection."`
	List       NoteListCmd   `cmd:"" help:"List or search notes."`
	Show       NoteShowCmd   `cmd:"" help:"Print a note's markdown."`
	Edit       NoteEditCmd   `cmd:"" help:"Edit a note."`
	Delete     NoteDeleteCmd `cmd:"" help:"Delete a note."`
	Render     NoteRenderCmd `cmd:"" help:"Render a note to HTML."`
}

type CollectionCmd struct {
	Add    CollectionAddCmd    `cmd:"" help:"Create a collection."`
	List   CollectionListCmd   `cmd:"" help:"List collections."`
	Rename CollectionRenameCmd `cmd:"" help:"Rename a collection."`
	Delete CollectionDeleteCmd `cmd:"" help:"Delete a collection and its notes."`
}

func (ctx *Context) resolveCollection(ref string) (models.NoteCollection, error) {
	if c, err := ctx.Notes.ResolveCollection(ref); err == nil {
		return c, nil
	}
	return resolveID(ctx.Notes.Collections(), func(c models.NoteCollection) string { return c.ID }, ref, "collection")
}

func (ctx *Context) resolveNote(ref string) (models.Note, error) {
	return resolveID(ctx.Notes.Notes(), func(n models.Note) string { return n.ID }, ref, "note")
}

// readContent returns inline text, or the contents of path ("-" is stdin).
func readContent(inline, path string) (string, error) {
	switch path {
	case "":
		return inline, nil
	case "-":
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	default:
		b, err := os.ReadFile(path)
		return string(b), err
	}
}

type CollectionAddCmd struct {
	Name string `arg:"" help:"Collection name."`
}

func (c *CollectionAddCmd) Run(ctx *Context) error {
	col, err := ctx.Notes.AddCollection(c.Name)
	if err != nil {
		return err
	}
	ctx.printf("Created collection %s (%s)\n", col.Name, shortID(col.ID))
	return nil
}

type CollectionListCmd struct{}

func (c *CollectionListCmd) Run(ctx *Context) error {
	list := ctx.Notes.Collections()
	if len(list) == 0 {
		ctx.println("No collections yet.")
		return nil
	}
	all := ctx.Notes.Notes()
	for _, col := range list {
		ctx.printf("%s  %s (%d notes)\n", shortID(col.ID), col.Name, len(notes.InCollection(all, col.ID)))
	}
	return nil
}

type CollectionRenameCmd struct {
	Collection string `arg:"" help:"Collection name or id."`
	Name       string `arg:"" help:"New name."`
}

func (c *CollectionRenameCmd) Run(ctx *Context) error {
	col, err := ctx.resolveCollection(c.Collection)
	if err != nil {
		return err
	}
	renamed, err := ctx.Notes.RenameCollection(col.ID, c.Name)
	if err != nil {
		return err
	}
	ctx.printf("Renamed %s to %s\n", col.Name, renamed.Name)
	return nil
}

type CollectionDeleteCmd struct {
	Collection string `arg:"" help:"Collection name or id."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *CollectionDeleteCmd) Run(ctx *Context) error {
	col, err := ctx.resolveCollection(c.Collection)
	if err != nil {
		return err
	}
	count := len(notes.InCollection(ctx.Notes.Notes(), col.ID))
	if !c.Yes && count > 0 {
		confirm := false
		err := huh.NewConfirm().
			Title("Delete " + col.Name + " and its " + humanize.Comma(int64(count)) + " note(s)?").
			Value(&confirm).
			WithTheme(huh.ThemeDracula()).
			Run()
		if err != nil {
			return err
		}
		if !confirm {
			ctx.println("Cancelled.")
			return nil
		}
	}
	if err := ctx.Notes.DeleteCollection(col.ID); err != nil {
		return err
	}
	ctx.printf("Deleted collection %s and %d note(s)\n", col.Name, count)
	return nil
}

type NoteAddCmd struct {
	Collection  string `arg:"" help:"Collection name or id."`
	Title       string `arg:"" optional:"" help:"Note title (default: Untitled Note)."`
	Content     string `short:"m" help:"Markdown content."`
	File        string `short:"f" help:"Read content from a file, - for stdin."`
	Interactive bool   `short:"i" help:"Write the note in a form."`
}

func (c *NoteAddCmd) Run(ctx *Context) error {
	col, err := ctx.resolveCollection(c.Collection)
	if err != nil {
		return err
	}
	content, err := readContent(c.Content, c.File)
	if err != nil {
		return err
	}
	title := c.Title
	if c.Interactive {
		if err := noteForm(&title, &content).Run(); err != nil {
			return err
		}
	}
	n, err := ctx.Notes.AddNote(col.ID, title, content)
	if err != nil {
		return err
	}
	ctx.printf("Added note %s to %s (%s)\n", n.Title, col.Name, shortID(n.ID))
	return nil
}

func noteForm(title, content *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(title),
			huh.NewText().Title("Content (markdown)").Lines(12).Value(content),
		),
	).WithTheme(huh.ThemeDracula())
}

type NoteListCmd struct {
	Collection string `arg:"" optional:"" help:"Only notes in this collection."`
	Query      string `short:"q" help:"Search titles and content."`
}

func (c *NoteListCmd) Run(ctx *Context) error {
	list := ctx.Notes.Notes()
	if c.Collection != "" {
		col, err := ctx.resolveCollection(c.Collection)
		if err != nil {
			return err
		}
		list = notes.InCollection(list, col.ID)
	} else {
		list = byUpdated(list)
	}
	list = notes.Search(list, c.Query)
	if len(list) == 0 {
		ctx.println("No notes found.")
		return nil
	}
	names := make(map[string]string)
	for _, col := range ctx.Notes.Collections() {
		names[col.ID] = col.Name
	}
	now := ctx.now()
	for _, n := range list {
		ctx.printf("%s  %s  [%s] updated %s\n", shortID(n.ID), n.Title, names[n.CollectionID], humanize.RelTime(n.UpdatedAt, now, "ago", "from now"))
	}
	return nil
}

// byUpdated orders notes across all collections, most recently updated first.
func byUpdated(all []models.Note) []models.Note {
	out := append([]models.Note(nil), all...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

type NoteShowCmd struct {
	Note string `arg:"" help:"Note id (or its last characters)."`
}

func (c *NoteShowCmd) Run(ctx *Context) error {
	n, err := ctx.resolveNote(c.Note)
	if err != nil {
		return err
	}
	ctx.println(quadrantStyle.Render(n.Title))
	ctx.printf("Created %s, updated %s\n\n", n.CreatedAt.Format("2006-01-02 15:04"), humanize.RelTime(n.UpdatedAt, ctx.now(), "ago", "from now"))
	ctx.println(n.Content)
	return nil
}

type NoteEditCmd struct {
	Note        string  `arg:"" help:"Note id (or its last characters)."`
	Title       *string `help:"New title."`
	Content     *string `short:"m" help:"New markdown content."`
	File        string  `short:"f" help:"Read new content from a file, - for stdin."`
	Interactive bool    `short:"i" help:"Edit the note in a form."`
}

func (c *NoteEditCmd) Run(ctx *Context) error {
	n, err := ctx.resolveNote(c.Note)
	if err != nil {
		return err
	}
	title, content := n.Title, n.Content
	if c.Title != nil {
		title = *c.Title
	}
	if c.Content != nil {
		content = *c.Content
	}
	if c.File != "" {
		if content, err = readContent(content, c.File); err != nil {
			return err
		}
	}
	if c.Interactive {
		if err := noteForm(&title, &content).Run(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(title) == "" {
		return errors.Validation("note title is required")
	}
	updated, err := ctx.Notes.UpdateNote(n.ID, strings.TrimSpace(title), content)
	if err != nil {
		return err
	}
	ctx.printf("Updated note: %s\n", updated.Title)
	return nil
}

type NoteDeleteCmd struct {
	Note string `arg:"" help:"Note id (or its last characters)."`
}

func (c *NoteDeleteCmd) Run(ctx *Context) error {
	n, err := ctx.resolveNote(c.Note)
	if err != nil {
		return err
	}
	if err := ctx.Notes.DeleteNote(n.ID); err != nil {
		return err
	}
	ctx.printf("Deleted note: %s\n", n.Title)
	return nil
}

type NoteRenderCmd struct {
	Note   string `arg:"" help:"Note id (or its last characters)."`
	Output string `short:"o" type:"path" help:"Write the HTML to a file instead of stdout."`
}

func (c *NoteRenderCmd) Run(ctx *Context) error {
	n, err := ctx.resolveNote(c.Note)
	if err != nil {
		return err
	}
	html := notes.RenderMarkdown(n.Content)
	if c.Output == "" {
		ctx.println(html)
		return nil
	}
	if err := os.WriteFile(c.Output, []byte(html+"\n"), 0644); err != nil {
		return err
	}
	ctx.printf("Wrote %s\n", c.Output)
	return nil
}
