// Package cli implements the stride command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/stride/internal/backup"
	"github.com/julianstephens/stride/internal/catalog"
	"github.com/julianstephens/stride/internal/config"
	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/dashboard"
	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/habits"
	"github.com/julianstephens/stride/internal/logger"
	"github.com/julianstephens/stride/internal/notes"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/storage"
	"github.com/julianstephens/stride/internal/storage/sqlite"
	"github.com/julianstephens/stride/internal/todos"
	"github.com/julianstephens/stride/internal/workout"
)

// Context is handed to every command's Run method.
type Context struct {
	Store  storage.Provider
	Config *config.Config
	// ConfigPath is where init writes the config file.
	ConfigPath string
	Policy     rollover.Policy
	Clock      rollover.Clock
	Out        io.Writer
	Todos      *todos.Repository
	Habits     *habits.Ledger
	Scheduler  *workout.Scheduler
	Notes      *notes.Repository

	catalogOnce sync.Once
	catalog     *catalog.Catalog
}

// NewContext wires the domain services over store.
func NewContext(store storage.Provider, cfg *config.Config, clock rollover.Clock) (*Context, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	return &Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: config.Path(),
		Policy:     policy,
		Clock:      clock,
		Out:        os.Stdout,
		Todos:      todos.NewRepository(store, policy, clock),
		Habits:     habits.NewLedger(store, policy, clock),
		Scheduler:  workout.NewScheduler(store, policy, clock),
		Notes:      notes.NewRepository(store, clock),
	}, nil
}

// Catalog loads the exercise catalog on first use.
func (c *Context) Catalog() *catalog.Catalog {
	c.catalogOnce.Do(func() {
		c.catalog = catalog.Load(context.Background(), c.Config.Catalog, nil)
	})
	return c.catalog
}

func (c *Context) Routines() *workout.Routines {
	return c.Scheduler.Routines()
}

// Snapshot loads every collection the dashboard reads.
func (c *Context) Snapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		Todos:          c.Todos.List(),
		Habits:         c.Habits.Habits(),
		Entries:        c.Habits.Entries(),
		Routines:       c.Routines().Daily(),
		WeeklyRoutines: c.Routines().Weekly(),
		Collections:    c.Notes.Collections(),
		Notes:          c.Notes.Notes(),
	}
}

func (c *Context) now() time.Time {
	return c.Clock.Now()
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// PerformAutomaticBackup snapshots a SQLite database before risky commands.
// Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

const shortIDLen = 8

// shortID is the random tail of an id. UUIDv7 prefixes are timestamps and
// collide for records created close together.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[len(id)-shortIDLen:]
}

// resolveID finds the item whose id equals ref or ends with it. A suffix of
// at least four characters must be unique.
func resolveID[T any](items []T, id func(T) string, ref, kind string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	var match []T
	for _, it := range items {
		v := id(it)
		if v == ref {
			return it, nil
		}
		if len(ref) >= 4 && strings.HasSuffix(v, ref) {
			match = append(match, it)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return zero, errors.NotFound(kind, ref)
	default:
		return zero, errors.Validation("%s id %q is ambiguous", kind, ref)
	}
}

// parseDate accepts YYYY-MM-DD, "today", "yesterday" or "tomorrow" and
// defaults to def when s is empty. Relative words count from the calendar day.
func (c *Context) parseDate(s, def string) (string, error) {
	return parseDateFrom(s, def, c.Policy.Midnight(c.now()))
}

// parseHabitDate is parseDate for habit entries: empty input and relative
// words count from the effective day, the same day the lock window uses.
func (c *Context) parseHabitDate(s string) (string, error) {
	today := c.Policy.EffectiveDate(c.now())
	return parseDateFrom(s, today.Format(constants.DateFormat), today)
}

func parseDateFrom(s, def string, today time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "today":
		return today.Format(constants.DateFormat), nil
	case "yesterday":
		return today.AddDate(0, 0, -1).Format(constants.DateFormat), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(constants.DateFormat), nil
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return "", errors.Validation("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.Format(constants.DateFormat), nil
}
