package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/stride/internal/backup"
	"github.com/julianstephens/stride/internal/config"
	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/keyring"
	"github.com/julianstephens/stride/internal/logger"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/storage"
	"github.com/julianstephens/stride/internal/storage/postgres"
	"github.com/julianstephens/stride/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Rewrite the config file even if it exists."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized stride storage at: %s\n", displayTarget(ctx.Store.GetConfigPath()))

	path := ctx.ConfigPath
	if _, err := os.Stat(path); err == nil && !c.Force {
		return nil
	}
	if err := config.Save(ctx.Config, path); err != nil {
		return err
	}
	ctx.printf("Wrote config: %s\n", path)
	return nil
}

func displayTarget(target string) string {
	if IsPostgres(target) {
		return keyring.MaskPassword(target)
	}
	return target
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		ctx.println("This storage backend has no schema to migrate.")
		return nil
	}
	ctx.PerformAutomaticBackup()
	ctx.println("Running database migrations...")
	_, err := m.Migrate(func(msg string) { ctx.println(msg) })
	return err
}

type DoctorCmd struct{}

type check struct {
	name    string
	warning bool
	run     func(*Context) error
}

var doctorChecks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion},
	{name: "Backups present", warning: true, run: checkBackupsPresent},
	{name: "Data validation", run: checkValidation},
	{name: "Exercise catalog", warning: true, run: checkCatalog},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (c *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	failed := false
	reachable := true
	for _, chk := range doctorChecks {
		if !reachable && chk.name != "Clock/timezone" {
			ctx.printf("⊘ %s: SKIPPED (database not reachable)\n", chk.name)
			continue
		}
		err := chk.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", chk.name)
		case chk.warning:
			ctx.printf("⚠ %s: WARNING\n   %v\n", chk.name, err)
		default:
			ctx.printf("❌ %s: FAIL\n   Error: %v\n", chk.name, err)
			failed = true
			if chk.name == "Database reachable" {
				reachable = false
			}
		}
	}

	ctx.println()
	if failed {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	ctx.printf("Log file: %s\n", logger.Path(filepath.Dir(ctx.ConfigPath)))
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.Keys(""); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("database schema version (%d) is behind (%d), run 'stride migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'stride backup create'")
	}
	if age := ctx.now().Sub(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

// checkValidation loads every collection and validates each record.
func checkValidation(ctx *Context) error {
	var errs []error
	for _, t := range ctx.Todos.List() {
		errs = append(errs, t.Validate())
	}
	for _, h := range ctx.Habits.Habits() {
		errs = append(errs, h.Validate())
	}
	for _, r := range ctx.Routines().Daily() {
		errs = append(errs, r.Validate())
	}
	for _, w := range ctx.Routines().Weekly() {
		errs = append(errs, w.Validate())
	}
	for _, c := range ctx.Notes.Collections() {
		errs = append(errs, c.Validate())
	}
	for _, n := range ctx.Notes.Notes() {
		errs = append(errs, n.Validate())
	}
	errs = append(errs, checkOrphans(ctx)...)
	return errors.Join(errs...)
}

func checkOrphans(ctx *Context) []error {
	var errs []error
	habitIDs := make(map[string]bool)
	for _, h := range ctx.Habits.Habits() {
		habitIDs[h.ID] = true
	}
	for _, e := range ctx.Habits.Entries() {
		if !habitIDs[e.HabitID] {
			errs = append(errs, fmt.Errorf("habit entry on %s references missing habit %s", e.Date, e.HabitID))
		}
	}
	collectionIDs := make(map[string]bool)
	for _, c := range ctx.Notes.Collections() {
		collectionIDs[c.ID] = true
	}
	for _, n := range ctx.Notes.Notes() {
		if !collectionIDs[n.CollectionID] {
			errs = append(errs, fmt.Errorf("note %q references missing collection %s", n.Title, n.CollectionID))
		}
	}
	return errs
}

func checkCatalog(ctx *Context) error {
	cat := ctx.Catalog()
	if cat.Len() == 0 {
		return fmt.Errorf("exercise catalog is empty or could not be loaded")
	}
	var missing []string
	addMissing := func(exercises []models.RoutineExercise) {
		for _, e := range exercises {
			if _, ok := cat.Get(e.ExerciseID); !ok {
				missing = append(missing, e.ExerciseID)
			}
		}
	}
	for _, r := range ctx.Routines().Daily() {
		addMissing(r.Exercises)
	}
	for _, w := range ctx.Routines().Weekly() {
		for _, p := range w.WeeklyPlan {
			addMissing(p.Exercises)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("routines reference %d exercise(s) missing from the catalog: %v", len(missing), missing)
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system clock appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Policy.Loc == nil {
		return fmt.Errorf("timezone is not set")
	}
	return nil
}

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Show keyring availability and what is stored."`
}

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string."`
}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	if !IsPostgres(c.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if err := postgres.ValidateConnString(c.ConnectionString); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("invalid connection string: %w", err)
	}
	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	ctx.println("✓ Connection string stored in OS keyring")
	ctx.printf("  Set storage to %q in %s to use it\n", KeyringTarget, ctx.ConfigPath)
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		ctx.println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.println("✓ OS keyring is available")
	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		ctx.printf("✓ Connection string stored: %s\n", keyring.MaskPassword(connStr))
	case errors.Is(err, keyring.ErrNotFound):
		ctx.println("ℹ No connection string stored in keyring")
	default:
		return err
	}
	return nil
}

// VersionString is shown by --version.
func VersionString() string {
	return constants.AppName + " " + constants.Version
}
