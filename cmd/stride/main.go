package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/stride/internal/cli"
	"github.com/julianstephens/stride/internal/config"
	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/logger"
	"github.com/julianstephens/stride/internal/rollover"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path (default: $STRIDE_CONFIG or ~/.config/stride/config.yaml)." type:"path"`
	Storage string `help:"SQLite path, .json path, PostgreSQL connection string or \"keyring\". For PostgreSQL, credentials must NOT be embedded in the connection string; use $STRIDE_DB_CONNECTION, .pgpass or the OS keyring instead."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init      cli.InitCmd      `cmd:"" help:"Initialize stride storage and write the config file."`
	Migrate   cli.MigrateCmd   `cmd:"" help:"Run database migrations."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Keyring   cli.KeyringCmd   `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Dashboard cli.DashboardCmd `cmd:"" help:"Print the dashboard."`
	Todo      cli.TodoCmd      `cmd:"" help:"Manage todos and the Eisenhower matrix."`
	Habit     cli.HabitCmd     `cmd:"" help:"Manage habits and habit tracking."`
	Routine   cli.RoutineCmd   `cmd:"" help:"Manage daily workout routines."`
	Weekly    cli.WeeklyCmd    `cmd:"" help:"Manage weekly workout routines."`
	Workout   cli.WorkoutCmd   `cmd:"" help:"Today's workout status, rest days and the reset timer."`
	Exercise  cli.ExerciseCmd  `cmd:"" help:"Browse the exercise catalog."`
	Note      cli.NoteCmd      `cmd:"" help:"Manage notes and collections."`
	Backup    cli.BackupCmd    `cmd:"" help:"Manage database backups."`
}

// commands that open the store themselves or never touch it
var skipLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Todos, habits and workouts with a daily rollover"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": cli.VersionString()},
	)
	command := strings.Fields(ctx.Command())[0]

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.Path()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Storage != "" {
		cfg.Storage = config.ExpandHome(CLI.Storage)
		cfg.StorageFromEnv = false
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	store, err := cli.OpenStore(cfg.Storage, cfg.StorageFromEnv)
	if err != nil && command != "keyring" {
		errors.Fatal(err)
	}
	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx, err := cli.NewContext(store, cfg, rollover.SystemClock{})
	if err != nil {
		errors.Fatal(err)
	}
	appCtx.ConfigPath = configPath

	err = ctx.Run(appCtx)
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("failed to close store", "error", cerr)
		}
	}
	errors.Fatal(err)
}

