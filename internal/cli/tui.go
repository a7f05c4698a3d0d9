package cli

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/julianstephens/stride/internal/tui"
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *Context) error {
	ctx.println(tui.RenderDashboard(ctx.Snapshot(), ctx.now(), ctx.Policy))
	return nil
}

type TuiCmd struct{}

// Run opens the interactive view. Without a terminal it prints the
// dashboard instead.
func (c *TuiCmd) Run(ctx *Context) error {
	if !isTerminal(os.Stdout) {
		return (&DashboardCmd{}).Run(ctx)
	}
	ctx.PerformAutomaticBackup()
	return tui.Run(tui.Services{
		Todos:        ctx.Todos,
		Habits:       ctx.Habits,
		Notes:        ctx.Notes,
		Scheduler:    ctx.Scheduler,
		Policy:       ctx.Policy,
		Clock:        ctx.Clock,
		PollInterval: ctx.Config.ResetPollInterval,
		ExerciseName: ctx.Catalog().Name,
	})
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
