package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/stride/internal/workout"
)

type WorkoutCmd struct {
	Status WorkoutStatusCmd `cmd:"" default:"1" help:"Show today's workout banner and plan."`
	Rest   WorkoutRestCmd   `cmd:"" help:"Mark today as a rest day."`
	Watch  WorkoutWatchCmd  `cmd:"" help:"Run the daily reset timer in the foreground."`
}

var bannerStyles = map[workout.BannerKind]lipgloss.Style{
	workout.BannerNoWorkouts: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	workout.BannerRestDay:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	workout.BannerCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	workout.BannerDue:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
}

func printBanner(ctx *Context, b workout.Banner) {
	ctx.println(bannerStyles[b.Kind].Bold(true).Render(b.Title))
	ctx.println(b.Message)
	for _, tip := range b.Tips {
		ctx.printf("  • %s: %s\n", tip.Title, tip.Description)
	}
}

type WorkoutStatusCmd struct{}

func (c *WorkoutStatusCmd) Run(ctx *Context) error {
	ctx.Scheduler.Refresh()
	printBanner(ctx, ctx.Scheduler.Banner())

	plan := workout.TodaysPlan(ctx.Routines().Daily(), ctx.Routines().Weekly(), ctx.now(), ctx.Policy)
	if len(plan) == 0 {
		return nil
	}
	cat := ctx.Catalog()
	ctx.println()
	ctx.println("Today's plan:")
	for _, p := range plan {
		mark := "[ ]"
		if p.Done {
			mark = "[x]"
		}
		ctx.printf("%s %s (%s, about %s)\n", mark, p.RoutineName, p.Type, workout.Duration(p.Exercises).Round(time.Minute))
		for _, e := range p.Exercises {
			ctx.printf("      %s\n", formatExercise(cat, e))
		}
	}
	return nil
}

type WorkoutRestCmd struct{}

func (c *WorkoutRestCmd) Run(ctx *Context) error {
	if err := ctx.Scheduler.MarkRestDay(); err != nil {
		return err
	}
	ctx.Scheduler.Refresh()
	printBanner(ctx, ctx.Scheduler.Banner())
	return nil
}

type WorkoutWatchCmd struct {
	Interval time.Duration `help:"Poll interval (default: reset_poll_interval from the config)."`
}

func (c *WorkoutWatchCmd) Run(ctx *Context) error {
	interval := c.Interval
	if interval <= 0 {
		interval = ctx.Config.ResetPollInterval
	}
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Scheduler.Refresh()
	printBanner(ctx, ctx.Scheduler.Banner())
	ctx.printf("Watching for the %02d:00 reset every %s (Ctrl+C to stop)\n", ctx.Policy.Hour, interval)

	err := ctx.Scheduler.Watch(sigCtx, interval, func() {
		ctx.println()
		ctx.printf("New day (%s)\n", ctx.Policy.EffectiveDay(ctx.now()))
		printBanner(ctx, ctx.Scheduler.Banner())
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
