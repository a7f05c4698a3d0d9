package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/stride/internal/catalog"
	"github.com/julianstephens/stride/internal/dashboard"
	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/workout"
)

const defaultRestSeconds = 60

// parseExercise reads ID:SETSxREPS[@REST] or ID:SETSxSECONDSs[@REST],
// e.g. Pushups:3x12@60 or Plank:3x45s.
func parseExercise(arg string) (models.RoutineExercise, error) {
	id, shape, ok := strings.Cut(strings.TrimSpace(arg), ":")
	if !ok || id == "" {
		return models.RoutineExercise{}, errors.Validation("exercise %q: expected ID:SETSxREPS[@REST]", arg)
	}
	e := models.RoutineExercise{ExerciseID: id, Type: models.ExerciseReps, RestBetweenSets: defaultRestSeconds}

	shape, rest, hasRest := strings.Cut(shape, "@")
	if hasRest {
		n, err := strconv.Atoi(strings.TrimSuffix(rest, "s"))
		if err != nil {
			return models.RoutineExercise{}, errors.Validation("exercise %q: invalid rest %q", arg, rest)
		}
		e.RestBetweenSets = n
	}

	sets, per, ok := strings.Cut(strings.ToLower(shape), "x")
	if !ok {
		return models.RoutineExercise{}, errors.Validation("exercise %q: expected SETSxREPS", arg)
	}
	n, err := strconv.Atoi(sets)
	if err != nil {
		return models.RoutineExercise{}, errors.Validation("exercise %q: invalid sets %q", arg, sets)
	}
	e.Sets = n
	if strings.HasSuffix(per, "s") {
		e.Type = models.ExerciseTime
		per = strings.TrimSuffix(per, "s")
	}
	v, err := strconv.Atoi(per)
	if err != nil {
		return models.RoutineExercise{}, errors.Validation("exercise %q: invalid count %q", arg, per)
	}
	if e.Type == models.ExerciseTime {
		e.TimePerSet = v
	} else {
		e.RepsPerSet = v
	}
	return e, e.Validate()
}

// parseExercises parses args and checks each id against the catalog.
func parseExercises(cat *catalog.Catalog, args []string) ([]models.RoutineExercise, error) {
	out := make([]models.RoutineExercise, 0, len(args))
	for _, arg := range args {
		e, err := parseExercise(arg)
		if err != nil {
			return nil, err
		}
		if err := checkExercise(cat, e.ExerciseID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func checkExercise(cat *catalog.Catalog, id string) error {
	if cat.Len() == 0 {
		return nil
	}
	if _, ok := cat.Get(id); ok {
		return nil
	}
	if s := cat.Suggest(id, 1); len(s) > 0 {
		return errors.NotFound("exercise", id+" (did you mean "+s[0].ID+"?)")
	}
	return errors.NotFound("exercise", id)
}

func formatExercise(cat *catalog.Catalog, e models.RoutineExercise) string {
	per := fmt.Sprintf("%d reps", e.RepsPerSet)
	if e.Type == models.ExerciseTime {
		per = fmt.Sprintf("%ds", e.TimePerSet)
	}
	return fmt.Sprintf("%s: %d x %s, %ds rest", cat.Name(e.ExerciseID), e.Sets, per, e.RestBetweenSets)
}

func startedBefore(ctx *Context, d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return ctx.now().Add(-d)
}

func matchName(name, ref string) bool {
	return strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(ref))
}

func (ctx *Context) resolveRoutine(ref string) (models.Routine, error) {
	for _, r := range ctx.Routines().Daily() {
		if matchName(r.Name, ref) {
			return r, nil
		}
	}
	return resolveID(ctx.Routines().Daily(), func(r models.Routine) string { return r.ID }, ref, "routine")
}

func (ctx *Context) resolveWeekly(ref string) (models.WeeklyRoutine, error) {
	for _, w := range ctx.Routines().Weekly() {
		if matchName(w.Name, ref) {
			return w, nil
		}
	}
	return resolveID(ctx.Routines().Weekly(), func(w models.WeeklyRoutine) string { return w.ID }, ref, "weekly routine")
}

type RoutineCmd struct {
	Add      RoutineAddCmd      `cmd:"" help:"Create a daily routine."`
	List     RoutineListCmd     `cmd:"" help:"List daily routines."`
	Show     RoutineShowCmd     `cmd:"" help:"Show a daily routine."`
	Delete   RoutineDeleteCmd   `cmd:"" help:"Delete a daily routine."`
	Complete RoutineCompleteCmd `cmd:"" help:"Log a daily routine as done."`
}

type RoutineAddCmd struct {
	Name      string   `arg:"" help:"Routine name."`
	Exercises []string `arg:"" name:"exercise" help:"Exercises as ID:SETSxREPS[@REST] or ID:SETSxSECONDSs[@REST]."`
}

func (c *RoutineAddCmd) Run(ctx *Context) error {
	exercises, err := parseExercises(ctx.Catalog(), c.Exercises)
	if err != nil {
		return err
	}
	r, err := ctx.Routines().AddDaily(c.Name, exercises)
	if err != nil {
		return err
	}
	ctx.printf("Created daily routine %s (%d exercises, about %s)\n", r.Name, len(r.Exercises), workout.Duration(r.Exercises).Round(time.Minute))
	return nil
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *Context) error {
	list := ctx.Routines().Daily()
	if len(list) == 0 {
		ctx.println("No daily routines.")
		return nil
	}
	now := ctx.now()
	for _, r := range list {
		mark := " "
		if workout.DoneToday(r, now, ctx.Policy) {
			mark = "✓"
		}
		ctx.printf("%s %s  %s  %d exercises, last done %s\n", mark, shortID(r.ID), r.Name, len(r.Exercises), dashboard.LastPerformed(r.LastPerformed, now))
	}
	return nil
}

type RoutineShowCmd struct {
	Routine string `arg:"" help:"Routine name or id."`
}

func (c *RoutineShowCmd) Run(ctx *Context) error {
	r, err := ctx.resolveRoutine(c.Routine)
	if err != nil {
		return err
	}
	cat := ctx.Catalog()
	ctx.printf("%s (daily, about %s)\n", r.Name, workout.Duration(r.Exercises).Round(time.Minute))
	for i, e := range r.Exercises {
		ctx.printf("  %d. %s\n", i+1, formatExercise(cat, e))
	}
	sessions := workout.SessionsFor(ctx.Routines().Sessions(), r.ID)
	ctx.printf("\nLast done %s, %d session(s) logged\n", dashboard.LastPerformed(r.LastPerformed, ctx.now()), len(sessions))
	return nil
}

type RoutineDeleteCmd struct {
	Routine string `arg:"" help:"Routine name or id."`
}

func (c *RoutineDeleteCmd) Run(ctx *Context) error {
	r, err := ctx.resolveRoutine(c.Routine)
	if err != nil {
		return err
	}
	if err := ctx.Routines().DeleteDaily(r.ID); err != nil {
		return err
	}
	ctx.printf("Deleted routine: %s\n", r.Name)
	return nil
}

type RoutineCompleteCmd struct {
	Routine  string        `arg:"" help:"Routine name or id."`
	Duration time.Duration `short:"d" help:"How long the session took, e.g. 25m."`
}

func (c *RoutineCompleteCmd) Run(ctx *Context) error {
	r, err := ctx.resolveRoutine(c.Routine)
	if err != nil {
		return err
	}
	if _, err := ctx.Routines().CompleteDaily(r.ID, startedBefore(ctx, c.Duration)); err != nil {
		return err
	}
	ctx.printf("✓ %s completed\n", r.Name)
	return nil
}

type WeeklyCmd struct {
	Add      WeeklyAddCmd      `cmd:"" help:"Create a weekly routine."`
	List     WeeklyListCmd     `cmd:"" help:"List weekly routines."`
	Show     WeeklyShowCmd     `cmd:"" help:"Show a weekly routine's plan."`
	Delete   WeeklyDeleteCmd   `cmd:"" help:"Delete a weekly routine."`
	Complete WeeklyCompleteCmd `cmd:"" help:"Log a day of a weekly routine as done."`
	Rest     WeeklyRestCmd     `cmd:"" help:"Toggle a day of a weekly routine between rest and workout."`
}

type WeeklyAddCmd struct {
	Name string   `arg:"" help:"Routine name."`
	Day  []string `short:"d" sep:"none" help:"A workout day as DAY=EXERCISE[,EXERCISE...], e.g. mon=Pushups:3x12,Plank:3x45s. Repeatable."`
	Rest []string `help:"Rest days, e.g. --rest sat,sun."`
}

func (c *WeeklyAddCmd) Run(ctx *Context) error {
	var plan []models.DailyWorkoutPlan
	for _, arg := range c.Day {
		dayName, list, ok := strings.Cut(arg, "=")
		if !ok {
			return errors.Validation("day %q: expected DAY=EXERCISES", arg)
		}
		day, err := models.ParseDay(dayName)
		if err != nil {
			return errors.Validation("%v", err)
		}
		exercises, err := parseExercises(ctx.Catalog(), strings.Split(list, ","))
		if err != nil {
			return err
		}
		plan = append(plan, models.DailyWorkoutPlan{Day: day, Exercises: exercises})
	}
	for _, name := range c.Rest {
		day, err := models.ParseDay(name)
		if err != nil {
			return errors.Validation("%v", err)
		}
		plan = append(plan, models.DailyWorkoutPlan{Day: day, IsRestDay: true})
	}

	w, err := ctx.Routines().AddWeekly(c.Name, plan)
	if err != nil {
		return err
	}
	ctx.printf("Created weekly routine %s\n", w.Name)
	return nil
}

type WeeklyListCmd struct{}

func (c *WeeklyListCmd) Run(ctx *Context) error {
	list := ctx.Routines().Weekly()
	if len(list) == 0 {
		ctx.println("No weekly routines.")
		return nil
	}
	now := ctx.now()
	for _, w := range list {
		mark := " "
		if workout.WeeklySatisfied(w, now, ctx.Policy) {
			mark = "✓"
		}
		workoutDays := 0
		for _, p := range w.WeeklyPlan {
			if !p.IsRestDay && len(p.Exercises) > 0 {
				workoutDays++
			}
		}
		ctx.printf("%s %s  %s  %d workout day(s), last done %s\n", mark, shortID(w.ID), w.Name, workoutDays, dashboard.LastPerformedWeekly(w, now))
	}
	return nil
}

type WeeklyShowCmd struct {
	Routine string `arg:"" help:"Routine name or id."`
}

func (c *WeeklyShowCmd) Run(ctx *Context) error {
	w, err := ctx.resolveWeekly(c.Routine)
	if err != nil {
		return err
	}
	cat := ctx.Catalog()
	today := models.DayOf(ctx.Policy.Weekday(ctx.now()))
	ctx.printf("%s (weekly)\n", w.Name)
	for _, p := range w.WeeklyPlan {
		marker := "  "
		if p.Day == today {
			marker = "▸ "
		}
		switch {
		case p.IsRestDay:
			ctx.printf("%s%-9s rest\n", marker, p.Day)
		case len(p.Exercises) == 0:
			ctx.printf("%s%-9s -\n", marker, p.Day)
		default:
			ctx.printf("%s%-9s about %s\n", marker, p.Day, workout.Duration(p.Exercises).Round(time.Minute))
			for _, e := range p.Exercises {
				ctx.printf("             %s\n", formatExercise(cat, e))
			}
		}
	}
	return nil
}

type WeeklyDeleteCmd struct {
	Routine string `arg:"" help:"Routine name or id."`
}

func (c *WeeklyDeleteCmd) Run(ctx *Context) error {
	w, err := ctx.resolveWeekly(c.Routine)
	if err != nil {
		return err
	}
	if err := ctx.Routines().DeleteWeekly(w.ID); err != nil {
		return err
	}
	ctx.printf("Deleted weekly routine: %s\n", w.Name)
	return nil
}

type WeeklyCompleteCmd struct {
	Routine  string        `arg:"" help:"Routine name or id."`
	Day      string        `help:"Day to log (default: today)."`
	Duration time.Duration `short:"d" help:"How long the session took, e.g. 40m."`
}

func (c *WeeklyCompleteCmd) Run(ctx *Context) error {
	w, err := ctx.resolveWeekly(c.Routine)
	if err != nil {
		return err
	}
	day := models.DayOf(ctx.Policy.Weekday(ctx.now()))
	if c.Day != "" {
		if day, err = models.ParseDay(c.Day); err != nil {
			return errors.Validation("%v", err)
		}
	}
	if _, err := ctx.Routines().CompleteWeeklyDay(w.ID, day, startedBefore(ctx, c.Duration)); err != nil {
		return err
	}
	ctx.printf("✓ %s completed for %s\n", w.Name, day)
	return nil
}

type WeeklyRestCmd struct {
	Routine string `arg:"" help:"Routine name or id."`
	Day     string `arg:"" help:"Day to toggle, e.g. sat."`
}

func (c *WeeklyRestCmd) Run(ctx *Context) error {
	w, err := ctx.resolveWeekly(c.Routine)
	if err != nil {
		return err
	}
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return errors.Validation("%v", err)
	}
	updated, err := ctx.Routines().ToggleWeeklyRestDay(w.ID, day)
	if err != nil {
		return err
	}
	if p, _ := updated.Plan(day); p.IsRestDay {
		ctx.printf("%s: %s is now a rest day\n", updated.Name, day)
	} else {
		ctx.printf("%s: %s is now a workout day\n", updated.Name, day)
	}
	return nil
}
