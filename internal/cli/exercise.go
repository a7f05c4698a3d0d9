package cli

import (
	"strings"

	"github.com/julianstephens/stride/internal/catalog"
	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
)

type ExerciseCmd struct {
	Search ExerciseSearchCmd `cmd:"" help:"Search the exercise catalog."`
	Show   ExerciseShowCmd   `cmd:"" help:"Show an exercise's details."`
	Muscle ExerciseMuscleCmd `cmd:"" help:"List exercises working a muscle."`
}

func printExercises(ctx *Context, list []models.Exercise) {
	if len(list) == 0 {
		ctx.println("No exercises found.")
		return
	}
	for _, e := range list {
		ctx.printf("%-28s %s (%s, %s)\n", e.ID, e.Name, e.Level, strings.Join(e.PrimaryMuscles, ", "))
	}
}

type ExerciseSearchCmd struct {
	Query string `arg:"" optional:"" help:"Matches name, equipment or primary muscle."`
}

func (c *ExerciseSearchCmd) Run(ctx *Context) error {
	printExercises(ctx, ctx.Catalog().Search(c.Query))
	return nil
}

type ExerciseShowCmd struct {
	ID string `arg:"" help:"Exercise id, e.g. Pushups."`
}

func (c *ExerciseShowCmd) Run(ctx *Context) error {
	cat := ctx.Catalog()
	e, ok := cat.Get(c.ID)
	if !ok {
		return checkExercise(cat, c.ID)
	}
	ctx.println(quadrantStyle.Render(e.Name))
	ctx.printf("Level: %s   Category: %s\n", e.Level, e.Category)
	if e.Equipment != "" {
		ctx.printf("Equipment: %s\n", e.Equipment)
	}
	if e.Force != "" || e.Mechanic != "" {
		ctx.printf("Force: %s   Mechanic: %s\n", e.Force, e.Mechanic)
	}
	ctx.printf("Primary muscles: %s\n", strings.Join(e.PrimaryMuscles, ", "))
	if len(e.SecondaryMuscles) > 0 {
		ctx.printf("Secondary muscles: %s\n", strings.Join(e.SecondaryMuscles, ", "))
	}
	if len(e.Instructions) > 0 {
		ctx.println()
		for i, step := range e.Instructions {
			ctx.printf("%d. %s\n", i+1, step)
		}
	}
	if len(e.Images) > 0 {
		ctx.println()
		for i := range e.Images {
			ctx.println(catalog.ImagePath(e.ID, i))
		}
	}
	return nil
}

type ExerciseMuscleCmd struct {
	Muscle string `arg:"" help:"Muscle name, e.g. chest."`
}

func (c *ExerciseMuscleCmd) Run(ctx *Context) error {
	if strings.TrimSpace(c.Muscle) == "" {
		return errors.Validation("muscle is required")
	}
	printExercises(ctx, ctx.Catalog().ByMuscle(c.Muscle))
	return nil
}
