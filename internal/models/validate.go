package models

import (
	"strings"

	"github.com/julianstephens/stride/internal/errors"
)

// Validate checks the fields a user must supply for a todo.
func (t Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.Validation("todo title is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.Validation("todo category is required")
	}
	if !t.Priority.Valid() {
		return errors.Validation("invalid priority %q", t.Priority)
	}
	return nil
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return errors.Validation("habit name is required")
	}
	return nil
}

func (e RoutineExercise) Validate() error {
	if e.ExerciseID == "" {
		return errors.Validation("exercise id is required")
	}
	if e.Sets < 1 {
		return errors.Validation("exercise %s: sets must be at least 1", e.ExerciseID)
	}
	switch e.Type {
	case ExerciseReps:
		if e.RepsPerSet < 1 {
			return errors.Validation("exercise %s: reps per set must be at least 1", e.ExerciseID)
		}
	case ExerciseTime:
		if e.TimePerSet < 1 {
			return errors.Validation("exercise %s: time per set must be at least 1 second", e.ExerciseID)
		}
	default:
		return errors.Validation("exercise %s: type must be reps or time", e.ExerciseID)
	}
	if e.RestBetweenSets < 0 {
		return errors.Validation("exercise %s: rest cannot be negative", e.ExerciseID)
	}
	return nil
}

func (r Routine) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Validation("routine name is required")
	}
	if len(r.Exercises) == 0 {
		return errors.Validation("routine needs at least one exercise")
	}
	for _, e := range r.Exercises {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate requires a name and at least one workout day that has exercises.
func (w WeeklyRoutine) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return errors.Validation("routine name is required")
	}
	workoutDays := 0
	for _, p := range w.WeeklyPlan {
		if p.IsRestDay {
			continue
		}
		for _, e := range p.Exercises {
			if err := e.Validate(); err != nil {
				return err
			}
		}
		if len(p.Exercises) > 0 {
			workoutDays++
		}
	}
	if workoutDays == 0 {
		return errors.Validation("weekly routine needs at least one workout day with exercises")
	}
	return nil
}

func (c NoteCollection) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.Validation("collection name is required")
	}
	return nil
}

func (n Note) Validate() error {
	if n.CollectionID == "" {
		return errors.Validation("note must belong to a collection")
	}
	return nil
}
