package models

import (
	"testing"

	"github.com/julianstephens/stride/internal/errors"
)

func TestTodo_Validate(t *testing.T) {
	tests := []struct {
		name    string
		todo    Todo
		wantErr bool
	}{
		{"valid", Todo{Title: "Write report", Category: "work", Priority: PriorityHigh}, false},
		{"blank title", Todo{Title: "   ", Category: "work", Priority: PriorityLow}, true},
		{"missing category", Todo{Title: "x", Priority: PriorityLow}, true},
		{"bad priority", Todo{Title: "x", Category: "c", Priority: "urgent"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.todo.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRoutine_Validate(t *testing.T) {
	ex := RoutineExercise{ExerciseID: "Push_Up", Type: ExerciseReps, Sets: 3, RepsPerSet: 10, RestBetweenSets: 60}
	tests := []struct {
		name    string
		routine Routine
		wantErr bool
	}{
		{"valid", Routine{Name: "Morning", Exercises: []RoutineExercise{ex}}, false},
		{"no exercises", Routine{Name: "Morning"}, true},
		{"no name", Routine{Exercises: []RoutineExercise{ex}}, true},
		{"time exercise without duration", Routine{Name: "Plank", Exercises: []RoutineExercise{{ExerciseID: "Plank", Type: ExerciseTime, Sets: 1}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.routine.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeeklyRoutine_Validate(t *testing.T) {
	ex := RoutineExercise{ExerciseID: "Squat", Type: ExerciseReps, Sets: 3, RepsPerSet: 8}

	allRest := EmptyWeeklyPlan()
	for i := range allRest {
		allRest[i].IsRestDay = true
	}
	if err := (WeeklyRoutine{Name: "Lazy", WeeklyPlan: allRest}).Validate(); err == nil {
		t.Error("expected error for a week of rest days")
	}

	empty := EmptyWeeklyPlan()
	if err := (WeeklyRoutine{Name: "Empty", WeeklyPlan: empty}).Validate(); err == nil {
		t.Error("expected error for a week without exercises")
	}

	plan := EmptyWeeklyPlan()
	plan[0].Exercises = []RoutineExercise{ex}
	if err := (WeeklyRoutine{Name: "Split", WeeklyPlan: plan}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDayHelpers(t *testing.T) {
	if DayOf(0) != Sunday || DayOf(6) != Saturday {
		t.Error("DayOf mapping is wrong")
	}
	d, err := ParseDay("Wed")
	if err != nil || d != Wednesday {
		t.Errorf("ParseDay(Wed) = %v, %v", d, err)
	}
	if _, err := ParseDay("someday"); err == nil {
		t.Error("expected error for unknown day")
	}
}

func TestPriority(t *testing.T) {
	if PriorityHigh.Rank() >= PriorityMedium.Rank() || PriorityMedium.Rank() >= PriorityLow.Rank() {
		t.Error("priority ranks out of order")
	}
	if p, err := ParsePriority(" HIGH "); err != nil || p != PriorityHigh {
		t.Errorf("ParsePriority = %v, %v", p, err)
	}
}
