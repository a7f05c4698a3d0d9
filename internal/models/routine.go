package models

import (
	"fmt"
	"strings"
	"time"
)

type RoutineType string

const (
	RoutineDaily  RoutineType = "daily"
	RoutineWeekly RoutineType = "weekly"
)

type ExerciseType string

const (
	ExerciseReps ExerciseType = "reps"
	ExerciseTime ExerciseType = "time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// Weekdays lists the days in the order a weekly plan is laid out.
var Weekdays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayOf maps a time.Weekday onto DayOfWeek.
func DayOf(w time.Weekday) DayOfWeek {
	return [...]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}[w]
}

// ParseDay accepts a full or three-letter day name.
func ParseDay(s string) (DayOfWeek, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Weekdays {
		if s == string(d) || (len(s) == 3 && strings.HasPrefix(string(d), s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day %q", s)
}

type RoutineExercise struct {
	ExerciseID      string       `json:"exerciseId"`
	Type            ExerciseType `json:"type"`
	Sets            int          `json:"sets"`
	RepsPerSet      int          `json:"repsPerSet,omitempty"`
	TimePerSet      int          `json:"timePerSet,omitempty"` // seconds
	RestBetweenSets int          `json:"restBetweenSets"`      // seconds
}

// Routine is a daily routine: the same exercise list every day.
type Routine struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          RoutineType       `json:"type"`
	Exercises     []RoutineExercise `json:"exercises"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastPerformed *time.Time        `json:"lastPerformed,omitempty"`
}

type DailyWorkoutPlan struct {
	Day       DayOfWeek         `json:"day"`
	IsRestDay bool              `json:"isRestDay"`
	Exercises []RoutineExercise `json:"exercises"`
}

type WeeklyRoutine struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	Type              RoutineType             `json:"type"`
	WeeklyPlan        []DailyWorkoutPlan      `json:"weeklyPlan"`
	CreatedAt         time.Time               `json:"createdAt"`
	LastPerformedDays map[DayOfWeek]time.Time `json:"lastPerformedDays,omitempty"`
}

// Plan returns the plan for day, if the routine has one.
func (w WeeklyRoutine) Plan(day DayOfWeek) (DailyWorkoutPlan, bool) {
	for _, p := range w.WeeklyPlan {
		if p.Day == day {
			return p, true
		}
	}
	return DailyWorkoutPlan{}, false
}

// EmptyWeeklyPlan returns seven workout days with no exercises.
func EmptyWeeklyPlan() []DailyWorkoutPlan {
	plan := make([]DailyWorkoutPlan, 0, len(Weekdays))
	for _, d := range Weekdays {
		plan = append(plan, DailyWorkoutPlan{Day: d, Exercises: []RoutineExercise{}})
	}
	return plan
}

type WorkoutSession struct {
	RoutineID string     `json:"routineId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Completed bool       `json:"completed"`
}
