// Package workout stores exercise routines and decides whether today's
// workout is done.
package workout

import (
	"strings"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/storage"
)

// Routines reads and writes daily routines, weekly routines and sessions.
type Routines struct {
	store storage.Provider
	clock rollover.Clock
}

func NewRoutines(store storage.Provider, clock rollover.Clock) *Routines {
	return &Routines{store: store, clock: clock}
}

func (r *Routines) Daily() []models.Routine {
	return storage.LoadList[models.Routine](r.store, constants.KeyRoutines)
}

func (r *Routines) Weekly() []models.WeeklyRoutine {
	return storage.LoadList[models.WeeklyRoutine](r.store, constants.KeyWeeklyRoutines)
}

func (r *Routines) Sessions() []models.WorkoutSession {
	return storage.LoadList[models.WorkoutSession](r.store, constants.KeySessions)
}

// AddDaily validates and stores a new daily routine.
func (r *Routines) AddDaily(name string, exercises []models.RoutineExercise) (models.Routine, error) {
	routine := models.Routine{
		ID:        models.NewID(),
		Name:      strings.TrimSpace(name),
		Type:      models.RoutineDaily,
		Exercises: exercises,
		CreatedAt: r.clock.Now(),
	}
	if err := routine.Validate(); err != nil {
		return models.Routine{}, err
	}
	if err := storage.SaveList(r.store, constants.KeyRoutines, append(r.Daily(), routine)); err != nil {
		return models.Routine{}, err
	}
	return routine, nil
}

// AddWeekly validates and stores a new weekly routine. Days missing from
// plan are filled in as empty workout days.
func (r *Routines) AddWeekly(name string, plan []models.DailyWorkoutPlan) (models.WeeklyRoutine, error) {
	full := models.EmptyWeeklyPlan()
	for _, p := range plan {
		for i := range full {
			if full[i].Day == p.Day {
				full[i] = p
				if full[i].IsRestDay || full[i].Exercises == nil {
					full[i].Exercises = []models.RoutineExercise{}
				}
			}
		}
	}
	routine := models.WeeklyRoutine{
		ID:         models.NewID(),
		Name:       strings.TrimSpace(name),
		Type:       models.RoutineWeekly,
		WeeklyPlan: full,
		CreatedAt:  r.clock.Now(),
	}
	if err := routine.Validate(); err != nil {
		return models.WeeklyRoutine{}, err
	}
	if err := storage.SaveList(r.store, constants.KeyWeeklyRoutines, append(r.Weekly(), routine)); err != nil {
		return models.WeeklyRoutine{}, err
	}
	return routine, nil
}

// ToggleRestDay flips a day of a plan between rest and workout. A day
// becoming a rest day loses its exercises.
func ToggleRestDay(plan []models.DailyWorkoutPlan, day models.DayOfWeek) {
	for i := range plan {
		if plan[i].Day == day {
			plan[i].IsRestDay = !plan[i].IsRestDay
			if plan[i].IsRestDay {
				plan[i].Exercises = []models.RoutineExercise{}
			}
		}
	}
}

// ToggleWeeklyRestDay flips one day of a stored weekly routine. The
// routine must keep at least one workout day.
func (r *Routines) ToggleWeeklyRestDay(id string, day models.DayOfWeek) (models.WeeklyRoutine, error) {
	routines := r.Weekly()
	for i := range routines {
		if routines[i].ID != id {
			continue
		}
		plan := append([]models.DailyWorkoutPlan(nil), routines[i].WeeklyPlan...)
		ToggleRestDay(plan, day)
		updated := routines[i]
		updated.WeeklyPlan = plan
		if err := updated.Validate(); err != nil {
			return models.WeeklyRoutine{}, err
		}
		routines[i] = updated
		if err := storage.SaveList(r.store, constants.KeyWeeklyRoutines, routines); err != nil {
			return models.WeeklyRoutine{}, err
		}
		return updated, nil
	}
	return models.WeeklyRoutine{}, errors.NotFound("weekly routine", id)
}

func (r *Routines) GetDaily(id string) (models.Routine, error) {
	for _, rt := range r.Daily() {
		if rt.ID == id {
			return rt, nil
		}
	}
	return models.Routine{}, errors.NotFound("routine", id)
}

func (r *Routines) GetWeekly(id string) (models.WeeklyRoutine, error) {
	for _, rt := range r.Weekly() {
		if rt.ID == id {
			return rt, nil
		}
	}
	return models.WeeklyRoutine{}, errors.NotFound("weekly routine", id)
}

func (r *Routines) DeleteDaily(id string) error {
	routines := r.Daily()
	kept := routines[:0]
	for _, rt := range routines {
		if rt.ID != id {
			kept = append(kept, rt)
		}
	}
	if len(kept) == len(routines) {
		return errors.NotFound("routine", id)
	}
	return storage.SaveList(r.store, constants.KeyRoutines, kept)
}

func (r *Routines) DeleteWeekly(id string) error {
	routines := r.Weekly()
	kept := routines[:0]
	for _, rt := range routines {
		if rt.ID != id {
			kept = append(kept, rt)
		}
	}
	if len(kept) == len(routines) {
		return errors.NotFound("weekly routine", id)
	}
	return storage.SaveList(r.store, constants.KeyWeeklyRoutines, kept)
}

// CompleteDaily stamps the routine as performed now and logs a completed
// session that began at started. A zero started means now.
func (r *Routines) CompleteDaily(id string, started time.Time) (models.Routine, error) {
	now := r.clock.Now()
	routines := r.Daily()
	for i := range routines {
		if routines[i].ID != id {
			continue
		}
		routines[i].LastPerformed = &now
		if err := storage.SaveList(r.store, constants.KeyRoutines, routines); err != nil {
			return models.Routine{}, err
		}
		return routines[i], r.logSession(id, started, now)
	}
	return models.Routine{}, errors.NotFound("routine", id)
}

// CompleteWeeklyDay stamps one day of a weekly routine as performed now.
func (r *Routines) CompleteWeeklyDay(id string, day models.DayOfWeek, started time.Time) (models.WeeklyRoutine, error) {
	now := r.clock.Now()
	routines := r.Weekly()
	for i := range routines {
		if routines[i].ID != id {
			continue
		}
		plan, ok := routines[i].Plan(day)
		if !ok || plan.IsRestDay || len(plan.Exercises) == 0 {
			return models.WeeklyRoutine{}, errors.Validation("%s has no workout on %s", routines[i].Name, day)
		}
		if routines[i].LastPerformedDays == nil {
			routines[i].LastPerformedDays = make(map[models.DayOfWeek]time.Time)
		}
		routines[i].LastPerformedDays[day] = now
		if err := storage.SaveList(r.store, constants.KeyWeeklyRoutines, routines); err != nil {
			return models.WeeklyRoutine{}, err
		}
		return routines[i], r.logSession(id, started, now)
	}
	return models.WeeklyRoutine{}, errors.NotFound("weekly routine", id)
}

func (r *Routines) logSession(routineID string, started, ended time.Time) error {
	if started.IsZero() {
		started = ended
	}
	end := ended
	session := models.WorkoutSession{RoutineID: routineID, StartTime: started, EndTime: &end, Completed: true}
	return storage.SaveList(r.store, constants.KeySessions, append(r.Sessions(), session))
}

// SessionsFor returns the sessions logged for a routine, oldest first.
func SessionsFor(sessions []models.WorkoutSession, routineID string) []models.WorkoutSession {
	out := []models.WorkoutSession{}
	for _, s := range sessions {
		if s.RoutineID == routineID {
			out = append(out, s)
		}
	}
	return out
}

// Duration estimates how long a list of exercises takes, counting work and
// rest between sets. Reps are assumed to take three seconds each.
func Duration(exercises []models.RoutineExercise) time.Duration {
	const secondsPerRep = 3
	total := 0
	for _, e := range exercises {
		perSet := e.TimePerSet
		if e.Type == models.ExerciseReps {
			perSet = e.RepsPerSet * secondsPerRep
		}
		total += e.Sets*perSet + max(e.Sets-1, 0)*e.RestBetweenSets
	}
	return time.Duration(total) * time.Second
}

// PlannedWorkout is one routine's exercises for a given day.
type PlannedWorkout struct {
	RoutineID   string
	RoutineName string
	Type        models.RoutineType
	Exercises   []models.RoutineExercise
	Done        bool
}

// TodaysPlan lists what is scheduled on now's calendar day: every daily
// routine plus each weekly routine that has work planned for the weekday.
func TodaysPlan(daily []models.Routine, weekly []models.WeeklyRoutine, now time.Time, policy rollover.Policy) []PlannedWorkout {
	out := []PlannedWorkout{}
	for _, r := range daily {
		out = append(out, PlannedWorkout{
			RoutineID:   r.ID,
			RoutineName: r.Name,
			Type:        models.RoutineDaily,
			Exercises:   r.Exercises,
			Done:        DoneToday(r, now, policy),
		})
	}
	day := models.DayOf(policy.Weekday(now))
	for _, w := range weekly {
		plan, ok := w.Plan(day)
		if !ok || plan.IsRestDay || len(plan.Exercises) == 0 {
			continue
		}
		last, performed := w.LastPerformedDays[day]
		out = append(out, PlannedWorkout{
			RoutineID:   w.ID,
			RoutineName: w.Name,
			Type:        models.RoutineWeekly,
			Exercises:   plan.Exercises,
			Done:        performed && policy.SameDay(last, now),
		})
	}
	return out
}
