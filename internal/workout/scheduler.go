package workout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	strideerrors "github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/logger"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/storage"
)

// DoneToday reports whether a daily routine was performed on today's
// calendar date. The rollover hour plays no part here.
func DoneToday(r models.Routine, now time.Time, policy rollover.Policy) bool {
	return r.LastPerformed != nil && policy.SameDay(*r.LastPerformed, now)
}

// WeeklySatisfied reports whether a weekly routine asks nothing more of
// today: no plan for the day, a rest day, an empty day, or the day already
// performed.
func WeeklySatisfied(w models.WeeklyRoutine, now time.Time, policy rollover.Policy) bool {
	day := models.DayOf(policy.Weekday(now))
	plan, ok := w.Plan(day)
	if !ok || plan.IsRestDay || len(plan.Exercises) == 0 {
		return true
	}
	last, ok := w.LastPerformedDays[day]
	return ok && policy.SameDay(last, now)
}

// PlannedRestDay reports whether any weekly routine schedules rest today.
func PlannedRestDay(weekly []models.WeeklyRoutine, now time.Time, policy rollover.Policy) bool {
	day := models.DayOf(policy.Weekday(now))
	for _, w := range weekly {
		if plan, ok := w.Plan(day); ok && plan.IsRestDay {
			return true
		}
	}
	return false
}

// Status is what the workout banner knows about today.
type Status struct {
	HasRoutines      bool
	WorkoutCompleted bool
	RestDay          bool
}

// Evaluate computes today's status. manualRest is the user's rest-day flag.
func Evaluate(daily []models.Routine, weekly []models.WeeklyRoutine, manualRest bool, now time.Time, policy rollover.Policy) Status {
	s := Status{HasRoutines: len(daily) > 0 || len(weekly) > 0}
	for _, r := range daily {
		if DoneToday(r, now, policy) {
			s.WorkoutCompleted = true
			break
		}
	}
	if !s.WorkoutCompleted {
		for _, w := range weekly {
			if WeeklySatisfied(w, now, policy) {
				s.WorkoutCompleted = true
				break
			}
		}
	}
	s.RestDay = manualRest || PlannedRestDay(weekly, now, policy)
	return s
}

type BannerKind string

const (
	BannerNoWorkouts BannerKind = "no-workouts"
	BannerRestDay    BannerKind = "rest-day"
	BannerCompleted  BannerKind = "completed"
	BannerDue        BannerKind = "due"
)

// Tip is an active-recovery suggestion shown on rest days.
type Tip struct {
	Title       string
	Description string
}

var RestDayTips = []Tip{
	{"Walking", "A light 30-minute walk aids recovery and cardiovascular health"},
	{"Stretching", "Improve flexibility and reduce muscle tension with gentle stretches"},
	{"Yoga", "Low-impact practices promote relaxation and mobility"},
	{"Swimming", "Easy on joints while keeping your body active"},
	{"Meditation", "Mental recovery is as important as physical recovery"},
	{"Light Cycling", "Gentle cycling on flat terrain enhances recovery"},
}

type Banner struct {
	Kind    BannerKind
	Title   string
	Message string
	Tips    []Tip
}

// BannerFor renders a status. Rest day wins over completed.
func BannerFor(s Status) Banner {
	switch {
	case !s.HasRoutines:
		return Banner{
			Kind:    BannerNoWorkouts,
			Title:   "No workouts yet",
			Message: "Start building a stronger you by creating your first workout routine.",
		}
	case s.RestDay:
		return Banner{
			Kind:    BannerRestDay,
			Title:   "Rest Day Active",
			Message: "Great choice! Active recovery is important for long-term progress.",
			Tips:    RestDayTips[:3],
		}
	case s.WorkoutCompleted:
		return Banner{
			Kind:    BannerCompleted,
			Title:   "Workout Completed!",
			Message: "Amazing effort today! Keep up the great work!",
		}
	default:
		return Banner{
			Kind:    BannerDue,
			Title:   "Time to work out",
			Message: "Complete at least one workout routine to stay on track with your fitness goals.",
		}
	}
}

// Scheduler holds today's banner state and the reset timer that clears it
// once a day at the rollover hour.
type Scheduler struct {
	store    storage.Provider
	routines *Routines
	policy   rollover.Policy
	clock    rollover.Clock

	mu     sync.Mutex
	status Status
}

func NewScheduler(store storage.Provider, policy rollover.Policy, clock rollover.Clock) *Scheduler {
	return &Scheduler{
		store:    store,
		routines: NewRoutines(store, clock),
		policy:   policy,
		clock:    clock,
	}
}

// Routines exposes the routine collections the scheduler reads.
func (s *Scheduler) Routines() *Routines {
	return s.routines
}

// Refresh recomputes the status from storage.
func (s *Scheduler) Refresh() Status {
	now := s.clock.Now()
	st := Evaluate(s.routines.Daily(), s.routines.Weekly(), s.manualRestDay(now), now, s.policy)
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
	return st
}

// Status returns the last computed status without touching storage.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scheduler) Banner() Banner {
	return BannerFor(s.Status())
}

func (s *Scheduler) manualRestDay(now time.Time) bool {
	v, err := s.store.Get(constants.RestDayKey(s.policy.Today(now)))
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		logger.Component("workout").Warn("failed to read rest day flag", "error", err)
	}
	return v == "true"
}

// MarkRestDay sets today's manual rest-day flag.
func (s *Scheduler) MarkRestDay() error {
	now := s.clock.Now()
	if err := s.store.Put(constants.RestDayKey(s.policy.Today(now)), "true"); err != nil {
		return fmt.Errorf("failed to mark rest day: %w", err)
	}
	s.mu.Lock()
	s.status.RestDay = true
	s.mu.Unlock()
	return nil
}

// CompleteToday marks the first daily routine as performed. Without daily
// routines it completes today's day of the first weekly routine that has
// work scheduled.
func (s *Scheduler) CompleteToday() error {
	now := s.clock.Now()
	if daily := s.routines.Daily(); len(daily) > 0 {
		if _, err := s.routines.CompleteDaily(daily[0].ID, now); err != nil {
			return err
		}
		s.markCompleted()
		return nil
	}
	day := models.DayOf(s.policy.Weekday(now))
	for _, w := range s.routines.Weekly() {
		if plan, ok := w.Plan(day); ok && !plan.IsRestDay && len(plan.Exercises) > 0 {
			if _, err := s.routines.CompleteWeeklyDay(w.ID, day, now); err != nil {
				return err
			}
			s.markCompleted()
			return nil
		}
	}
	return strideerrors.Validation("no routine has a workout scheduled today")
}

func (s *Scheduler) markCompleted() {
	s.mu.Lock()
	s.status.WorkoutCompleted = true
	s.mu.Unlock()
}

// CheckReset runs one tick of the reset timer. The first call ever only
// records the current time. Later calls clear the completed and rest-day
// flags once the clock passes the rollover hour of the day after the last
// reset, and record the current time as the new last reset.
func (s *Scheduler) CheckReset() (bool, error) {
	now := s.clock.Now()
	raw, err := s.store.Get(constants.KeyWorkoutReset)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, s.recordReset(now)
	}
	if err != nil {
		return false, fmt.Errorf("failed to read reset time: %w", err)
	}

	last, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		logger.Component("workout").Warn("replacing unreadable reset time", "value", raw)
		return false, s.recordReset(now)
	}
	if now.Before(s.policy.NextReset(last)) {
		return false, nil
	}

	s.mu.Lock()
	s.status.WorkoutCompleted = false
	s.status.RestDay = false
	s.mu.Unlock()
	logger.Component("workout").Debug("workout flags reset", "last", raw)
	return true, s.recordReset(now)
}

func (s *Scheduler) recordReset(now time.Time) error {
	if err := s.store.Put(constants.KeyWorkoutReset, now.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to record reset time: %w", err)
	}
	return nil
}

// Watch checks the reset timer every interval until ctx is done. onReset,
// if set, runs after each reset.
func (s *Scheduler) Watch(ctx context.Context, interval time.Duration, onReset func()) error {
	if interval <= 0 {
		interval = constants.DefaultResetPollInterval
	}
	if _, err := s.CheckReset(); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			reset, err := s.CheckReset()
			if err != nil {
				logger.Component("workout").Error("reset check failed", "error", err)
				continue
			}
			if reset && onReset != nil {
				onReset()
			}
		}
	}
}
