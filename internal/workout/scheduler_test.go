package workout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/storage"
)

var policy = rollover.Policy{Hour: 4, Loc: time.UTC}

// Sunday 2024-03-10
func sunday(hour, minute int) time.Time {
	return time.Date(2024, 3, 10, hour, minute, 0, 0, time.UTC)
}

type manualClock struct{ t time.Time }

func (c *manualClock) Now() time.Time { return c.t }

var pushUps = models.RoutineExercise{ExerciseID: "Pushups", Type: models.ExerciseReps, Sets: 3, RepsPerSet: 12, RestBetweenSets: 60}

func weeklyWithSunday(plan models.DailyWorkoutPlan) models.WeeklyRoutine {
	w := models.WeeklyRoutine{ID: "w1", Name: "Split", WeeklyPlan: models.EmptyWeeklyPlan()}
	for i := range w.WeeklyPlan {
		if w.WeeklyPlan[i].Day == models.Sunday {
			w.WeeklyPlan[i] = plan
		}
	}
	return w
}

func TestDoneTodayUsesCalendarDate(t *testing.T) {
	lateLastNight := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	earlyToday := sunday(0, 15)

	r := models.Routine{LastPerformed: &lateLastNight}
	// 02:00 is before the rollover hour but the calendar day has changed
	assert.False(t, DoneToday(r, sunday(2, 0), policy))

	r.LastPerformed = &earlyToday
	assert.True(t, DoneToday(r, sunday(2, 0), policy))

	assert.False(t, DoneToday(models.Routine{}, sunday(12, 0), policy))
}

func TestWeeklySatisfied(t *testing.T) {
	now := sunday(12, 0)
	performedToday := map[models.DayOfWeek]time.Time{models.Sunday: sunday(8, 0)}
	performedLastWeek := map[models.DayOfWeek]time.Time{models.Sunday: now.AddDate(0, 0, -7)}

	tests := []struct {
		name    string
		routine models.WeeklyRoutine
		want    bool
	}{
		{"rest day", weeklyWithSunday(models.DailyWorkoutPlan{Day: models.Sunday, IsRestDay: true}), true},
		{"empty day", weeklyWithSunday(models.DailyWorkoutPlan{Day: models.Sunday}), true},
		{"no plan for today", models.WeeklyRoutine{WeeklyPlan: []models.DailyWorkoutPlan{{Day: models.Monday, Exercises: []models.RoutineExercise{pushUps}}}}, true},
		{"workout not done", weeklyWithSunday(models.DailyWorkoutPlan{Day: models.Sunday, Exercises: []models.RoutineExercise{pushUps}}), false},
		{
			name: "workout done today",
			routine: func() models.WeeklyRoutine {
				w := weeklyWithSunday(models.DailyWorkoutPlan{Day: models.Sunday, Exercises: []models.RoutineExercise{pushUps}})
				w.LastPerformedDays = performedToday
				return w
			}(),
			want: true,
		},
		{
			name: "workout done last week",
			routine: func() models.WeeklyRoutine {
				w := weeklyWithSunday(models.DailyWorkoutPlan{Day: models.Sunday, Exercises: []models.RoutineExercise{pushUps}})
				w.LastPerformedDays = performedLastWeek
				return w
			}(),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeeklySatisfied(tt.routine, now, policy))
		})
	}
}

func TestEvaluate(t *testing.T) {
	now := sunday(12, 0)
	done := sunday(9, 0)
	pending := weeklyWithSunday(models.DailyWorkoutPlan{Day: models.Sunday, Exercises: []models.RoutineExercise{pushUps}})
	rest := weeklyWithSunday(models.DailyWorkoutPlan{Day: models.Sunday, IsRestDay: true})

	tests := []struct {
		name   string
		daily  []models.Routine
		weekly []models.WeeklyRoutine
		manual bool
		want   Status
		banner BannerKind
	}{
		{"nothing", nil, nil, false, Status{}, BannerNoWorkouts},
		{"daily pending", []models.Routine{{ID: "r"}}, nil, false, Status{HasRoutines: true}, BannerDue},
		{"daily done", []models.Routine{{ID: "r", LastPerformed: &done}}, nil, false, Status{HasRoutines: true, WorkoutCompleted: true}, BannerCompleted},
		{"weekly pending", nil, []models.WeeklyRoutine{pending}, false, Status{HasRoutines: true}, BannerDue},
		{"weekly rest", nil, []models.WeeklyRoutine{pending, rest}, false, Status{HasRoutines: true, WorkoutCompleted: true, RestDay: true}, BannerRestDay},
		{"manual rest", []models.Routine{{ID: "r"}}, nil, true, Status{HasRoutines: true, RestDay: true}, BannerRestDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.daily, tt.weekly, tt.manual, now, policy)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.banner, BannerFor(got).Kind)
		})
	}
}

func TestRestDayBannerHasThreeTips(t *testing.T) {
	b := BannerFor(Status{HasRoutines: true, RestDay: true, WorkoutCompleted: true})
	assert.Equal(t, "Rest Day Active", b.Title)
	assert.Len(t, b.Tips, 3)
}

func TestMarkRestDay(t *testing.T) {
	store := storage.NewMemoryStore()
	clock := &manualClock{t: sunday(10, 0)}
	s := NewScheduler(store, policy, clock)
	_, err := s.Routines().AddDaily("Morning", []models.RoutineExercise{pushUps})
	require.NoError(t, err)

	require.NoError(t, s.MarkRestDay())
	v, err := store.Get("rest_day_2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	assert.True(t, s.Refresh().RestDay)

	// the flag is per date
	clock.t = sunday(10, 0).AddDate(0, 0, 1)
	assert.False(t, s.Refresh().RestDay)
}

func TestMarkRestDayBeforeRolloverUsesCalendarDay(t *testing.T) {
	store := storage.NewMemoryStore()
	s := NewScheduler(store, policy, &manualClock{t: sunday(2, 0)})

	require.NoError(t, s.MarkRestDay())
	_, err := store.Get("rest_day_2024-03-10")
	assert.NoError(t, err)
	_, err = store.Get("rest_day_2024-03-09")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestCompleteToday(t *testing.T) {
	store := storage.NewMemoryStore()
	clock := &manualClock{t: sunday(18, 0)}
	s := NewScheduler(store, policy, clock)

	assert.Error(t, s.CompleteToday(), "nothing to complete")

	first, err := s.Routines().AddDaily("First", []models.RoutineExercise{pushUps})
	require.NoError(t, err)
	_, err = s.Routines().AddDaily("Second", []models.RoutineExercise{pushUps})
	require.NoError(t, err)

	assert.Equal(t, BannerDue, BannerFor(s.Refresh()).Kind)
	require.NoError(t, s.CompleteToday())
	assert.Equal(t, BannerCompleted, s.Banner().Kind)

	stored, err := s.Routines().GetDaily(first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastPerformed)
	assert.Equal(t, clock.t, *stored.LastPerformed)

	sessions := s.Routines().Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, first.ID, sessions[0].RoutineID)
	assert.True(t, sessions[0].Completed)

	assert.True(t, s.Refresh().WorkoutCompleted)
}

func TestCheckReset(t *testing.T) {
	store := storage.NewMemoryStore()
	clock := &manualClock{t: sunday(22, 0)}
	s := NewScheduler(store, policy, clock)

	// first run only records the time
	reset, err := s.CheckReset()
	require.NoError(t, err)
	assert.False(t, reset)
	stored, err := store.Get(constants.KeyWorkoutReset)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T22:00:00Z", stored)

	s.status = Status{HasRoutines: true, WorkoutCompleted: true, RestDay: true}

	// before 04:00 the next day nothing happens
	clock.t = time.Date(2024, 3, 11, 3, 59, 0, 0, time.UTC)
	reset, err = s.CheckReset()
	require.NoError(t, err)
	assert.False(t, reset)
	assert.True(t, s.Status().WorkoutCompleted)

	// at 04:00 the flags clear and the timestamp moves to now
	clock.t = time.Date(2024, 3, 11, 4, 0, 0, 0, time.UTC)
	reset, err = s.CheckReset()
	require.NoError(t, err)
	assert.True(t, reset)
	assert.Equal(t, Status{HasRoutines: true}, s.Status())
	stored, _ = store.Get(constants.KeyWorkoutReset)
	assert.Equal(t, "2024-03-11T04:00:00Z", stored)

	// next reset is now 2024-03-12 04:00
	clock.t = time.Date(2024, 3, 11, 23, 0, 0, 0, time.UTC)
	reset, err = s.CheckReset()
	require.NoError(t, err)
	assert.False(t, reset)
}

func TestCheckResetAfterLongAbsence(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put(constants.KeyWorkoutReset, "2024-03-01T12:00:00Z"))
	s := NewScheduler(store, policy, &manualClock{t: sunday(1, 0)})

	reset, err := s.CheckReset()
	require.NoError(t, err)
	assert.True(t, reset)
}

func TestCheckResetRepairsGarbage(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put(constants.KeyWorkoutReset, "yesterday-ish"))
	s := NewScheduler(store, policy, &manualClock{t: sunday(12, 0)})

	reset, err := s.CheckReset()
	require.NoError(t, err)
	assert.False(t, reset)
	stored, _ := store.Get(constants.KeyWorkoutReset)
	assert.Equal(t, "2024-03-10T12:00:00Z", stored)
}

func TestWatchStopsOnCancel(t *testing.T) {
	store := storage.NewMemoryStore()
	s := NewScheduler(store, policy, &manualClock{t: sunday(12, 0)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, 5*time.Millisecond, nil) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	_, err := store.Get(constants.KeyWorkoutReset)
	assert.NoError(t, err, "Watch records the reset time on start")
}
