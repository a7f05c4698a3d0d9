package constants

// Storage keys. Each collection lives under its own key and is overwritten whole on save.
const (
	KeyRoutines        = "workout_routines"
	KeyWeeklyRoutines  = "weekly_routines"
	KeySessions        = "workout_sessions"
	KeyTodos           = "app_todos"
	KeyHabits          = "app_habits"
	KeyHabitEntries    = "app_habit_entries"
	KeyNoteCollections = "app_note_collections"
	KeyNotes           = "app_notes"
	KeyWorkoutReset    = "workout_reset_time"

	// RestDayKeyPrefix is followed by a YYYY-MM-DD date; the value is "true" when set.
	RestDayKeyPrefix = "rest_day_"
)

// RestDayKey returns the storage key of the manual rest-day flag for date.
func RestDayKey(date string) string {
	return RestDayKeyPrefix + date
}
