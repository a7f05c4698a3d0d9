package models

import "time"

// Habit represents a recurring practice to track
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// HabitEntry represents a single day's record of a habit
type HabitEntry struct {
	HabitID   string `json:"habitId"`
	Date      string `json:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed"`
}

// DefaultHabitColors is the palette new habits cycle through.
var DefaultHabitColors = []string{"#10b981", "#3b82f6", "#f59e0b", "#ef4444", "#8b5cf6", "#ec4899"}
