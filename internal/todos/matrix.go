package todos

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/logger"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
)

// Quadrant is a cell of the Eisenhower matrix.
type Quadrant string

const (
	UrgentImportant       Quadrant = "urgent-important"
	UrgentNotImportant    Quadrant = "urgent-not-important"
	NotUrgentImportant    Quadrant = "not-urgent-important"
	NotUrgentNotImportant Quadrant = "not-urgent-not-important"
)

// Quadrants lists the matrix cells in display order.
var Quadrants = []Quadrant{UrgentImportant, UrgentNotImportant, NotUrgentImportant, NotUrgentNotImportant}

func (q Quadrant) Title() string {
	switch q {
	case UrgentImportant:
		return "Urgent & Important"
	case UrgentNotImportant:
		return "Urgent, Not Important"
	case NotUrgentImportant:
		return "Not Urgent, Important"
	case NotUrgentNotImportant:
		return "Not Urgent, Not Important"
	}
	return string(q)
}

// Action is the short instruction shown under each quadrant.
func (q Quadrant) Action() string {
	switch q {
	case UrgentImportant:
		return "Do First"
	case UrgentNotImportant:
		return "Schedule"
	case NotUrgentImportant:
		return "Plan"
	case NotUrgentNotImportant:
		return "Eliminate"
	}
	return ""
}

// ParseQuadrant accepts a quadrant id or its 1-based index.
func ParseQuadrant(s string) (Quadrant, error) {
	for i, q := range Quadrants {
		if s == string(q) || s == fmt.Sprint(i+1) {
			return q, nil
		}
	}
	return "", fmt.Errorf("unknown quadrant %q", s)
}

// Classifier places todos in the matrix. Due dates without a time are read
// as midnight in the policy's location.
type Classifier struct {
	Policy rollover.Policy
}

// IsUrgent reports whether the todo is due within two days. The day count is
// the ceiling of the exact delta, so overdue todos are always urgent.
func (c Classifier) IsUrgent(t models.Todo, now time.Time) bool {
	if t.DueDate == "" {
		return false
	}
	due, err := c.Policy.ParseDate(t.DueDate)
	if err != nil {
		logger.Debug("ignoring unparseable due date", "todo", t.ID, "due", t.DueDate)
		return false
	}
	const dayMs = 24 * 60 * 60 * 1000
	days := math.Ceil(float64(due.Sub(now).Milliseconds()) / dayMs)
	return days <= constants.UrgentWithinDays
}

// IsImportant reports whether the todo has high or medium priority.
func IsImportant(t models.Todo) bool {
	return t.Priority == models.PriorityHigh || t.Priority == models.PriorityMedium
}

func (c Classifier) Classify(t models.Todo, now time.Time) Quadrant {
	urgent, important := c.IsUrgent(t, now), IsImportant(t)
	switch {
	case urgent && important:
		return UrgentImportant
	case urgent:
		return UrgentNotImportant
	case important:
		return NotUrgentImportant
	default:
		return NotUrgentNotImportant
	}
}

// ForQuadrant returns the incomplete todos that classify into q.
func (c Classifier) ForQuadrant(todos []models.Todo, q Quadrant, now time.Time) []models.Todo {
	out := []models.Todo{}
	for _, t := range todos {
		if !t.Completed && c.Classify(t, now) == q {
			out = append(out, t)
		}
	}
	return out
}

// Matrix groups incomplete todos by quadrant.
func (c Classifier) Matrix(todos []models.Todo, now time.Time) map[Quadrant][]models.Todo {
	m := make(map[Quadrant][]models.Todo, len(Quadrants))
	for _, q := range Quadrants {
		m[q] = c.ForQuadrant(todos, q, now)
	}
	return m
}

// MoveToQuadrant rewrites priority and due date so the todo lands in target.
// It returns false, and the todo unchanged, when it is already there.
func (c Classifier) MoveToQuadrant(t models.Todo, target Quadrant, now time.Time) (models.Todo, bool) {
	if c.Classify(t, now) == target {
		return t, false
	}
	tomorrow := c.Policy.AddDays(now, 1)
	switch target {
	case UrgentImportant:
		t.Priority = models.PriorityHigh
		if t.DueDate == "" {
			t.DueDate = tomorrow
		}
	case UrgentNotImportant:
		t.Priority = models.PriorityLow
		if t.DueDate == "" {
			t.DueDate = tomorrow
		}
	case NotUrgentImportant:
		t.Priority = models.PriorityHigh
		t.DueDate = c.Policy.AddDays(now, 7)
	case NotUrgentNotImportant:
		t.Priority = models.PriorityLow
		t.DueDate = ""
	default:
		return t, false
	}
	return t, true
}

// Sort orders incomplete todos first, then by priority, high to low.
// Ties keep their existing order.
func Sort(todos []models.Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		a, b := todos[i], todos[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		return a.Priority.Rank() < b.Priority.Rank()
	})
}
