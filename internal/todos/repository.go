// Package todos manages the todo list and its Eisenhower-matrix view.
package todos

import (
	"strings"
	"time"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/storage"
)

// Status filters todos by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Filter narrows a todo list. Empty fields and "all" match everything.
type Filter struct {
	Category string
	Priority string
	Status   Status
}

func (f Filter) Match(t models.Todo) bool {
	if f.Category != "" && f.Category != "all" && t.Category != f.Category {
		return false
	}
	if f.Priority != "" && f.Priority != "all" && string(t.Priority) != f.Priority {
		return false
	}
	switch f.Status {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	}
	return true
}

// Apply returns the todos matching f in their original order.
func (f Filter) Apply(todos []models.Todo) []models.Todo {
	out := []models.Todo{}
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Input carries the user-editable fields of a todo.
type Input struct {
	Title       string
	Description string
	Category    string
	Priority    models.Priority
	DueDate     string
}

type Stats struct {
	Total     int
	Active    int
	Completed int
}

// Repository reads and writes the todo collection.
type Repository struct {
	store      storage.Provider
	clock      rollover.Clock
	Classifier Classifier
}

func NewRepository(store storage.Provider, policy rollover.Policy, clock rollover.Clock) *Repository {
	return &Repository{store: store, clock: clock, Classifier: Classifier{Policy: policy}}
}

func (r *Repository) List() []models.Todo {
	return storage.LoadList[models.Todo](r.store, constants.KeyTodos)
}

func (r *Repository) save(todos []models.Todo) error {
	return storage.SaveList(r.store, constants.KeyTodos, todos)
}

func (r *Repository) Get(id string) (models.Todo, error) {
	for _, t := range r.List() {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Todo{}, errors.NotFound("todo", id)
}

func (r *Repository) normalize(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.DueDate = strings.TrimSpace(in.DueDate)
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if in.DueDate != "" {
		if _, err := r.Classifier.Policy.ParseDate(in.DueDate); err != nil {
			return in, errors.Validation("%v", err)
		}
	}
	return in, nil
}

// Add validates the input and appends a new incomplete todo.
func (r *Repository) Add(in Input) (models.Todo, error) {
	in, err := r.normalize(in)
	if err != nil {
		return models.Todo{}, err
	}
	todo := models.Todo{
		ID:          models.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   r.clock.Now(),
	}
	if err := todo.Validate(); err != nil {
		return models.Todo{}, err
	}
	if err := r.save(append(r.List(), todo)); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

// Edit replaces the editable fields of an existing todo.
func (r *Repository) Edit(id string, in Input) (models.Todo, error) {
	in, err := r.normalize(in)
	if err != nil {
		return models.Todo{}, err
	}
	return r.update(id, func(t *models.Todo) error {
		t.Title = in.Title
		t.Description = in.Description
		t.Category = in.Category
		t.Priority = in.Priority
		t.DueDate = in.DueDate
		return t.Validate()
	})
}

func (r *Repository) update(id string, fn func(*models.Todo) error) (models.Todo, error) {
	todos := r.List()
	for i := range todos {
		if todos[i].ID != id {
			continue
		}
		if err := fn(&todos[i]); err != nil {
			return models.Todo{}, err
		}
		if err := r.save(todos); err != nil {
			return models.Todo{}, err
		}
		return todos[i], nil
	}
	return models.Todo{}, errors.NotFound("todo", id)
}

// Toggle flips completion, stamping or clearing CompletedAt.
func (r *Repository) Toggle(id string) (models.Todo, error) {
	return r.update(id, func(t *models.Todo) error {
		t.SetCompleted(!t.Completed, r.clock.Now())
		return nil
	})
}

// Move applies a quadrant move and persists it. moved is false for a no-op.
func (r *Repository) Move(id string, target Quadrant) (todo models.Todo, moved bool, err error) {
	now := r.clock.Now()
	todo, err = r.update(id, func(t *models.Todo) error {
		*t, moved = r.Classifier.MoveToQuadrant(*t, target, now)
		return nil
	})
	return todo, moved, err
}

func (r *Repository) Delete(id string) error {
	todos := r.List()
	kept := todos[:0]
	for _, t := range todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(todos) {
		return errors.NotFound("todo", id)
	}
	return r.save(kept)
}

// Categories returns the distinct categories in first-seen order.
func Categories(todos []models.Todo) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range todos {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

func Summarize(todos []models.Todo) Stats {
	s := Stats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			s.Completed++
		} else {
			s.Active++
		}
	}
	return s
}

// CompletedOn counts todos whose completion falls on the given calendar day.
func CompletedOn(todos []models.Todo, policy rollover.Policy, day time.Time) int {
	n := 0
	for _, t := range todos {
		if t.Completed && t.CompletedAt != nil && policy.SameDay(*t.CompletedAt, day) {
			n++
		}
	}
	return n
}
