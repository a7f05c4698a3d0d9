package todos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/storage"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(storage.NewMemoryStore(), utcPolicy, rollover.FixedClock{T: now})
}

func TestAddTrimsAndValidates(t *testing.T) {
	repo := newTestRepository(t)

	todo, err := repo.Add(Input{Title: "  File taxes ", Category: " admin ", Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, "File taxes", todo.Title)
	assert.Equal(t, "admin", todo.Category)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
	assert.Equal(t, now, todo.CreatedAt)
	assert.NotEmpty(t, todo.ID)

	_, err = repo.Add(Input{Title: "   ", Category: "admin"})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = repo.Add(Input{Title: "x", Category: ""})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = repo.Add(Input{Title: "x", Category: "y", DueDate: "soon"})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	assert.Len(t, repo.List(), 1)
}

func TestAddDefaultsToMediumPriority(t *testing.T) {
	repo := newTestRepository(t)
	todo, err := repo.Add(Input{Title: "Call mom", Category: "family"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
}

func TestToggleMaintainsCompletedAt(t *testing.T) {
	repo := newTestRepository(t)
	todo, err := repo.Add(Input{Title: "Run", Category: "health"})
	require.NoError(t, err)

	done, err := repo.Toggle(todo.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)

	undone, err := repo.Toggle(todo.ID)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
	assert.Nil(t, undone.CompletedAt)

	_, err = repo.Toggle("missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestMovePersists(t *testing.T) {
	repo := newTestRepository(t)
	todo, err := repo.Add(Input{Title: "Plan trip", Category: "life", Priority: models.PriorityLow})
	require.NoError(t, err)

	moved, ok, err := repo.Move(todo.ID, UrgentImportant)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-11", moved.DueDate)

	stored, err := repo.Get(todo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, stored.Priority)

	_, ok, err = repo.Move(todo.ID, UrgentImportant)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEditAndDelete(t *testing.T) {
	repo := newTestRepository(t)
	todo, err := repo.Add(Input{Title: "Draft", Category: "work"})
	require.NoError(t, err)

	edited, err := repo.Edit(todo.ID, Input{Title: "Final", Category: "work", Priority: models.PriorityHigh, DueDate: "2024-03-20"})
	require.NoError(t, err)
	assert.Equal(t, "Final", edited.Title)
	assert.Equal(t, "2024-03-20", edited.DueDate)

	_, err = repo.Edit(todo.ID, Input{Title: "", Category: "work"})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	require.NoError(t, repo.Delete(todo.ID))
	assert.Empty(t, repo.List())
	assert.True(t, errors.Is(repo.Delete(todo.ID), errors.ErrNotFound))
}

func TestFilters(t *testing.T) {
	todos := []models.Todo{
		{ID: "1", Category: "work", Priority: models.PriorityHigh},
		{ID: "2", Category: "home", Priority: models.PriorityLow, Completed: true},
		{ID: "3", Category: "work", Priority: models.PriorityLow},
	}

	assert.Len(t, Filter{Category: "all", Priority: "all"}.Apply(todos), 3)
	assert.Len(t, Filter{Category: "work"}.Apply(todos), 2)
	assert.Len(t, Filter{Priority: "low"}.Apply(todos), 2)
	assert.Len(t, Filter{Status: StatusActive}.Apply(todos), 2)

	done := Filter{Status: StatusCompleted}.Apply(todos)
	require.Len(t, done, 1)
	assert.Equal(t, "2", done[0].ID)

	assert.Equal(t, []string{"work", "home"}, Categories(todos))
	assert.Equal(t, Stats{Total: 3, Active: 2, Completed: 1}, Summarize(todos))
}

func TestCompletedOn(t *testing.T) {
	yesterday := now.Add(-24 * time.Hour)
	todos := []models.Todo{
		{Completed: true, CompletedAt: &now},
		{Completed: true, CompletedAt: &yesterday},
		{Completed: false},
	}
	assert.Equal(t, 1, CompletedOn(todos, utcPolicy, now))
}
