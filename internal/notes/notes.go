// Package notes keeps markdown notes grouped into collections.
package notes

import (
	"sort"
	"strings"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/models"
	"github.com/julianstephens/stride/internal/rollover"
	"github.com/julianstephens/stride/internal/storage"
)

// DefaultTitle is given to notes created without one.
const DefaultTitle = "Untitled Note"

type Repository struct {
	store storage.Provider
	clock rollover.Clock
}

func NewRepository(store storage.Provider, clock rollover.Clock) *Repository {
	return &Repository{store: store, clock: clock}
}

func (r *Repository) Collections() []models.NoteCollection {
	return storage.LoadList[models.NoteCollection](r.store, constants.KeyNoteCollections)
}

func (r *Repository) Notes() []models.Note {
	return storage.LoadList[models.Note](r.store, constants.KeyNotes)
}

func (r *Repository) AddCollection(name string) (models.NoteCollection, error) {
	c := models.NoteCollection{ID: models.NewID(), Name: strings.TrimSpace(name), CreatedAt: r.clock.Now()}
	if err := c.Validate(); err != nil {
		return models.NoteCollection{}, err
	}
	if err := storage.SaveList(r.store, constants.KeyNoteCollections, append(r.Collections(), c)); err != nil {
		return models.NoteCollection{}, err
	}
	return c, nil
}

// ResolveCollection finds a collection by id or case-insensitive name.
func (r *Repository) ResolveCollection(ref string) (models.NoteCollection, error) {
	for _, c := range r.Collections() {
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return models.NoteCollection{}, errors.NotFound("collection", ref)
}

func (r *Repository) RenameCollection(id, name string) (models.NoteCollection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NoteCollection{}, errors.Validation("collection name is required")
	}
	collections := r.Collections()
	for i := range collections {
		if collections[i].ID == id {
			collections[i].Name = name
			if err := storage.SaveList(r.store, constants.KeyNoteCollections, collections); err != nil {
				return models.NoteCollection{}, err
			}
			return collections[i], nil
		}
	}
	return models.NoteCollection{}, errors.NotFound("collection", id)
}

// DeleteCollection removes the collection and then all of its notes.
func (r *Repository) DeleteCollection(id string) error {
	collections := r.Collections()
	kept := collections[:0]
	for _, c := range collections {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(collections) {
		return errors.NotFound("collection", id)
	}
	if err := storage.SaveList(r.store, constants.KeyNoteCollections, kept); err != nil {
		return err
	}

	notes := r.Notes()
	keptNotes := notes[:0]
	for _, n := range notes {
		if n.CollectionID != id {
			keptNotes = append(keptNotes, n)
		}
	}
	return storage.SaveList(r.store, constants.KeyNotes, keptNotes)
}

// AddNote creates a note in an existing collection.
func (r *Repository) AddNote(collectionID, title, content string) (models.Note, error) {
	if _, err := r.ResolveCollection(collectionID); err != nil {
		return models.Note{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	now := r.clock.Now()
	n := models.Note{
		ID:           models.NewID(),
		CollectionID: collectionID,
		Title:        title,
		Content:      content,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := n.Validate(); err != nil {
		return models.Note{}, err
	}
	if err := storage.SaveList(r.store, constants.KeyNotes, append(r.Notes(), n)); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

func (r *Repository) GetNote(id string) (models.Note, error) {
	for _, n := range r.Notes() {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Note{}, errors.NotFound("note", id)
}

// UpdateNote replaces title and content and bumps UpdatedAt.
func (r *Repository) UpdateNote(id, title, content string) (models.Note, error) {
	notes := r.Notes()
	for i := range notes {
		if notes[i].ID != id {
			continue
		}
		notes[i].Title = title
		notes[i].Content = content
		notes[i].UpdatedAt = r.clock.Now()
		if err := storage.SaveList(r.store, constants.KeyNotes, notes); err != nil {
			return models.Note{}, err
		}
		return notes[i], nil
	}
	return models.Note{}, errors.NotFound("note", id)
}

func (r *Repository) DeleteNote(id string) error {
	notes := r.Notes()
	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return errors.NotFound("note", id)
	}
	return storage.SaveList(r.store, constants.KeyNotes, kept)
}

// InCollection returns a collection's notes, most recently updated first.
func InCollection(notes []models.Note, collectionID string) []models.Note {
	out := []models.Note{}
	for _, n := range notes {
		if n.CollectionID == collectionID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

// Search matches a case-insensitive substring of title or content.
func Search(notes []models.Note, query string) []models.Note {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Note{}
	for _, n := range notes {
		if q == "" || strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}
