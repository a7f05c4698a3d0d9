// Package catalog loads the read-only exercise catalog that routines
// reference by id.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/julianstephens/stride/internal/logger"
	"github.com/julianstephens/stride/internal/models"
)

//go:embed exercises.json
var builtin []byte

// Builtin is the source name for the catalog shipped inside the binary.
const Builtin = "builtin"

const fetchTimeout = 15 * time.Second

// Catalog is an immutable, indexed set of exercises. The zero value is an
// empty catalog.
type Catalog struct {
	exercises []models.Exercise
	byID      map[string]int
}

// New indexes exercises. Later duplicates of an id are ignored.
func New(exercises []models.Exercise) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(exercises))}
	for _, e := range exercises {
		if _, dup := c.byID[e.ID]; dup || e.ID == "" {
			continue
		}
		c.byID[e.ID] = len(c.exercises)
		c.exercises = append(c.exercises, e)
	}
	return c
}

// Load reads the catalog from source: an http(s) URL, a file path, or
// Builtin (also used when source is empty). A source that cannot be read is
// logged and produces an empty catalog so routines still open.
func Load(ctx context.Context, source string, client *http.Client) *Catalog {
	log := logger.Component("catalog")
	data, err := read(ctx, source, client)
	if err != nil {
		log.Error("failed to load exercise catalog", "source", source, "error", err)
		return New(nil)
	}
	exercises, err := Parse(data)
	if err != nil {
		log.Error("failed to parse exercise catalog", "source", source, "error", err)
		return New(nil)
	}
	log.Debug("exercise catalog loaded", "source", source, "count", len(exercises))
	return New(exercises)
}

// Parse decodes a JSON array of exercises.
func Parse(data []byte) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := json.Unmarshal(data, &exercises); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return exercises, nil
}

func read(ctx context.Context, source string, client *http.Client) ([]byte, error) {
	switch {
	case source == "" || source == Builtin:
		return builtin, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return fetch(ctx, source, client)
	default:
		return os.ReadFile(source)
	}
}

func fetch(ctx context.Context, url string, client *http.Client) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *Catalog) Len() int {
	return len(c.exercises)
}

// All returns the exercises in catalog order.
func (c *Catalog) All() []models.Exercise {
	return append([]models.Exercise(nil), c.exercises...)
}

func (c *Catalog) Get(id string) (models.Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Exercise{}, false
	}
	return c.exercises[i], true
}

// Name returns the exercise name for id, or id itself when the catalog does
// not know it.
func (c *Catalog) Name(id string) string {
	if e, ok := c.Get(id); ok {
		return e.Name
	}
	return id
}

// ImagePath is the served path of an exercise's idx-th image.
func ImagePath(id string, idx int) string {
	return fmt.Sprintf("/exercises/%s/%d.jpg", id, idx)
}

// Search matches a case-insensitive substring of the name, any primary
// muscle or the equipment.
func (c *Catalog) Search(query string) []models.Exercise {
	q := strings.ToLower(query)
	out := []models.Exercise{}
	for _, e := range c.exercises {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Equipment), q) ||
			anyContains(e.PrimaryMuscles, q) {
			out = append(out, e)
		}
	}
	return out
}

// ByMuscle returns exercises whose primary or secondary muscles include
// muscle exactly, ignoring case.
func (c *Catalog) ByMuscle(muscle string) []models.Exercise {
	out := []models.Exercise{}
	for _, e := range c.exercises {
		if anyEqualFold(e.PrimaryMuscles, muscle) || anyEqualFold(e.SecondaryMuscles, muscle) {
			out = append(out, e)
		}
	}
	return out
}

// Suggest ranks exercise names by fuzzy similarity to query, best first.
func (c *Catalog) Suggest(query string, limit int) []models.Exercise {
	names := make([]string, len(c.exercises))
	for i, e := range c.exercises {
		names[i] = e.Name
	}
	matches := fuzzy.Find(query, names)
	out := []models.Exercise{}
	for _, m := range matches {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, c.exercises[m.Index])
	}
	return out
}

func anyContains(values []string, q string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func anyEqualFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
