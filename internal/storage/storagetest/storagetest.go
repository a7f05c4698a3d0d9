// Package storagetest holds behaviour checks shared by every storage.Provider.
package storagetest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/stride/internal/storage"
)

// Run checks the Provider contract against an initialized store.
func Run(t *testing.T, p storage.Provider) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		if _, err := p.Get("does_not_exist"); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Fatalf("Get() error = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("put overwrites", func(t *testing.T) {
		if err := p.Put("app_todos", `[{"id":"1"}]`); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := p.Put("app_todos", `[]`); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := p.Get("app_todos")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != `[]` {
			t.Errorf("Get() = %q, want %q", got, `[]`)
		}
	})

	t.Run("keys by prefix", func(t *testing.T) {
		for _, k := range []string{"rest_day_2024-03-02", "rest_day_2024-03-01", "restXday_2024", "workout_reset_time"} {
			if err := p.Put(k, "true"); err != nil {
				t.Fatalf("Put(%s) error = %v", k, err)
			}
		}
		keys, err := p.Keys("rest_day_")
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		want := []string{"rest_day_2024-03-01", "rest_day_2024-03-02"}
		if !reflect.DeepEqual(keys, want) {
			t.Errorf("Keys() = %v, want %v", keys, want)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := p.Delete("rest_day_2024-03-01"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := p.Get("rest_day_2024-03-01"); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Errorf("deleted key still readable: %v", err)
		}
		if err := p.Delete("never_stored"); err != nil {
			t.Errorf("Delete() of missing key error = %v", err)
		}
	})
}
