package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	strideerrors "github.com/julianstephens/stride/internal/errors"
	"github.com/julianstephens/stride/internal/storage"
	"github.com/julianstephens/stride/internal/storage/storagetest"
)

func setupTestSQLiteStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestStoreContract(t *testing.T) {
	store, _ := setupTestSQLiteStore(t)
	storagetest.Run(t, store)
}

func TestLoadBeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, strideerrors.ErrNotInitialized) {
		t.Fatalf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	store, path := setupTestSQLiteStore(t)
	if err := store.Put("app_habits", `[{"id":"h1","name":"Read"}]`); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("app_habits")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != `[{"id":"h1","name":"Read"}]` {
		t.Errorf("Get() = %q", got)
	}
	if _, err := reopened.Get("app_notes"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Errorf("Get(missing) error = %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store, path := setupTestSQLiteStore(t)
	if err := store.Put("k", "v"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	again := NewStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	defer again.Close()
	if v, err := again.Get("k"); err != nil || v != "v" {
		t.Errorf("data lost on re-init: %q, %v", v, err)
	}
}

func TestSchemaVersionAndMigrate(t *testing.T) {
	store, _ := setupTestSQLiteStore(t)
	var _ storage.Migrator = store

	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if current != latest || latest == 0 {
		t.Errorf("SchemaVersion() = %d, %d; want equal and non-zero", current, latest)
	}

	applied, err := store.Migrate(nil)
	if err != nil || applied != 0 {
		t.Errorf("Migrate() = %d, %v; want nothing to apply", applied, err)
	}
}
