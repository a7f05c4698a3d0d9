package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/stride/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyEmbeddedSQLiteMigrations(t *testing.T) {
	db := openTestDB(t)
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(db, sub, SQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	latest, _ := runner.LatestVersion()
	if applied != latest {
		t.Errorf("applied %d migrations, want %d", applied, latest)
	}

	current, err := runner.CurrentVersion()
	if err != nil || current != latest {
		t.Errorf("CurrentVersion() = %d, %v; want %d", current, err, latest)
	}

	// second run is a no-op
	again, err := runner.ApplyMigrations(nil)
	if err != nil || again != 0 {
		t.Errorf("second ApplyMigrations() = %d, %v", again, err)
	}

	if _, err := db.Exec("INSERT INTO kv_store (key, value, updated_at) VALUES ('k', 'v', 'now')"); err != nil {
		t.Errorf("kv_store not created: %v", err)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		want    []int
		wantErr bool
	}{
		{
			name: "sorted by version",
			files: fstest.MapFS{
				"002_second.sql": {Data: []byte("SELECT 2")},
				"001_first.sql":  {Data: []byte("SELECT 1")},
				"README.md":      {Data: []byte("ignored")},
			},
			want: []int{1, 2},
		},
		{
			name:    "duplicate version",
			files:   fstest.MapFS{"001_a.sql": {}, "001_b.sql": {}},
			wantErr: true,
		},
		{
			name:    "bad filename",
			files:   fstest.MapFS{"init.sql": {}},
			wantErr: true,
		},
		{
			name:    "version zero",
			files:   fstest.MapFS{"000_zero.sql": {}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, tt.files, SQLite)
			got, err := runner.ReadMigrationFiles()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadMigrationFiles() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d migrations, want %d", len(got), len(tt.want))
			}
			for i, v := range tt.want {
				if got[i].Version != v {
					t.Errorf("migration %d version = %d, want %d", i, got[i].Version, v)
				}
			}
			if got[0].Name != "first" {
				t.Errorf("Name = %q, want first", got[0].Name)
			}
		})
	}
}

func TestNewerSchemaRejected(t *testing.T) {
	db := openTestDB(t)
	files := fstest.MapFS{"001_init.sql": {Data: []byte("CREATE TABLE t (id INTEGER)")}}
	runner := NewRunner(db, files, SQLite)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion() should reject a newer schema")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations() should reject a newer schema")
	}
}

func TestFailedMigrationRollsBack(t *testing.T) {
	db := openTestDB(t)
	files := fstest.MapFS{
		"001_ok.sql":     {Data: []byte("CREATE TABLE ok (id INTEGER)")},
		"002_broken.sql": {Data: []byte("CREATE TABLE nope (")},
	}
	runner := NewRunner(db, files, SQLite)
	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if v, _ := runner.CurrentVersion(); v != 1 {
		t.Errorf("CurrentVersion() = %d, want 1", v)
	}
}
