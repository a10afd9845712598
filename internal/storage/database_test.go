package storage

import (
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "creates database file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "test.db")
			},
			wantErr: false,
		},
		{
			name: "in-memory database",
			path: func(t *testing.T) string {
				return ":memory:"
			},
			wantErr: false,
		},
		{
			name: "invalid path",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing", "nested", "test.db")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path(t))
			if tt.wantErr {
				if err == nil {
					_ = db.Close()
					t.Fatal("New() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := db.Ping(); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// Idempotent: running migrations twice must not fail.
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	for _, table := range []string{"documents", "passages"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q not created: %v", table, err)
		}
	}
}
