package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"panotour/internal/database"
	"panotour/internal/filestore"
)

func setupPreflightTest(t *testing.T) (*database.DB, *filestore.Store) {
	t.Helper()

	dir := t.TempDir()
	db, err := database.New(filepath.Join(dir, "test_preflight.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	store, err := filestore.New(filepath.Join(dir, "static"))
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	return db, store
}

func TestRunAll_Pass(t *testing.T) {
	db, store := setupPreflightTest(t)

	results := NewChecker(db, store).RunAll()
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if HasFailures(results) {
		for _, r := range results {
			t.Logf("%s: %s (%v)", r.Name, r.Message, r.Error)
		}
		t.Fatal("Expected no failures on a fresh database")
	}
}

func TestCheckDatabaseConnection_Closed(t *testing.T) {
	db, store := setupPreflightTest(t)
	db.Close()

	result := NewChecker(db, store).checkDatabaseConnection()
	if result.Status != "fail" {
		t.Errorf("Expected status 'fail', got '%s'", result.Status)
	}
	if result.Error == nil {
		t.Error("Expected error to be set")
	}
}

func TestCheckDatabaseSchema_MissingTable(t *testing.T) {
	db, store := setupPreflightTest(t)

	if _, err := db.Exec("DROP TABLE hotspots"); err != nil {
		t.Fatalf("Failed to drop table: %v", err)
	}

	result := NewChecker(db, store).checkDatabaseSchema()
	if result.Status != "fail" {
		t.Errorf("Expected status 'fail', got '%s'", result.Status)
	}
	if result.Message != "Required table 'hotspots' not found" {
		t.Errorf("Unexpected message: %s", result.Message)
	}
}

func TestCheckAssetDirectories_Recreates(t *testing.T) {
	db, store := setupPreflightTest(t)

	if err := os.RemoveAll(store.Dir(filestore.DirCustomIcons)); err != nil {
		t.Fatalf("Failed to remove directory: %v", err)
	}

	result := NewChecker(db, store).checkAssetDirectories()
	if result.Status != "pass" {
		t.Fatalf("Expected status 'pass', got '%s': %v", result.Status, result.Error)
	}
	if _, err := os.Stat(store.Dir(filestore.DirCustomIcons)); err != nil {
		t.Errorf("Expected custom icon directory to exist: %v", err)
	}
}

func TestHasFailures(t *testing.T) {
	tests := []struct {
		name    string
		results []CheckResult
		want    bool
	}{
		{"empty", nil, false},
		{"all pass", []CheckResult{{Status: "pass"}, {Status: "pass"}}, false},
		{"warning only", []CheckResult{{Status: "pass"}, {Status: "warning"}}, false},
		{"one fail", []CheckResult{{Status: "pass"}, {Status: "fail"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasFailures(tt.results); got != tt.want {
				t.Errorf("HasFailures() = %v, want %v", got, tt.want)
			}
		})
	}
}
