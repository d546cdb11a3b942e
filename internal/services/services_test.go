package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"panotour/internal/database"
	"panotour/internal/models"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test_services.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *database.DB, username string) int64 {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, "argon2id$x$y", time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	id, _ := result.LastInsertId()
	return id
}

// fixture is one user's project with its default group
type fixture struct {
	db       *database.DB
	owner    int64
	project  *models.ProjectTree
	groupID  int64
	projects *ProjectService
	groups   *SceneGroupService
	scenes   *SceneService
	hotspots *HotspotService
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	f := &fixture{
		db:       db,
		owner:    createTestUser(t, db, "alice"),
		projects: NewProjectService(db),
		groups:   NewSceneGroupService(db),
		scenes:   NewSceneService(db),
		hotspots: NewHotspotService(db),
	}

	project, err := f.projects.Create(context.Background(), f.owner, models.CreateProjectRequest{Name: "Villa", Category: "real-estate"})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	f.project = project
	f.groupID = project.Groups[0].ID
	return f
}

func (f *fixture) addScene(t *testing.T, name string) *models.Scene {
	t.Helper()

	sc, err := f.scenes.Create(context.Background(), f.owner, models.CreateSceneRequest{
		GroupID:  f.groupID,
		Name:     name,
		ImageURL: "/static/uploads/" + name + ".jpg",
	})
	if err != nil {
		t.Fatalf("Failed to create scene %s: %v", name, err)
	}
	return sc
}

func (f *fixture) addHotspot(t *testing.T, source int64, target *int64) *models.Hotspot {
	t.Helper()

	h, err := f.hotspots.Create(context.Background(), f.owner, models.CreateHotspotRequest{
		SourceSceneID: source,
		X:             1,
		Y:             2,
		Z:             3,
		TargetSceneID: target,
	})
	if err != nil {
		t.Fatalf("Failed to create hotspot: %v", err)
	}
	return h
}

func (f *fixture) updatedAt(t *testing.T) time.Time {
	t.Helper()

	p, err := f.projects.Get(context.Background(), f.project.ID, f.owner)
	if err != nil {
		t.Fatalf("Failed to get project: %v", err)
	}
	return p.UpdatedAt
}

func countRows(t *testing.T, db *database.DB, table string) int {
	t.Helper()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// freezeClock pins now() so that timestamp advancement does not rely on wall time
func freezeClock(t *testing.T) {
	t.Helper()

	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return frozen }
	t.Cleanup(func() { now = prev })
}
