package services

import (
	"context"
	"errors"
	"testing"

	"panotour/internal/models"
)

func TestSceneGroupService_CreateAndList(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	g, err := f.groups.Create(ctx, f.owner, models.CreateSceneGroupRequest{ProjectID: f.project.ID, Name: "Floor 2"})
	if err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}

	groups, err := f.groups.List(ctx, f.project.ID, f.owner)
	if err != nil {
		t.Fatalf("Failed to list groups: %v", err)
	}
	if len(groups) != 2 || groups[1].ID != g.ID {
		t.Errorf("Expected default group then Floor 2, got %+v", groups)
	}

	bob := createTestUser(t, f.db, "bob")
	if _, err := f.groups.List(ctx, f.project.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound listing another user's groups, got %v", err)
	}
	if _, err := f.groups.Create(ctx, bob, models.CreateSceneGroupRequest{ProjectID: f.project.ID, Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound creating in another user's project, got %v", err)
	}
}

func TestSceneGroupService_Update(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	name := "Ground floor"
	g, err := f.groups.Update(ctx, f.groupID, f.owner, models.UpdateSceneGroupRequest{Name: &name})
	if err != nil {
		t.Fatalf("Failed to update group: %v", err)
	}
	if g.Name != name {
		t.Errorf("Expected %s, got %s", name, g.Name)
	}

	empty := " "
	if _, err := f.groups.Update(ctx, f.groupID, f.owner, models.UpdateSceneGroupRequest{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestSceneGroupService_DeleteCascades(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	keep, err := f.groups.Create(ctx, f.owner, models.CreateSceneGroupRequest{ProjectID: f.project.ID, Name: "Keep"})
	if err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}

	a := f.addScene(t, "a")
	f.addHotspot(t, a.ID, nil)

	f.groupID = keep.ID
	kept := f.addScene(t, "kept")
	f.addHotspot(t, kept.ID, &a.ID)

	if err := f.groups.Delete(ctx, f.project.Groups[0].ID, f.owner); err != nil {
		t.Fatalf("Failed to delete group: %v", err)
	}

	if n := countRows(t, f.db, "scenes"); n != 1 {
		t.Errorf("Expected 1 scene left, got %d", n)
	}
	if n := countRows(t, f.db, "hotspots"); n != 1 {
		t.Errorf("Expected 1 hotspot left, got %d", n)
	}
	if n := countRows(t, f.db, "scene_groups"); n != 1 {
		t.Errorf("Expected 1 group left, got %d", n)
	}
}
