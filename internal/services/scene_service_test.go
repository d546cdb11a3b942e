package services

import (
	"context"
	"errors"
	"testing"

	"panotour/internal/models"
)

func TestSceneService_CreateDefaultsAndOrder(t *testing.T) {
	f := setupFixture(t)

	first := f.addScene(t, "hall")
	second := f.addScene(t, "kitchen")

	if first.SortOrder != 0 || second.SortOrder != 1 {
		t.Errorf("Expected sort orders 0 and 1, got %d and %d", first.SortOrder, second.SortOrder)
	}
	if first.ViewParams != models.DefaultViewParams() {
		t.Errorf("Expected default view params, got %+v", first.ViewParams)
	}
}

func TestSceneService_CreateCustomView(t *testing.T) {
	f := setupFixture(t)

	heading, fov := 90.0, 60.0
	sc, err := f.scenes.Create(context.Background(), f.owner, models.CreateSceneRequest{
		GroupID:        f.groupID,
		Name:           "terrace",
		ImageURL:       "/static/uploads/terrace.jpg",
		InitialHeading: &heading,
		FovDefault:     &fov,
	})
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	got, err := f.scenes.Get(context.Background(), sc.ID, f.owner)
	if err != nil {
		t.Fatalf("Failed to get scene: %v", err)
	}
	if got.InitialHeading != 90 || got.FovDefault != 60 || got.FovMax != models.DefaultFovMax {
		t.Errorf("Unexpected view params: %+v", got.ViewParams)
	}
}

func TestSceneService_CreateInForeignGroup(t *testing.T) {
	f := setupFixture(t)
	bob := createTestUser(t, f.db, "bob")

	_, err := f.scenes.Create(context.Background(), bob, models.CreateSceneRequest{
		GroupID:  f.groupID,
		Name:     "intruder",
		ImageURL: "/static/uploads/x.jpg",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user's group, got %v", err)
	}
}

func TestSceneService_UpdateTouchesProject(t *testing.T) {
	freezeClock(t)
	f := setupFixture(t)
	ctx := context.Background()

	sc := f.addScene(t, "hall")
	before := f.updatedAt(t)

	pitch := -10.0
	updated, err := f.scenes.Update(ctx, sc.ID, f.owner, models.UpdateSceneRequest{InitialPitch: &pitch})
	if err != nil {
		t.Fatalf("Failed to update scene: %v", err)
	}
	if updated.InitialPitch != -10 || updated.Name != "hall" || updated.FovMin != models.DefaultFovMin {
		t.Errorf("Unexpected scene after partial update: %+v", updated)
	}

	after := f.updatedAt(t)
	if !after.After(before) {
		t.Errorf("Expected updated_at to strictly increase: before %v, after %v", before, after)
	}
}

func TestSceneService_UpdateCoverAndMove(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	other, err := f.groups.Create(ctx, f.owner, models.CreateSceneGroupRequest{ProjectID: f.project.ID, Name: "Garden"})
	if err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}
	sc := f.addScene(t, "hall")

	updated, err := f.scenes.Update(ctx, sc.ID, f.owner, models.UpdateSceneRequest{
		CoverURL: models.Some("/static/uploads/thumb.jpg"),
		GroupID:  &other.ID,
	})
	if err != nil {
		t.Fatalf("Failed to update scene: %v", err)
	}
	if updated.GroupID != other.ID || updated.CoverURL == nil {
		t.Errorf("Expected move with cover, got %+v", updated)
	}

	bob := createTestUser(t, f.db, "bob")
	bobsProject, err := f.projects.Create(ctx, bob, models.CreateProjectRequest{Name: "Bob's"})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	_, err = f.scenes.Update(ctx, sc.ID, f.owner, models.UpdateSceneRequest{GroupID: &bobsProject.Groups[0].ID})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound moving into another user's group, got %v", err)
	}

	name := "stolen"
	if _, err := f.scenes.Update(ctx, sc.ID, bob, models.UpdateSceneRequest{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound updating as bob, got %v", err)
	}
}

func TestSceneService_DeleteKeepsDanglingTargets(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	a := f.addScene(t, "a")
	b := f.addScene(t, "b")
	f.addHotspot(t, b.ID, nil)
	toB := f.addHotspot(t, a.ID, &b.ID)
	before := f.updatedAt(t)

	if err := f.scenes.Delete(ctx, b.ID, f.owner); err != nil {
		t.Fatalf("Failed to delete scene: %v", err)
	}

	hotspots, err := f.hotspots.List(ctx, a.ID, f.owner)
	if err != nil {
		t.Fatalf("Failed to list hotspots: %v", err)
	}
	if len(hotspots) != 1 || hotspots[0].ID != toB.ID {
		t.Fatalf("Expected hotspot on a to survive, got %+v", hotspots)
	}
	if hotspots[0].TargetSceneID == nil || *hotspots[0].TargetSceneID != b.ID {
		t.Errorf("Expected dangling target %d to be kept", b.ID)
	}
	if n := countRows(t, f.db, "hotspots"); n != 1 {
		t.Errorf("Expected hotspots owned by b to be deleted, %d rows remain", n)
	}
	if !f.updatedAt(t).After(before) {
		t.Error("Expected scene delete to advance project updated_at")
	}

	if _, err := f.scenes.Get(ctx, b.ID, f.owner); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for deleted scene, got %v", err)
	}
}

func TestSceneService_Reorder(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	s1 := f.addScene(t, "one")
	s2 := f.addScene(t, "two")
	s3 := f.addScene(t, "three")
	s4 := f.addScene(t, "four") // sort_order 3, left out of the reorder

	other, err := f.groups.Create(ctx, f.owner, models.CreateSceneGroupRequest{ProjectID: f.project.ID, Name: "Other"})
	if err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}
	foreign, err := f.scenes.Create(ctx, f.owner, models.CreateSceneRequest{GroupID: other.ID, Name: "x", ImageURL: "/x.jpg"})
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	scenes, err := f.scenes.Reorder(ctx, f.owner, f.groupID, []int64{s3.ID, s1.ID, s2.ID, foreign.ID})
	if err != nil {
		t.Fatalf("Failed to reorder: %v", err)
	}

	orders := make(map[int64]int)
	for _, sc := range scenes {
		orders[sc.ID] = sc.SortOrder
	}
	want := map[int64]int{s3.ID: 0, s1.ID: 1, s2.ID: 2, s4.ID: 3}
	for id, order := range want {
		if orders[id] != order {
			t.Errorf("Scene %d: expected sort_order %d, got %d", id, order, orders[id])
		}
	}
	if _, ok := orders[foreign.ID]; ok {
		t.Error("Scene from another group returned by reorder")
	}

	moved, err := f.scenes.Get(ctx, foreign.ID, f.owner)
	if err != nil {
		t.Fatalf("Failed to get scene: %v", err)
	}
	if moved.SortOrder != 0 || moved.GroupID != other.ID {
		t.Errorf("Scene from another group was modified: %+v", moved.Scene)
	}

	if scenes[0].ID != s3.ID {
		t.Errorf("Expected %d first, got %d", s3.ID, scenes[0].ID)
	}
}

func TestSceneService_ReorderForeignGroup(t *testing.T) {
	f := setupFixture(t)
	bob := createTestUser(t, f.db, "bob")

	_, err := f.scenes.Reorder(context.Background(), bob, f.groupID, []int64{1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
