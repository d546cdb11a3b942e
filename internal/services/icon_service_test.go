package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"panotour/internal/filestore"
	"panotour/internal/models"
)

func setupIconService(t *testing.T) (*IconService, *filestore.Store, int64, int64) {
	t.Helper()

	db := setupTestDB(t)
	store, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	return NewIconService(db, store), store, alice, bob
}

func writeSystemIcon(t *testing.T, store *filestore.Store, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(store.Dir(filestore.DirSystemIcons), name), []byte("png"), 0644); err != nil {
		t.Fatalf("Failed to write icon: %v", err)
	}
}

func TestIconService_SyncSystemIcons(t *testing.T) {
	svc, store, alice, _ := setupIconService(t)
	ctx := context.Background()

	writeSystemIcon(t, store, "arrow.png")
	writeSystemIcon(t, store, "info.png")

	inserted, deleted, err := svc.SyncSystemIcons(ctx)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if inserted != 2 || deleted != 0 {
		t.Errorf("Expected 2 inserted, 0 deleted; got %d, %d", inserted, deleted)
	}

	// Second run is a no-op
	inserted, deleted, err = svc.SyncSystemIcons(ctx)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if inserted != 0 || deleted != 0 {
		t.Errorf("Expected no changes, got %d, %d", inserted, deleted)
	}

	os.Remove(filepath.Join(store.Dir(filestore.DirSystemIcons), "info.png"))
	writeSystemIcon(t, store, "photo.png")

	inserted, deleted, err = svc.SyncSystemIcons(ctx)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if inserted != 1 || deleted != 1 {
		t.Errorf("Expected 1 inserted, 1 deleted; got %d, %d", inserted, deleted)
	}

	icons, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	names := map[string]string{}
	for _, icon := range icons {
		if icon.Category != models.IconCategorySystem || icon.OwnerID != nil {
			t.Errorf("Unexpected icon: %+v", icon)
		}
		names[icon.Name] = icon.URL
	}
	if len(names) != 2 || names["arrow"] != "/static/icons/system/arrow.png" || names["photo"] == "" {
		t.Errorf("Unexpected system icons: %v", names)
	}
}

func TestIconService_CustomVisibility(t *testing.T) {
	svc, store, alice, bob := setupIconService(t)
	ctx := context.Background()

	writeSystemIcon(t, store, "arrow.png")
	if _, _, err := svc.SyncSystemIcons(ctx); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	custom, err := svc.CreateCustom(ctx, alice, "pin", "/static/icons/custom/pin.png")
	if err != nil {
		t.Fatalf("Failed to create icon: %v", err)
	}
	if custom.OwnerID == nil || *custom.OwnerID != alice {
		t.Errorf("Expected owner %d, got %v", alice, custom.OwnerID)
	}

	aliceIcons, _ := svc.List(ctx, alice)
	bobIcons, _ := svc.List(ctx, bob)
	if len(aliceIcons) != 2 {
		t.Errorf("Expected alice to see system + custom, got %d", len(aliceIcons))
	}
	if len(bobIcons) != 1 || bobIcons[0].Category != models.IconCategorySystem {
		t.Errorf("Expected bob to see only the system icon, got %+v", bobIcons)
	}
}

func TestIconService_Delete(t *testing.T) {
	svc, store, alice, bob := setupIconService(t)
	ctx := context.Background()

	saved, err := store.Save(filestore.DirCustomIcons, "pin.png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	icon, err := svc.CreateCustom(ctx, alice, "pin", saved.URL)
	if err != nil {
		t.Fatalf("Failed to create icon: %v", err)
	}

	if err := svc.Delete(ctx, icon.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound deleting as bob, got %v", err)
	}
	if icons, _ := svc.List(ctx, alice); len(icons) != 1 {
		t.Fatal("Icon should survive bob's delete attempt")
	}

	if err := svc.Delete(ctx, icon.ID, alice); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := os.Stat(saved.Path); !os.IsNotExist(err) {
		t.Error("Expected icon file to be removed")
	}
}

func TestIconService_DeleteMissingFileIsNotFatal(t *testing.T) {
	svc, _, alice, _ := setupIconService(t)
	ctx := context.Background()

	icon, err := svc.CreateCustom(ctx, alice, "ghost", "/static/icons/custom/ghost.png")
	if err != nil {
		t.Fatalf("Failed to create icon: %v", err)
	}
	if err := svc.Delete(ctx, icon.ID, alice); err != nil {
		t.Fatalf("Expected delete to succeed without file, got %v", err)
	}
	if icons, _ := svc.List(ctx, alice); len(icons) != 0 {
		t.Errorf("Expected row to be deleted, got %+v", icons)
	}
}

func TestIconService_SystemIconNotDeletable(t *testing.T) {
	svc, store, alice, _ := setupIconService(t)
	ctx := context.Background()

	writeSystemIcon(t, store, "arrow.png")
	if _, _, err := svc.SyncSystemIcons(ctx); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	icons, _ := svc.List(ctx, alice)

	if err := svc.Delete(ctx, icons[0].ID, alice); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting a system icon, got %v", err)
	}
}
