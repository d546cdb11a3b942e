package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"panotour/internal/database"
	"panotour/internal/filestore"
	"panotour/internal/models"
)

// IconService is the icon registry
type IconService struct {
	db    *database.DB
	store *filestore.Store
}

// NewIconService creates a new icon service
func NewIconService(db *database.DB, store *filestore.Store) *IconService {
	return &IconService{db: db, store: store}
}

// List returns every system icon plus the caller's custom icons
func (s *IconService) List(ctx context.Context, ownerID int64) ([]models.Icon, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, url, category, owner_id
		FROM icons
		WHERE category = ? OR (category = ? AND owner_id = ?)
		ORDER BY category DESC, id
	`, models.IconCategorySystem, models.IconCategoryCustom, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query icons: %w", err)
	}
	defer rows.Close()

	icons := []models.Icon{}
	for rows.Next() {
		icon, err := scanIcon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan icon: %w", err)
		}
		icons = append(icons, *icon)
	}
	return icons, rows.Err()
}

// CreateCustom registers an already stored file as the caller's icon
func (s *IconService) CreateCustom(ctx context.Context, ownerID int64, name, url string) (*models.Icon, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: icon name is required", ErrInvalidInput)
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO icons (name, url, category, owner_id) VALUES (?, ?, ?, ?)",
		name, url, models.IconCategoryCustom, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get icon ID: %w", err)
	}

	owner := ownerID
	return &models.Icon{ID: id, Name: name, URL: url, Category: models.IconCategoryCustom, OwnerID: &owner}, nil
}

// Delete removes one of the caller's custom icons. System icons and icons of
// other users report ErrNotFound. Failing to remove the file is only logged.
func (s *IconService) Delete(ctx context.Context, iconID, ownerID int64) error {
	icon, err := scanIcon(s.db.QueryRowContext(ctx,
		"SELECT id, name, url, category, owner_id FROM icons WHERE id = ? AND category = ? AND owner_id = ?",
		iconID, models.IconCategoryCustom, ownerID,
	))
	if err == sql.ErrNoRows {
		return fmt.Errorf("icon %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get icon: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM icons WHERE id = ?", icon.ID); err != nil {
		return fmt.Errorf("failed to delete icon: %w", err)
	}

	if s.store != nil {
		if err := s.store.Remove(icon.URL); err != nil {
			log.Printf("⚠️ [ICONS] Failed to remove file for icon %d: %v", icon.ID, err)
		}
	}
	return nil
}

// SyncSystemIcons reconciles system icon rows with the files in the system
// icon directory: files without a row are inserted, rows without a file are deleted.
func (s *IconService) SyncSystemIcons(ctx context.Context) (inserted, deleted int, err error) {
	files, err := s.store.List(filestore.DirSystemIcons)
	if err != nil {
		return 0, 0, err
	}

	present := make(map[string]bool, len(files))
	for _, name := range files {
		present[s.store.URL(filestore.DirSystemIcons, name)] = true
	}

	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			"SELECT id, url FROM icons WHERE category = ?", models.IconCategorySystem)
		if err != nil {
			return fmt.Errorf("failed to query system icons: %w", err)
		}

		known := make(map[string]bool)
		var stale []int64
		for rows.Next() {
			var id int64
			var url string
			if err := rows.Scan(&id, &url); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan system icon: %w", err)
			}
			known[url] = true
			if !present[url] {
				stale = append(stale, id)
			}
		}
		if err := rows.Close(); err != nil {
			return err
		}

		for _, name := range files {
			url := s.store.URL(filestore.DirSystemIcons, name)
			if known[url] {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO icons (name, url, category, owner_id) VALUES (?, ?, ?, NULL)",
				filestore.Stem(name), url, models.IconCategorySystem,
			); err != nil {
				return fmt.Errorf("failed to insert system icon %s: %w", name, err)
			}
			inserted++
		}

		for _, id := range stale {
			if _, err := tx.ExecContext(ctx, "DELETE FROM icons WHERE id = ?", id); err != nil {
				return fmt.Errorf("failed to delete system icon %d: %w", id, err)
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	recordIconSync("insert", inserted)
	recordIconSync("delete", deleted)
	log.Printf("✅ [ICONS] System icons synced: %d added, %d removed", inserted, deleted)
	return inserted, deleted, nil
}

func scanIcon(row rowScanner) (*models.Icon, error) {
	var icon models.Icon
	var owner sql.NullInt64
	if err := row.Scan(&icon.ID, &icon.Name, &icon.URL, &icon.Category, &owner); err != nil {
		return nil, err
	}
	if owner.Valid {
		icon.OwnerID = &owner.Int64
	}
	return &icon, nil
}
