package services

import (
	"context"
	"database/sql"
	"fmt"

	"panotour/internal/database"
	"panotour/internal/models"
)

// HotspotService manages the markers placed on scenes
type HotspotService struct {
	db *database.DB
}

// NewHotspotService creates a new hotspot service
func NewHotspotService(db *database.DB) *HotspotService {
	return &HotspotService{db: db}
}

func getHotspot(ctx context.Context, q database.Querier, hotspotID int64) (*models.Hotspot, error) {
	h, err := scanHotspot(q.QueryRowContext(ctx,
		"SELECT "+hotspotColumns+" FROM hotspots h WHERE h.id = ?", hotspotID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("hotspot %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotspot: %w", err)
	}
	return h, nil
}

// List returns the hotspots placed on a caller-owned scene
func (s *HotspotService) List(ctx context.Context, sceneID, ownerID int64) ([]models.Hotspot, error) {
	if _, err := sceneProject(ctx, s.db, sceneID, ownerID); err != nil {
		return nil, err
	}
	return loadHotspots(ctx, s.db, "WHERE h.source_scene_id = ?", sceneID)
}

// Create places a hotspot on a caller-owned scene.
// The target scene id is stored as given and is not checked.
func (s *HotspotService) Create(ctx context.Context, ownerID int64, req models.CreateHotspotRequest) (*models.Hotspot, error) {
	h := &models.Hotspot{
		SourceSceneID: req.SourceSceneID,
		X:             req.X,
		Y:             req.Y,
		Z:             req.Z,
		Text:          req.Text,
		Type:          req.Type,
		Content:       req.Content,
		TargetSceneID: req.TargetSceneID,
		IconURL:       req.IconURL,
		Scale:         models.DefaultHotspotScale,
		FixedSize:     req.FixedSize,
	}
	if h.Type == "" {
		h.Type = models.HotspotTypeScene
	}
	if !models.IsValidHotspotType(h.Type) {
		return nil, fmt.Errorf("%w: unknown hotspot type %q", ErrInvalidInput, h.Type)
	}
	if req.Scale != nil {
		if *req.Scale <= 0 {
			return nil, fmt.Errorf("%w: scale must be positive", ErrInvalidInput)
		}
		h.Scale = *req.Scale
	}

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		projectID, err := sceneProject(ctx, tx, req.SourceSceneID, ownerID)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO hotspots (source_scene_id, x, y, z, text, type, content, target_scene_id, icon_url, scale, fixed_size)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, h.SourceSceneID, h.X, h.Y, h.Z, ptrArg(h.Text), h.Type, ptrArg(h.Content),
			ptrArg(h.TargetSceneID), ptrArg(h.IconURL), h.Scale, h.FixedSize,
		)
		if err != nil {
			return fmt.Errorf("failed to create hotspot: %w", err)
		}
		if h.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get hotspot ID: %w", err)
		}
		return touchProject(ctx, tx, projectID)
	})
	if err != nil {
		return nil, err
	}

	recordMutation("hotspot", "create")
	return h, nil
}

// Update applies the supplied fields and touches the owning project
func (s *HotspotService) Update(ctx context.Context, hotspotID, ownerID int64, req models.UpdateHotspotRequest) (*models.Hotspot, error) {
	var updated *models.Hotspot
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		projectID, err := hotspotProject(ctx, tx, hotspotID, ownerID)
		if err != nil {
			return err
		}
		h, err := getHotspot(ctx, tx, hotspotID)
		if err != nil {
			return err
		}

		setFloat(&h.X, req.X)
		setFloat(&h.Y, req.Y)
		setFloat(&h.Z, req.Z)
		if req.Text.Set {
			h.Text = req.Text.Ptr()
		}
		if req.Type != nil {
			if !models.IsValidHotspotType(*req.Type) {
				return fmt.Errorf("%w: unknown hotspot type %q", ErrInvalidInput, *req.Type)
			}
			h.Type = *req.Type
		}
		if req.Content.Set {
			h.Content = req.Content.Ptr()
		}
		if req.TargetSceneID.Set {
			h.TargetSceneID = req.TargetSceneID.Ptr()
		}
		if req.IconURL.Set {
			h.IconURL = req.IconURL.Ptr()
		}
		if req.Scale != nil {
			if *req.Scale <= 0 {
				return fmt.Errorf("%w: scale must be positive", ErrInvalidInput)
			}
			h.Scale = *req.Scale
		}
		if req.FixedSize != nil {
			h.FixedSize = *req.FixedSize
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE hotspots SET x = ?, y = ?, z = ?, text = ?, type = ?, content = ?,
				target_scene_id = ?, icon_url = ?, scale = ?, fixed_size = ?
			WHERE id = ?
		`, h.X, h.Y, h.Z, ptrArg(h.Text), h.Type, ptrArg(h.Content),
			ptrArg(h.TargetSceneID), ptrArg(h.IconURL), h.Scale, h.FixedSize, h.ID,
		); err != nil {
			return fmt.Errorf("failed to update hotspot: %w", err)
		}

		updated = h
		return touchProject(ctx, tx, projectID)
	})
	if err != nil {
		return nil, err
	}

	recordMutation("hotspot", "update")
	return updated, nil
}

// Delete removes a hotspot and touches the owning project
func (s *HotspotService) Delete(ctx context.Context, hotspotID, ownerID int64) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		projectID, err := hotspotProject(ctx, tx, hotspotID, ownerID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM hotspots WHERE id = ?", hotspotID); err != nil {
			return fmt.Errorf("failed to delete hotspot: %w", err)
		}
		return touchProject(ctx, tx, projectID)
	})
	if err != nil {
		return err
	}

	recordMutation("hotspot", "delete")
	return nil
}

// BatchDelete removes the caller's hotspots among ids, skipping the rest.
// Every affected project is touched once.
func (s *HotspotService) BatchDelete(ctx context.Context, ids []int64, ownerID int64) (int, error) {
	deleted := 0
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var projects []int64
		affected := make(map[int64]bool)
		seen := make(map[int64]bool, len(ids))

		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			projectID, err := hotspotProject(ctx, tx, id, ownerID)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return err
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM hotspots WHERE id = ?", id); err != nil {
				return fmt.Errorf("failed to delete hotspot: %w", err)
			}
			deleted++
			if !affected[projectID] {
				affected[projectID] = true
				projects = append(projects, projectID)
			}
		}

		for _, projectID := range projects {
			if err := touchProject(ctx, tx, projectID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		globalMetrics.HierarchyMutations.WithLabelValues("hotspot", "delete").Add(float64(deleted))
	}
	return deleted, nil
}
