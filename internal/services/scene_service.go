package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"panotour/internal/database"
	"panotour/internal/models"
)

// SceneService manages scenes, their view parameters and ordering
type SceneService struct {
	db *database.DB
}

// NewSceneService creates a new scene service
func NewSceneService(db *database.DB) *SceneService {
	return &SceneService{db: db}
}

func getScene(ctx context.Context, q database.Querier, sceneID int64) (*models.Scene, error) {
	sc, err := scanScene(q.QueryRowContext(ctx,
		"SELECT "+sceneColumns+" FROM scenes s WHERE s.id = ?", sceneID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scene %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scene: %w", err)
	}
	return sc, nil
}

// Create appends a scene to the end of a caller-owned group
func (s *SceneService) Create(ctx context.Context, ownerID int64, req models.CreateSceneRequest) (*models.Scene, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: scene name is required", ErrInvalidInput)
	}
	if req.ImageURL == "" {
		return nil, fmt.Errorf("%w: image_url is required", ErrInvalidInput)
	}

	v := models.DefaultViewParams()
	setFloat(&v.InitialHeading, req.InitialHeading)
	setFloat(&v.InitialPitch, req.InitialPitch)
	setFloat(&v.FovMin, req.FovMin)
	setFloat(&v.FovMax, req.FovMax)
	setFloat(&v.FovDefault, req.FovDefault)
	setFloat(&v.HLimitMin, req.HLimitMin)
	setFloat(&v.HLimitMax, req.HLimitMax)
	setFloat(&v.VLimitMin, req.VLimitMin)
	setFloat(&v.VLimitMax, req.VLimitMax)

	var scene *models.Scene
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		projectID, err := groupProject(ctx, tx, req.GroupID, ownerID)
		if err != nil {
			return err
		}

		var next int
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(sort_order), -1) + 1 FROM scenes WHERE group_id = ?", req.GroupID,
		).Scan(&next); err != nil {
			return fmt.Errorf("failed to compute sort order: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO scenes (name, image_url, cover_url, group_id, sort_order,
				initial_heading, initial_pitch, fov_min, fov_max, fov_default,
				h_limit_min, h_limit_max, v_limit_min, v_limit_max)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, name, req.ImageURL, ptrArg(req.CoverURL), req.GroupID, next,
			v.InitialHeading, v.InitialPitch, v.FovMin, v.FovMax, v.FovDefault,
			v.HLimitMin, v.HLimitMax, v.VLimitMin, v.VLimitMax,
		)
		if err != nil {
			return fmt.Errorf("failed to create scene: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get scene ID: %w", err)
		}

		scene = &models.Scene{
			ID:         id,
			Name:       name,
			ImageURL:   req.ImageURL,
			CoverURL:   req.CoverURL,
			GroupID:    req.GroupID,
			SortOrder:  next,
			ViewParams: v,
		}
		return touchProject(ctx, tx, projectID)
	})
	if err != nil {
		return nil, err
	}

	recordMutation("scene", "create")
	return scene, nil
}

// Get returns a caller-owned scene with its hotspots
func (s *SceneService) Get(ctx context.Context, sceneID, ownerID int64) (*models.SceneTree, error) {
	if _, err := sceneProject(ctx, s.db, sceneID, ownerID); err != nil {
		return nil, err
	}

	sc, err := getScene(ctx, s.db, sceneID)
	if err != nil {
		return nil, err
	}
	hotspots, err := loadHotspots(ctx, s.db, "WHERE h.source_scene_id = ?", sceneID)
	if err != nil {
		return nil, err
	}
	return &models.SceneTree{Scene: *sc, Hotspots: hotspots}, nil
}

// Update applies the supplied fields. Moving a scene to another group
// requires the caller to own that group too; both projects are touched.
func (s *SceneService) Update(ctx context.Context, sceneID, ownerID int64, req models.UpdateSceneRequest) (*models.Scene, error) {
	var updated *models.Scene
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		projectID, err := sceneProject(ctx, tx, sceneID, ownerID)
		if err != nil {
			return err
		}
		sc, err := getScene(ctx, tx, sceneID)
		if err != nil {
			return err
		}

		touched := []int64{projectID}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: scene name must not be empty", ErrInvalidInput)
			}
			sc.Name = name
		}
		if req.ImageURL != nil {
			if *req.ImageURL == "" {
				return fmt.Errorf("%w: image_url must not be empty", ErrInvalidInput)
			}
			sc.ImageURL = *req.ImageURL
		}
		if req.CoverURL.Set {
			sc.CoverURL = req.CoverURL.Ptr()
		}
		if req.GroupID != nil && *req.GroupID != sc.GroupID {
			target, err := groupProject(ctx, tx, *req.GroupID, ownerID)
			if err != nil {
				return err
			}
			sc.GroupID = *req.GroupID
			if target != projectID {
				touched = append(touched, target)
			}
		}
		if req.SortOrder != nil {
			sc.SortOrder = *req.SortOrder
		}
		setFloat(&sc.InitialHeading, req.InitialHeading)
		setFloat(&sc.InitialPitch, req.InitialPitch)
		setFloat(&sc.FovMin, req.FovMin)
		setFloat(&sc.FovMax, req.FovMax)
		setFloat(&sc.FovDefault, req.FovDefault)
		setFloat(&sc.HLimitMin, req.HLimitMin)
		setFloat(&sc.HLimitMax, req.HLimitMax)
		setFloat(&sc.VLimitMin, req.VLimitMin)
		setFloat(&sc.VLimitMax, req.VLimitMax)

		if _, err := tx.ExecContext(ctx, `
			UPDATE scenes SET name = ?, image_url = ?, cover_url = ?, group_id = ?, sort_order = ?,
				initial_heading = ?, initial_pitch = ?, fov_min = ?, fov_max = ?, fov_default = ?,
				h_limit_min = ?, h_limit_max = ?, v_limit_min = ?, v_limit_max = ?
			WHERE id = ?
		`, sc.Name, sc.ImageURL, ptrArg(sc.CoverURL), sc.GroupID, sc.SortOrder,
			sc.InitialHeading, sc.InitialPitch, sc.FovMin, sc.FovMax, sc.FovDefault,
			sc.HLimitMin, sc.HLimitMax, sc.VLimitMin, sc.VLimitMax, sc.ID,
		); err != nil {
			return fmt.Errorf("failed to update scene: %w", err)
		}

		for _, id := range touched {
			if err := touchProject(ctx, tx, id); err != nil {
				return err
			}
		}
		updated = sc
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordMutation("scene", "update")
	return updated, nil
}

// Delete removes a scene and the hotspots placed on it.
// Hotspots elsewhere that target it keep their dangling target id.
func (s *SceneService) Delete(ctx context.Context, sceneID, ownerID int64) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		projectID, err := sceneProject(ctx, tx, sceneID, ownerID)
		if err != nil {
			return err
		}
		if err := deleteSceneTree(ctx, tx, sceneID); err != nil {
			return err
		}
		return touchProject(ctx, tx, projectID)
	})
	if err != nil {
		return err
	}

	recordMutation("scene", "delete")
	return nil
}

// Reorder sets sort_order to each id's position in sceneIDs.
// Ids outside the group are ignored; scenes of the group that are not
// listed keep their previous sort_order. Returns the group's scenes in order.
func (s *SceneService) Reorder(ctx context.Context, ownerID, groupID int64, sceneIDs []int64) ([]models.Scene, error) {
	var scenes []models.Scene
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		projectID, err := groupProject(ctx, tx, groupID, ownerID)
		if err != nil {
			return err
		}

		for pos, id := range sceneIDs {
			if _, err := tx.ExecContext(ctx,
				"UPDATE scenes SET sort_order = ? WHERE id = ? AND group_id = ?", pos, id, groupID,
			); err != nil {
				return fmt.Errorf("failed to reorder scene %d: %w", id, err)
			}
		}
		if err := touchProject(ctx, tx, projectID); err != nil {
			return err
		}

		scenes, err = loadScenes(ctx, tx, "WHERE s.group_id = ?", groupID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if scenes == nil {
		scenes = []models.Scene{}
	}

	recordMutation("scene", "reorder")
	return scenes, nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
