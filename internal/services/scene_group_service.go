package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"panotour/internal/database"
	"panotour/internal/models"
)

// SceneGroupService manages the groups inside a project
type SceneGroupService struct {
	db *database.DB
}

// NewSceneGroupService creates a new scene group service
func NewSceneGroupService(db *database.DB) *SceneGroupService {
	return &SceneGroupService{db: db}
}

func listGroups(ctx context.Context, q database.Querier, projectID int64) ([]models.SceneGroup, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, project_id FROM scene_groups WHERE project_id = ? ORDER BY id",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query scene groups: %w", err)
	}
	defer rows.Close()

	groups := []models.SceneGroup{}
	for rows.Next() {
		var g models.SceneGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.ProjectID); err != nil {
			return nil, fmt.Errorf("failed to scan scene group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func getGroup(ctx context.Context, q database.Querier, groupID int64) (*models.SceneGroup, error) {
	var g models.SceneGroup
	err := q.QueryRowContext(ctx,
		"SELECT id, name, project_id FROM scene_groups WHERE id = ?", groupID,
	).Scan(&g.ID, &g.Name, &g.ProjectID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scene group %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scene group: %w", err)
	}
	return &g, nil
}

// List returns the groups of a caller-owned project
func (s *SceneGroupService) List(ctx context.Context, projectID, ownerID int64) ([]models.SceneGroup, error) {
	if err := ownedProject(ctx, s.db, projectID, ownerID); err != nil {
		return nil, err
	}
	return listGroups(ctx, s.db, projectID)
}

// Create adds a group to a caller-owned project
func (s *SceneGroupService) Create(ctx context.Context, ownerID int64, req models.CreateSceneGroupRequest) (*models.SceneGroup, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	var group *models.SceneGroup
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := ownedProject(ctx, tx, req.ProjectID, ownerID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			"INSERT INTO scene_groups (name, project_id) VALUES (?, ?)", name, req.ProjectID,
		)
		if err != nil {
			return fmt.Errorf("failed to create scene group: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get scene group ID: %w", err)
		}

		group = &models.SceneGroup{ID: id, Name: name, ProjectID: req.ProjectID}
		return touchProject(ctx, tx, req.ProjectID)
	})
	if err != nil {
		return nil, err
	}

	recordMutation("group", "create")
	return group, nil
}

// Update renames a group
func (s *SceneGroupService) Update(ctx context.Context, groupID, ownerID int64, req models.UpdateSceneGroupRequest) (*models.SceneGroup, error) {
	var group *models.SceneGroup
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		projectID, err := groupProject(ctx, tx, groupID, ownerID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: group name must not be empty", ErrInvalidInput)
			}
			if _, err := tx.ExecContext(ctx,
				"UPDATE scene_groups SET name = ? WHERE id = ?", name, groupID,
			); err != nil {
				return fmt.Errorf("failed to update scene group: %w", err)
			}
		}
		if err := touchProject(ctx, tx, projectID); err != nil {
			return err
		}

		group, err = getGroup(ctx, tx, groupID)
		return err
	})
	if err != nil {
		return nil, err
	}

	recordMutation("group", "update")
	return group, nil
}

// Delete removes a group with its scenes and their hotspots
func (s *SceneGroupService) Delete(ctx context.Context, groupID, ownerID int64) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		projectID, err := groupProject(ctx, tx, groupID, ownerID)
		if err != nil {
			return err
		}
		if err := deleteGroupTree(ctx, tx, groupID); err != nil {
			return err
		}
		return touchProject(ctx, tx, projectID)
	})
	if err != nil {
		return err
	}

	recordMutation("group", "delete")
	return nil
}
