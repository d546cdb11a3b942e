package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"panotour/internal/database"
	"panotour/internal/models"
)

// ProjectService manages projects and loads their full trees
type ProjectService struct {
	db *database.DB
}

// NewProjectService creates a new project service
func NewProjectService(db *database.DB) *ProjectService {
	return &ProjectService{db: db}
}

// Create inserts a project together with its default scene group
func (s *ProjectService) Create(ctx context.Context, ownerID int64, req models.CreateProjectRequest) (*models.ProjectTree, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}

	var projectID int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		ts := now()
		result, err := tx.ExecContext(ctx,
			"INSERT INTO projects (name, category, cover_url, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			name, req.Category, ptrArg(req.CoverURL), ownerID, ts, ts,
		)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		if projectID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get project ID: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO scene_groups (name, project_id) VALUES (?, ?)",
			models.DefaultGroupName, projectID,
		); err != nil {
			return fmt.Errorf("failed to create default scene group: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordMutation("project", "create")
	log.Printf("✅ [PROJECT] Created project %d for user %d", projectID, ownerID)
	return s.GetTree(ctx, projectID, ownerID)
}

// List returns the caller's projects, most recently edited first
func (s *ProjectService) List(ctx context.Context, ownerID int64) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE owner_id = ? ORDER BY updated_at DESC, id DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Get returns a single project row
func (s *ProjectService) Get(ctx context.Context, projectID, ownerID int64) (*models.Project, error) {
	return getProject(ctx, s.db, projectID, ownerID)
}

func getProject(ctx context.Context, q database.Querier, projectID, ownerID int64) (*models.Project, error) {
	p, err := scanProject(q.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ? AND owner_id = ?",
		projectID, ownerID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// GetTree returns the project with groups, scenes and hotspots nested.
// Groups are ordered by id, scenes by sort_order, hotspots by id.
func (s *ProjectService) GetTree(ctx context.Context, projectID, ownerID int64) (*models.ProjectTree, error) {
	project, err := getProject(ctx, s.db, projectID, ownerID)
	if err != nil {
		return nil, err
	}

	groups, err := listGroups(ctx, s.db, projectID)
	if err != nil {
		return nil, err
	}

	scenes, err := loadScenes(ctx, s.db,
		"JOIN scene_groups g ON g.id = s.group_id WHERE g.project_id = ?", projectID)
	if err != nil {
		return nil, err
	}

	hotspots, err := loadHotspots(ctx, s.db,
		"JOIN scenes s ON s.id = h.source_scene_id JOIN scene_groups g ON g.id = s.group_id WHERE g.project_id = ?",
		projectID)
	if err != nil {
		return nil, err
	}

	bySource := make(map[int64][]models.Hotspot)
	for _, h := range hotspots {
		bySource[h.SourceSceneID] = append(bySource[h.SourceSceneID], h)
	}

	byGroup := make(map[int64][]models.SceneTree)
	for _, sc := range scenes {
		hs := bySource[sc.ID]
		if hs == nil {
			hs = []models.Hotspot{}
		}
		byGroup[sc.GroupID] = append(byGroup[sc.GroupID], models.SceneTree{Scene: sc, Hotspots: hs})
	}

	tree := &models.ProjectTree{Project: *project, Groups: make([]models.SceneGroupTree, 0, len(groups))}
	for _, g := range groups {
		sc := byGroup[g.ID]
		if sc == nil {
			sc = []models.SceneTree{}
		}
		tree.Groups = append(tree.Groups, models.SceneGroupTree{SceneGroup: g, Scenes: sc})
	}
	return tree, nil
}

// Update applies the supplied fields and advances updated_at
func (s *ProjectService) Update(ctx context.Context, projectID, ownerID int64, req models.UpdateProjectRequest) (*models.Project, error) {
	var updated *models.Project
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		p, err := getProject(ctx, tx, projectID, ownerID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: project name must not be empty", ErrInvalidInput)
			}
			p.Name = name
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.CoverURL.Set {
			p.CoverURL = req.CoverURL.Ptr()
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE projects SET name = ?, category = ?, cover_url = ? WHERE id = ?",
			p.Name, p.Category, ptrArg(p.CoverURL), p.ID,
		); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		if err := touchProject(ctx, tx, p.ID); err != nil {
			return err
		}

		updated, err = getProject(ctx, tx, projectID, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	recordMutation("project", "update")
	return updated, nil
}

// Delete removes a project and everything beneath it
func (s *ProjectService) Delete(ctx context.Context, projectID, ownerID int64) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := ownedProject(ctx, tx, projectID, ownerID); err != nil {
			return err
		}
		return deleteProjectTree(ctx, tx, projectID)
	})
	if err != nil {
		return err
	}

	recordMutation("project", "delete")
	log.Printf("🗑️ [PROJECT] Deleted project %d for user %d", projectID, ownerID)
	return nil
}

// BatchDelete removes the caller's projects among ids.
// Ids that are missing or owned by someone else are skipped.
func (s *ProjectService) BatchDelete(ctx context.Context, ids []int64, ownerID int64) (int, error) {
	deleted := 0
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		seen := make(map[int64]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			var found int64
			err := tx.QueryRowContext(ctx,
				"SELECT id FROM projects WHERE id = ? AND owner_id = ?", id, ownerID,
			).Scan(&found)
			if err == sql.ErrNoRows {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to resolve project: %w", err)
			}

			if err := deleteProjectTree(ctx, tx, id); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		globalMetrics.HierarchyMutations.WithLabelValues("project", "delete").Add(float64(deleted))
	}
	return deleted, nil
}
