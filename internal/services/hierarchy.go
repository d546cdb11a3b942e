package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"panotour/internal/database"
	"panotour/internal/models"
)

// Ownership is resolved by joining up to projects.owner_id. A row owned by
// someone else is reported exactly like a missing row.

func ownedProject(ctx context.Context, q database.Querier, projectID, ownerID int64) error {
	var id int64
	err := q.QueryRowContext(ctx,
		"SELECT id FROM projects WHERE id = ? AND owner_id = ?",
		projectID, ownerID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("project %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve project: %w", err)
	}
	return nil
}

// groupProject returns the project a caller-owned group belongs to
func groupProject(ctx context.Context, q database.Querier, groupID, ownerID int64) (int64, error) {
	var projectID int64
	err := q.QueryRowContext(ctx, `
		SELECT g.project_id
		FROM scene_groups g
		JOIN projects p ON p.id = g.project_id
		WHERE g.id = ? AND p.owner_id = ?
	`, groupID, ownerID).Scan(&projectID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("scene group %w", ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve scene group: %w", err)
	}
	return projectID, nil
}

// sceneProject returns the project a caller-owned scene belongs to
func sceneProject(ctx context.Context, q database.Querier, sceneID, ownerID int64) (int64, error) {
	var projectID int64
	err := q.QueryRowContext(ctx, `
		SELECT g.project_id
		FROM scenes s
		JOIN scene_groups g ON g.id = s.group_id
		JOIN projects p ON p.id = g.project_id
		WHERE s.id = ? AND p.owner_id = ?
	`, sceneID, ownerID).Scan(&projectID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("scene %w", ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve scene: %w", err)
	}
	return projectID, nil
}

// hotspotProject returns the project a caller-owned hotspot belongs to
func hotspotProject(ctx context.Context, q database.Querier, hotspotID, ownerID int64) (int64, error) {
	var projectID int64
	err := q.QueryRowContext(ctx, `
		SELECT g.project_id
		FROM hotspots h
		JOIN scenes s ON s.id = h.source_scene_id
		JOIN scene_groups g ON g.id = s.group_id
		JOIN projects p ON p.id = g.project_id
		WHERE h.id = ? AND p.owner_id = ?
	`, hotspotID, ownerID).Scan(&projectID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("hotspot %w", ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve hotspot: %w", err)
	}
	return projectID, nil
}

// touchProject advances a project's updated_at. The new value is strictly
// greater than the stored one even when the clock has not moved.
func touchProject(ctx context.Context, q database.Querier, projectID int64) error {
	var prev time.Time
	if err := q.QueryRowContext(ctx,
		"SELECT updated_at FROM projects WHERE id = ?", projectID,
	).Scan(&prev); err != nil {
		return fmt.Errorf("failed to read project timestamp: %w", err)
	}

	next := now()
	if !next.After(prev) {
		next = prev.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
	}

	if _, err := q.ExecContext(ctx,
		"UPDATE projects SET updated_at = ? WHERE id = ?", next, projectID,
	); err != nil {
		return fmt.Errorf("failed to touch project: %w", err)
	}
	return nil
}

// Cascades delete children before parents and must run inside one transaction.

func deleteProjectTree(ctx context.Context, q database.Querier, projectID int64) error {
	steps := []struct {
		what  string
		query string
	}{
		{"hotspots", `DELETE FROM hotspots WHERE source_scene_id IN (
			SELECT s.id FROM scenes s JOIN scene_groups g ON g.id = s.group_id WHERE g.project_id = ?)`},
		{"scenes", "DELETE FROM scenes WHERE group_id IN (SELECT id FROM scene_groups WHERE project_id = ?)"},
		{"scene groups", "DELETE FROM scene_groups WHERE project_id = ?"},
		{"project", "DELETE FROM projects WHERE id = ?"},
	}
	for _, step := range steps {
		if _, err := q.ExecContext(ctx, step.query, projectID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.what, err)
		}
	}
	return nil
}

func deleteGroupTree(ctx context.Context, q database.Querier, groupID int64) error {
	if _, err := q.ExecContext(ctx,
		"DELETE FROM hotspots WHERE source_scene_id IN (SELECT id FROM scenes WHERE group_id = ?)", groupID,
	); err != nil {
		return fmt.Errorf("failed to delete hotspots: %w", err)
	}
	if _, err := q.ExecContext(ctx, "DELETE FROM scenes WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete scenes: %w", err)
	}
	if _, err := q.ExecContext(ctx, "DELETE FROM scene_groups WHERE id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete scene group: %w", err)
	}
	return nil
}

func deleteSceneTree(ctx context.Context, q database.Querier, sceneID int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM hotspots WHERE source_scene_id = ?", sceneID); err != nil {
		return fmt.Errorf("failed to delete hotspots: %w", err)
	}
	if _, err := q.ExecContext(ctx, "DELETE FROM scenes WHERE id = ?", sceneID); err != nil {
		return fmt.Errorf("failed to delete scene: %w", err)
	}
	return nil
}

// Row scanning shared by the tree loaders

type rowScanner interface {
	Scan(dest ...any) error
}

const projectColumns = "id, name, category, cover_url, owner_id, created_at, updated_at"

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var coverURL sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &coverURL, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CoverURL = nullString(coverURL)
	return &p, nil
}

const sceneColumns = `s.id, s.name, s.image_url, s.cover_url, s.group_id, s.sort_order,
	s.initial_heading, s.initial_pitch, s.fov_min, s.fov_max, s.fov_default,
	s.h_limit_min, s.h_limit_max, s.v_limit_min, s.v_limit_max`

func scanScene(row rowScanner) (*models.Scene, error) {
	var s models.Scene
	var coverURL sql.NullString
	if err := row.Scan(
		&s.ID, &s.Name, &s.ImageURL, &coverURL, &s.GroupID, &s.SortOrder,
		&s.InitialHeading, &s.InitialPitch, &s.FovMin, &s.FovMax, &s.FovDefault,
		&s.HLimitMin, &s.HLimitMax, &s.VLimitMin, &s.VLimitMax,
	); err != nil {
		return nil, err
	}
	s.CoverURL = nullString(coverURL)
	return &s, nil
}

const hotspotColumns = `h.id, h.source_scene_id, h.x, h.y, h.z, h.text, h.type, h.content,
	h.target_scene_id, h.icon_url, h.scale, h.fixed_size`

func scanHotspot(row rowScanner) (*models.Hotspot, error) {
	var h models.Hotspot
	var text, content, iconURL sql.NullString
	var target sql.NullInt64
	if err := row.Scan(
		&h.ID, &h.SourceSceneID, &h.X, &h.Y, &h.Z, &text, &h.Type, &content,
		&target, &iconURL, &h.Scale, &h.FixedSize,
	); err != nil {
		return nil, err
	}
	h.Text = nullString(text)
	h.Content = nullString(content)
	h.IconURL = nullString(iconURL)
	if target.Valid {
		h.TargetSceneID = &target.Int64
	}
	return &h, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// optionalArg converts an Optional into a driver argument, nil for null
func optionalArg[T any](o models.Optional[T]) any {
	if o.Null {
		return nil
	}
	return o.Value
}

// ptrArg converts a nullable pointer into a driver argument
func ptrArg[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// loadScenes returns rows of a scenes query in display order
func loadScenes(ctx context.Context, q database.Querier, where string, args ...any) ([]models.Scene, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+sceneColumns+" FROM scenes s "+where+" ORDER BY s.group_id, s.sort_order, s.id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenes: %w", err)
	}
	defer rows.Close()

	var scenes []models.Scene
	for rows.Next() {
		s, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scene: %w", err)
		}
		scenes = append(scenes, *s)
	}
	return scenes, rows.Err()
}

// loadHotspots returns rows of a hotspots query ordered by id
func loadHotspots(ctx context.Context, q database.Querier, where string, args ...any) ([]models.Hotspot, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+hotspotColumns+" FROM hotspots h "+where+" ORDER BY h.id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotspots: %w", err)
	}
	defer rows.Close()

	hotspots := []models.Hotspot{}
	for rows.Next() {
		h, err := scanHotspot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotspot: %w", err)
		}
		hotspots = append(hotspots, *h)
	}
	return hotspots, rows.Err()
}
