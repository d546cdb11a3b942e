package models

import "time"

// DefaultGroupName names the group every new project starts with
const DefaultGroupName = "Default"

// Project is a virtual tour, the top-level ownership unit
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CoverURL  *string   `json:"cover_url"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectTree is a project with its groups, scenes and hotspots nested
type ProjectTree struct {
	Project
	Groups []SceneGroupTree `json:"groups"`
}

// CreateProjectRequest is the request body for creating a project
type CreateProjectRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Category string  `json:"category" validate:"max=255"`
	CoverURL *string `json:"cover_url,omitempty" validate:"omitempty,max=1024"`
}

// UpdateProjectRequest applies only the keys present in the body
type UpdateProjectRequest struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Category *string          `json:"category,omitempty" validate:"omitempty,max=255"`
	CoverURL Optional[string] `json:"cover_url"`
}

// BatchDeleteRequest carries ids for the batch-delete endpoints
type BatchDeleteRequest struct {
	IDs []int64 `json:"ids" validate:"required"`
}

// BatchDeleteResponse reports how many rows were removed
type BatchDeleteResponse struct {
	Deleted int `json:"deleted"`
}
