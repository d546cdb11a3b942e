package models

// SceneGroup is a named subdivision of a project, such as a floor
type SceneGroup struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProjectID int64  `json:"project_id"`
}

// SceneGroupTree is a group with its scenes in display order
type SceneGroupTree struct {
	SceneGroup
	Scenes []SceneTree `json:"scenes"`
}

// CreateSceneGroupRequest is the request body for creating a group
type CreateSceneGroupRequest struct {
	ProjectID int64  `json:"project_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,max=255"`
}

// UpdateSceneGroupRequest applies only the keys present in the body
type UpdateSceneGroupRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
}
