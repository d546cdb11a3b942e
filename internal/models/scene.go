package models

// Default camera parameters for new scenes
const (
	DefaultInitialHeading = 0.0
	DefaultInitialPitch   = 0.0
	DefaultFovMin         = 30.0
	DefaultFovMax         = 120.0
	DefaultFovDefault     = 75.0
	DefaultHLimitMin      = -180.0
	DefaultHLimitMax      = 180.0
	DefaultVLimitMin      = -90.0
	DefaultVLimitMax      = 90.0
)

// ViewParams is a scene's camera configuration
type ViewParams struct {
	InitialHeading float64 `json:"initial_heading"`
	InitialPitch   float64 `json:"initial_pitch"`
	FovMin         float64 `json:"fov_min"`
	FovMax         float64 `json:"fov_max"`
	FovDefault     float64 `json:"fov_default"`
	HLimitMin      float64 `json:"h_limit_min"`
	HLimitMax      float64 `json:"h_limit_max"`
	VLimitMin      float64 `json:"v_limit_min"`
	VLimitMax      float64 `json:"v_limit_max"`
}

// DefaultViewParams returns the camera configuration of a new scene
func DefaultViewParams() ViewParams {
	return ViewParams{
		InitialHeading: DefaultInitialHeading,
		InitialPitch:   DefaultInitialPitch,
		FovMin:         DefaultFovMin,
		FovMax:         DefaultFovMax,
		FovDefault:     DefaultFovDefault,
		HLimitMin:      DefaultHLimitMin,
		HLimitMax:      DefaultHLimitMax,
		VLimitMin:      DefaultVLimitMin,
		VLimitMax:      DefaultVLimitMax,
	}
}

// Scene is one panorama image plus its view configuration
type Scene struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	CoverURL  *string `json:"cover_url"`
	GroupID   int64   `json:"group_id"`
	SortOrder int     `json:"sort_order"`
	ViewParams
}

// SceneTree is a scene with the hotspots placed on it
type SceneTree struct {
	Scene
	Hotspots []Hotspot `json:"hotspots"`
}

// CreateSceneRequest is the JSON body for creating a scene.
// Unset view parameters take their defaults.
type CreateSceneRequest struct {
	GroupID        int64    `json:"group_id" form:"group_id" validate:"required,gt=0"`
	Name           string   `json:"name" form:"name" validate:"required,max=255"`
	ImageURL       string   `json:"image_url" form:"image_url" validate:"required,max=1024"`
	CoverURL       *string  `json:"cover_url,omitempty" validate:"omitempty,max=1024"`
	InitialHeading *float64 `json:"initial_heading,omitempty"`
	InitialPitch   *float64 `json:"initial_pitch,omitempty"`
	FovMin         *float64 `json:"fov_min,omitempty"`
	FovMax         *float64 `json:"fov_max,omitempty"`
	FovDefault     *float64 `json:"fov_default,omitempty"`
	HLimitMin      *float64 `json:"h_limit_min,omitempty"`
	HLimitMax      *float64 `json:"h_limit_max,omitempty"`
	VLimitMin      *float64 `json:"v_limit_min,omitempty"`
	VLimitMax      *float64 `json:"v_limit_max,omitempty"`
}

// UpdateSceneRequest applies only the keys present in the body
type UpdateSceneRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	ImageURL       *string          `json:"image_url,omitempty" validate:"omitempty,min=1,max=1024"`
	CoverURL       Optional[string] `json:"cover_url"`
	GroupID        *int64           `json:"group_id,omitempty" validate:"omitempty,gt=0"`
	SortOrder      *int             `json:"sort_order,omitempty"`
	InitialHeading *float64         `json:"initial_heading,omitempty"`
	InitialPitch   *float64         `json:"initial_pitch,omitempty"`
	FovMin         *float64         `json:"fov_min,omitempty"`
	FovMax         *float64         `json:"fov_max,omitempty"`
	FovDefault     *float64         `json:"fov_default,omitempty"`
	HLimitMin      *float64         `json:"h_limit_min,omitempty"`
	HLimitMax      *float64         `json:"h_limit_max,omitempty"`
	VLimitMin      *float64         `json:"v_limit_min,omitempty"`
	VLimitMax      *float64         `json:"v_limit_max,omitempty"`
}

// ReorderScenesRequest assigns sort_order by position in SceneIDs
type ReorderScenesRequest struct {
	GroupID  int64   `json:"group_id" validate:"required,gt=0"`
	SceneIDs []int64 `json:"scene_ids" validate:"required"`
}
