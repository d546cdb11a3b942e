package models

// Hotspot types
const (
	HotspotTypeScene = "scene"
	HotspotTypeLink  = "link"
	HotspotTypeText  = "text"
	HotspotTypeImage = "image"
	HotspotTypeVideo = "video"
)

// HotspotTypes lists the accepted hotspot types
var HotspotTypes = []string{HotspotTypeScene, HotspotTypeLink, HotspotTypeText, HotspotTypeImage, HotspotTypeVideo}

// DefaultHotspotScale is the scale of a new hotspot
const DefaultHotspotScale = 1.0

// Hotspot is a marker placed on its source scene.
// TargetSceneID is a plain reference and may point at a deleted scene.
type Hotspot struct {
	ID            int64   `json:"id"`
	SourceSceneID int64   `json:"source_scene_id"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	Text          *string `json:"text"`
	Type          string  `json:"type"`
	Content       *string `json:"content"`
	TargetSceneID *int64  `json:"target_scene_id"`
	IconURL       *string `json:"icon_url"`
	Scale         float64 `json:"scale"`
	FixedSize     bool    `json:"fixed_size"`
}

// CreateHotspotRequest is the request body for creating a hotspot
type CreateHotspotRequest struct {
	SourceSceneID int64    `json:"source_scene_id" validate:"required,gt=0"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	Z             float64  `json:"z"`
	Text          *string  `json:"text,omitempty"`
	Type          string   `json:"type" validate:"omitempty,oneof=scene link text image video"`
	Content       *string  `json:"content,omitempty"`
	TargetSceneID *int64   `json:"target_scene_id,omitempty"`
	IconURL       *string  `json:"icon_url,omitempty" validate:"omitempty,max=1024"`
	Scale         *float64 `json:"scale,omitempty" validate:"omitempty,gt=0"`
	FixedSize     bool     `json:"fixed_size"`
}

// UpdateHotspotRequest applies only the keys present in the body
type UpdateHotspotRequest struct {
	X             *float64         `json:"x,omitempty"`
	Y             *float64         `json:"y,omitempty"`
	Z             *float64         `json:"z,omitempty"`
	Text          Optional[string] `json:"text"`
	Type          *string          `json:"type,omitempty" validate:"omitempty,oneof=scene link text image video"`
	Content       Optional[string] `json:"content"`
	TargetSceneID Optional[int64]  `json:"target_scene_id"`
	IconURL       Optional[string] `json:"icon_url"`
	Scale         *float64         `json:"scale,omitempty" validate:"omitempty,gt=0"`
	FixedSize     *bool            `json:"fixed_size,omitempty"`
}

// IsValidHotspotType reports whether t is an accepted hotspot type
func IsValidHotspotType(t string) bool {
	for _, v := range HotspotTypes {
		if v == t {
			return true
		}
	}
	return false
}
