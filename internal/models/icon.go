package models

// Icon categories
const (
	IconCategorySystem = "system"
	IconCategoryCustom = "custom"
)

// Icon is a visual asset used by hotspots.
// System icons have no owner and are visible to everyone;
// custom icons are visible only to their owner.
type Icon struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
	OwnerID  *int64 `json:"owner_id"`
}
