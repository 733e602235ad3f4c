package catalogs

import (
	"time"

	"gorm.io/datatypes"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"

	DefaultCategory = "uncategorized"
)

type Catalog struct {
	ID     string `gorm:"column:catalog_id;primaryKey" json:"catalog_id"`
	UserID string `gorm:"index;not null" json:"user_id"`

	Title       string                      `gorm:"not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Category    string                      `gorm:"not null;default:'uncategorized'" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`

	Visibility   string  `gorm:"not null;default:'public';index" json:"visibility"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
