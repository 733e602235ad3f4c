package items

import (
	"time"

	"gorm.io/datatypes"
)

type Item struct {
	ID        string `gorm:"column:item_id;primaryKey" json:"item_id"`
	CatalogID string `gorm:"index;not null" json:"catalog_id"`

	Name        string            `gorm:"not null" json:"name"`
	Description string            `gorm:"type:text;not null" json:"description"`
	ImageURL    *string           `json:"image_url,omitempty"`
	UserFields  datatypes.JSONMap `json:"user_fields"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
