package saved

import "time"

// CatalogLink ties a user's saved copy back to the catalog it was copied
// from. The unique index keeps a user from saving the same original twice,
// including under concurrent save requests.
type CatalogLink struct {
	ID uint `gorm:"primaryKey" json:"-"`

	UserID            string  `gorm:"not null;uniqueIndex:idx_saved_user_original" json:"user_id"`
	OriginalCatalogID string  `gorm:"not null;uniqueIndex:idx_saved_user_original" json:"original_catalog_id"`
	CopiedCatalogID   *string `gorm:"index" json:"copied_catalog_id"`

	SavedAt time.Time `gorm:"autoCreateTime" json:"saved_at"`
}

func (CatalogLink) TableName() string {
	return "user_catalogs"
}
