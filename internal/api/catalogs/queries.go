package catalogs

import (
	"errors"

	"gorm.io/gorm"

	"catalog-app/internal/domain/catalogs"
)

func getCatalog(db *gorm.DB, catalogID string) (*catalogs.Catalog, error) {
	var c catalogs.Catalog
	if err := db.First(&c, "catalog_id = ?", catalogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func userCatalogsQuery(db *gorm.DB, userID, category, visibility string) *gorm.DB {
	q := db.Model(&catalogs.Catalog{}).Where("user_id = ?", userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if visibility != "" {
		q = q.Where("visibility = ?", visibility)
	}
	return q
}

func publicCatalogsQuery(db *gorm.DB, category, excludeUserID string) *gorm.DB {
	q := db.Model(&catalogs.Catalog{}).Where("visibility = ?", catalogs.VisibilityPublic)
	if excludeUserID != "" {
		q = q.Where("user_id <> ?", excludeUserID)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	return q.Order("created_at DESC")
}
