package catalogs

import (
	"gorm.io/gorm"

	"catalog-app/internal/domain/items"
	"catalog-app/internal/domain/ownership"
	"catalog-app/internal/domain/saved"
)

// DeleteCascade removes a catalog together with everything hanging off it:
// its items, every user's ownership rows for those items, and — when the
// catalog is a saved copy — the link row pointing back at its original.
// The walk is explicit rather than relying on foreign-key cascade config,
// so the same teardown runs identically from catalog deletion, unsave and
// account deletion. Callers wrap it in a transaction.
func DeleteCascade(tx *gorm.DB, catalogID string) error {
	var itemIDs []string
	if err := tx.Model(&items.Item{}).
		Where("catalog_id = ?", catalogID).
		Pluck("item_id", &itemIDs).Error; err != nil {
		return err
	}

	if len(itemIDs) > 0 {
		if err := tx.Where("item_id IN ?", itemIDs).Delete(&ownership.Status{}).Error; err != nil {
			return err
		}
		if err := tx.Where("catalog_id = ?", catalogID).Delete(&items.Item{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("copied_catalog_id = ?", catalogID).Delete(&saved.CatalogLink{}).Error; err != nil {
		return err
	}

	return tx.Where("catalog_id = ?", catalogID).Delete(&Catalog{}).Error
}
