package users

import (
	"net/http"

	"catalog-app/database"
	"catalog-app/internal/domain/catalogs"
	"catalog-app/internal/domain/items"
	"catalog-app/internal/domain/ownership"
	"catalog-app/internal/domain/saved"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// ------------------------------
// DELETE /users/me
// ------------------------------
// Account-deletion teardown: every catalog the user owns (originals and
// saved copies) goes through the same cascade as a direct delete, links
// other users hold on the deleted originals are dropped, and whatever
// ownership rows the user left on other people's items are cleared.
func DeleteMyData(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	deleted := map[string]int64{
		"catalogs":       0,
		"items":          0,
		"item_statuses":  0,
		"saved_catalogs": 0,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var ownedCatalogIDs []string
		if err := tx.Model(&catalogs.Catalog{}).
			Where("user_id = ?", userID).
			Pluck("catalog_id", &ownedCatalogIDs).Error; err != nil {
			return err
		}

		// the user's saved refs are counted up front: the cascades below
		// remove a copy's link alongside the copy itself
		var savedRefs int64
		if err := tx.Model(&saved.CatalogLink{}).
			Where("user_id = ?", userID).
			Count(&savedRefs).Error; err != nil {
			return err
		}
		deleted["saved_catalogs"] = savedRefs

		for _, catalogID := range ownedCatalogIDs {
			var itemIDs []string
			if err := tx.Model(&items.Item{}).
				Where("catalog_id = ?", catalogID).
				Pluck("item_id", &itemIDs).Error; err != nil {
				return err
			}
			deleted["items"] += int64(len(itemIDs))

			// statuses EVERY user holds on these items fall with the catalog
			if len(itemIDs) > 0 {
				var statusCount int64
				if err := tx.Model(&ownership.Status{}).
					Where("item_id IN ?", itemIDs).
					Count(&statusCount).Error; err != nil {
					return err
				}
				deleted["item_statuses"] += statusCount
			}

			// links other users hold on this original
			res := tx.Where("original_catalog_id = ?", catalogID).Delete(&saved.CatalogLink{})
			if res.Error != nil {
				return res.Error
			}

			if err := catalogs.DeleteCascade(tx, catalogID); err != nil {
				return err
			}
			deleted["catalogs"]++
		}

		// final sweeps: links to other users' originals, and the user's
		// statuses on items outside their own catalogs
		if err := tx.Where("user_id = ?", userID).Delete(&saved.CatalogLink{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", userID).Delete(&ownership.Status{})
		if res.Error != nil {
			return res.Error
		}
		deleted["item_statuses"] += res.RowsAffected
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User data deleted",
		"deleted": deleted,
	})
}
