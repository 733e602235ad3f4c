package saved

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog-app/internal/domain/catalogs"
	"catalog-app/internal/domain/items"
	"catalog-app/internal/domain/ownership"
	"catalog-app/internal/domain/saved"
)

var (
	ErrOwnCatalog   = errors.New("cannot save own catalog")
	ErrAlreadySaved = errors.New("catalog already saved")
	ErrNotOwner     = errors.New("catalog not owned by user")
)

// copyCatalog saves someone else's catalog into userID's collection: a
// private copy of the catalog, a snapshot copy of every item, an owned=false
// ownership row per copied item, and the provenance link — all in one
// transaction, so a failure anywhere leaves nothing behind. Returns the new
// catalog id.
//
// Precondition order matters: a missing catalog wins over a self-save, which
// wins over a duplicate save.
func copyCatalog(db *gorm.DB, userID, originalCatalogID string) (string, error) {
	var original catalogs.Catalog
	if err := db.First(&original, "catalog_id = ?", originalCatalogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", catalogs.ErrNotFound
		}
		return "", err
	}

	if original.UserID == userID {
		return "", ErrOwnCatalog
	}

	var existing saved.CatalogLink
	err := db.Where("user_id = ? AND original_catalog_id = ?", userID, originalCatalogID).
		First(&existing).Error
	if err == nil {
		return "", ErrAlreadySaved
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	copiedCatalogID := uuid.NewString()

	err = db.Transaction(func(tx *gorm.DB) error {
		copied := catalogs.Catalog{
			ID:           copiedCatalogID,
			UserID:       userID,
			Title:        original.Title,
			Description:  original.Description,
			Category:     original.Category,
			Tags:         original.Tags,
			Visibility:   catalogs.VisibilityPrivate,
			ThumbnailURL: original.ThumbnailURL,
		}
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}

		var originalItems []items.Item
		if err := tx.Where("catalog_id = ?", originalCatalogID).Find(&originalItems).Error; err != nil {
			return err
		}

		for i := range originalItems {
			copiedItem := items.Item{
				ID:          uuid.NewString(),
				CatalogID:   copiedCatalogID,
				Name:        originalItems[i].Name,
				Description: originalItems[i].Description,
				ImageURL:    originalItems[i].ImageURL,
				UserFields:  originalItems[i].UserFields,
			}
			if err := tx.Create(&copiedItem).Error; err != nil {
				return err
			}
			if err := tx.Create(&ownership.Status{
				UserID: userID,
				ItemID: copiedItem.ID,
				Owned:  false,
			}).Error; err != nil {
				return err
			}
		}

		return tx.Create(&saved.CatalogLink{
			UserID:            userID,
			OriginalCatalogID: originalCatalogID,
			CopiedCatalogID:   &copiedCatalogID,
		}).Error
	})
	if err != nil {
		// the unique index on (user_id, original_catalog_id) catches the
		// loser of two concurrent saves; the whole transaction rolled back
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrAlreadySaved
		}
		return "", err
	}

	return copiedCatalogID, nil
}

// removeCopiedCatalog tears down a saved copy: items, ownership rows, the
// catalog itself and its provenance link. The guard is catalog ownership,
// not link existence — a copy whose link row is missing can still be
// removed, and a missing link is not an error.
func removeCopiedCatalog(db *gorm.DB, userID, copiedCatalogID string) error {
	var cat catalogs.Catalog
	if err := db.First(&cat, "catalog_id = ?", copiedCatalogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalogs.ErrNotFound
		}
		return err
	}

	if cat.UserID != userID {
		return ErrNotOwner
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return catalogs.DeleteCascade(tx, copiedCatalogID)
	})
}

// linkFor returns the caller's provenance link for an original catalog, or
// nil when the catalog was never saved.
func linkFor(db *gorm.DB, userID, originalCatalogID string) (*saved.CatalogLink, error) {
	var link saved.CatalogLink
	err := db.Where("user_id = ? AND original_catalog_id = ?", userID, originalCatalogID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}
