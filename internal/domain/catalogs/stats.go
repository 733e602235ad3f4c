package catalogs

import (
	"math"

	"gorm.io/gorm"

	"catalog-app/internal/domain/items"
	"catalog-app/internal/domain/ownership"
)

type Stats struct {
	ItemCount      int     `json:"item_count"`
	OwnedCount     int     `json:"owned_count"`
	CompletionRate float64 `json:"completion_rate"`
}

// CalculateStats computes the collection progress of viewerID over the
// catalog's items. An unknown catalog id simply yields zero items; callers
// validate existence themselves. For public listings the caller passes the
// creator's id as viewerID, so the listing shows the creator's progress.
func CalculateStats(db *gorm.DB, catalogID, viewerID string) (Stats, error) {
	var itemIDs []string
	if err := db.Model(&items.Item{}).
		Where("catalog_id = ?", catalogID).
		Pluck("item_id", &itemIDs).Error; err != nil {
		return Stats{}, err
	}

	if len(itemIDs) == 0 {
		return Stats{}, nil
	}

	var ownedCount int64
	if viewerID != "" {
		if err := db.Model(&ownership.Status{}).
			Where("user_id = ? AND item_id IN ? AND owned = ?", viewerID, itemIDs, true).
			Count(&ownedCount).Error; err != nil {
			return Stats{}, err
		}
	}

	rate := float64(ownedCount) / float64(len(itemIDs)) * 100
	return Stats{
		ItemCount:      len(itemIDs),
		OwnedCount:     int(ownedCount),
		CompletionRate: math.Round(rate*100) / 100,
	}, nil
}
