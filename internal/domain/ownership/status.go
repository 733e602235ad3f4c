package ownership

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// GetOrCreate returns the status row for (userID, itemID), inserting the
// owned=false default when none exists. Both item-creation seeding and
// the toggle below go through here so the default is constructed in one
// place.
func GetOrCreate(tx *gorm.DB, userID, itemID string) (*Status, error) {
	var s Status
	err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = Status{UserID: userID, ItemID: itemID, Owned: false}
	if err := tx.Create(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent insert; the row exists now
			if err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&s).Error; err != nil {
				return nil, err
			}
			return &s, nil
		}
		return nil, err
	}
	return &s, nil
}

// Toggle flips the owned flag for (userID, itemID), creating the default
// row first when absent, and returns the updated status.
func Toggle(tx *gorm.DB, userID, itemID string) (*Status, error) {
	s, err := GetOrCreate(tx, userID, itemID)
	if err != nil {
		return nil, err
	}

	s.Owned = !s.Owned
	s.UpdatedAt = time.Now()
	if err := tx.Model(&Status{}).Where("id = ?", s.ID).
		Updates(map[string]interface{}{"owned": s.Owned, "updated_at": s.UpdatedAt}).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// Owned reports the flag for (userID, itemID) without creating a row.
func Owned(tx *gorm.DB, userID, itemID string) (bool, error) {
	var s Status
	err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.Owned, nil
}
