package ownership

import "time"

// Status records whether one user owns one item. Absence of a row means
// owned=false.
type Status struct {
	ID uint `gorm:"primaryKey" json:"-"`

	UserID string `gorm:"not null;uniqueIndex:idx_ownership_user_item" json:"user_id"`
	ItemID string `gorm:"not null;uniqueIndex:idx_ownership_user_item" json:"item_id"`
	Owned  bool   `gorm:"not null;default:false" json:"owned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Status) TableName() string {
	return "user_item_statuses"
}
