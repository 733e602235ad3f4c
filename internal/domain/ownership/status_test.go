package ownership

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Status{}))
	return db
}

func TestGetOrCreate_DefaultsToNotOwned(t *testing.T) {
	db := openTestDB(t)

	s, err := GetOrCreate(db, "user-1", "item-1")
	require.NoError(t, err)
	require.False(t, s.Owned)

	again, err := GetOrCreate(db, "user-1", "item-1")
	require.NoError(t, err)
	require.Equal(t, s.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&Status{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestToggle_FlipsFromWellDefinedBaseline(t *testing.T) {
	db := openTestDB(t)

	s, err := Toggle(db, "user-1", "item-1")
	require.NoError(t, err)
	require.True(t, s.Owned)

	s, err = Toggle(db, "user-1", "item-1")
	require.NoError(t, err)
	require.False(t, s.Owned)

	var count int64
	require.NoError(t, db.Model(&Status{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestToggle_IsPerUser(t *testing.T) {
	db := openTestDB(t)

	_, err := Toggle(db, "user-1", "item-1")
	require.NoError(t, err)

	owned, err := Owned(db, "user-2", "item-1")
	require.NoError(t, err)
	require.False(t, owned)
}

func TestUniqueIndexRejectsDuplicateRow(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&Status{UserID: "u", ItemID: "i"}).Error)
	err := db.Create(&Status{UserID: "u", ItemID: "i"}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
