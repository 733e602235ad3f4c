package database

import (
	"fmt"
	"log"
	"os"

	"catalog-app/internal/domain/catalogs"
	"catalog-app/internal/domain/items"
	"catalog-app/internal/domain/ownership"
	"catalog-app/internal/domain/saved"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the save path relies on to report a
	// duplicate save that slipped past the precondition check.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&catalogs.Catalog{},
		&items.Item{},
		&ownership.Status{},
		&saved.CatalogLink{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
