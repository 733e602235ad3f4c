package items

import (
	"errors"
	"net/http"
	"time"

	"catalog-app/database"
	"catalog-app/internal/domain/catalogs"
	"catalog-app/internal/domain/items"
	"catalog-app/internal/domain/ownership"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
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

func getItem(db *gorm.DB, itemID string) (*items.Item, error) {
	var it items.Item
	if err := db.First(&it, "item_id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func parentCatalog(db *gorm.DB, catalogID string) (*catalogs.Catalog, error) {
	var cat catalogs.Catalog
	if err := db.First(&cat, "catalog_id = ?", catalogID).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func toUserFields(m map[string]string) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ------------------------------
// GET /items/catalog/:id
// ------------------------------
// Public catalogs need no authentication; the owned flag is false for the
// anonymous viewer. The optional ?owned= filter keeps only items matching
// the viewer's ownership state.
func ListByCatalog(c *gin.Context) {
	viewerID := c.GetString("user_id") // optional

	cat, err := parentCatalog(database.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return
	}

	if cat.Visibility != catalogs.VisibilityPublic {
		if viewerID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !catalogs.CanView(cat, viewerID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
	}

	var records []items.Item
	if err := database.DB.Where("catalog_id = ?", cat.ID).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load items"})
		return
	}

	var ownedFilter *bool
	if raw, present := c.GetQuery("owned"); present {
		v := raw == "true"
		ownedFilter = &v
	}

	out := make([]ItemResponse, 0, len(records))
	for i := range records {
		owned := false
		if viewerID != "" {
			owned, err = ownership.Owned(database.DB, viewerID, records[i].ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ownership"})
				return
			}
		}
		if ownedFilter != nil && owned != *ownedFilter {
			continue
		}
		out = append(out, ToItemResponse(&records[i], owned))
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /items/:id
// ------------------------------
func GetItem(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	it, err := getItem(database.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	cat, err := parentCatalog(database.DB, it.CatalogID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent catalog not found"})
		return
	}
	if !catalogs.CanModify(cat, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	owned, err := ownership.Owned(database.DB, userID, it.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ownership"})
		return
	}

	c.JSON(http.StatusOK, ToItemResponse(it, owned))
}

// ------------------------------
// POST /items
// ------------------------------
func CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	cat, err := parentCatalog(database.DB, req.CatalogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return
	}
	if !catalogs.CanModify(cat, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	record := items.Item{
		ID:          uuid.NewString(),
		CatalogID:   cat.ID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		UserFields:  toUserFields(req.UserFields),
	}

	// item plus the creator's default ownership row land together
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		_, err := ownership.GetOrCreate(tx, userID, record.ID)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, ToItemResponse(&record, false))
}

// ------------------------------
// PUT /items/:id
// ------------------------------
func UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	it, err := getItem(database.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	cat, err := parentCatalog(database.DB, it.CatalogID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent catalog not found"})
		return
	}
	if !catalogs.CanModify(cat, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.UserFields != nil {
		updates["user_fields"] = toUserFields(*req.UserFields)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			updates["updated_at"] = time.Now()
			if err := tx.Model(&items.Item{}).
				Where("item_id = ?", it.ID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Owned != nil {
			s, err := ownership.GetOrCreate(tx, userID, it.ID)
			if err != nil {
				return err
			}
			if s.Owned != *req.Owned {
				if err := tx.Model(&ownership.Status{}).Where("id = ?", s.ID).
					Updates(map[string]interface{}{"owned": *req.Owned, "updated_at": time.Now()}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	it, err = getItem(database.DB, it.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload item"})
		return
	}
	owned, err := ownership.Owned(database.DB, userID, it.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ownership"})
		return
	}

	c.JSON(http.StatusOK, ToItemResponse(it, owned))
}

// ------------------------------
// DELETE /items/:id
// ------------------------------
func DeleteItem(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	it, err := getItem(database.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	cat, err := parentCatalog(database.DB, it.CatalogID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent catalog not found"})
		return
	}
	if !catalogs.CanModify(cat, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", it.ID).Delete(&ownership.Status{}).Error; err != nil {
			return err
		}
		return tx.Where("item_id = ?", it.ID).Delete(&items.Item{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// ------------------------------
// PATCH /items/:id/toggle-owned
// ------------------------------
func ToggleOwned(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	it, err := getItem(database.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	var status *ownership.Status
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		status, err = ownership.Toggle(tx, userID, it.ID)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle ownership"})
		return
	}

	c.JSON(http.StatusOK, ToItemResponse(it, status.Owned))
}
