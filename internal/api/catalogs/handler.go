package catalogs

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"catalog-app/config"
	"catalog-app/database"
	"catalog-app/internal/clients/userapi"
	"catalog-app/internal/domain/catalogs"
	"catalog-app/internal/domain/saved"

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

var (
	userClient     *userapi.Client
	userClientOnce sync.Once
)

func userLookup() *userapi.Client {
	userClientOnce.Do(func() {
		userClient = userapi.New(config.USER_API_URL)
	})
	return userClient
}

// ------------------------------
// GET /catalogs
// ------------------------------
func ListCatalogs(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var records []catalogs.Catalog
	err := userCatalogsQuery(database.DB, userID, c.Query("category"), c.Query("visibility")).
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalogs"})
		return
	}

	out := make([]CatalogResponse, 0, len(records))
	for i := range records {
		stats, err := catalogs.CalculateStats(database.DB, records[i].ID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		out = append(out, ToCatalogResponse(&records[i], stats))
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /catalogs/public
// ------------------------------
// Stats on a public listing are the CREATOR's collection progress, not the
// visitor's — a visitor has no ownership rows for a catalog they have not
// saved yet.
func ListPublicCatalogs(c *gin.Context) {
	viewerID := c.GetString("user_id") // optional, empty when anonymous

	var records []catalogs.Catalog
	err := publicCatalogsQuery(database.DB, c.Query("category"), viewerID).
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalogs"})
		return
	}

	creatorIDs := make([]string, 0, len(records))
	for i := range records {
		creatorIDs = append(creatorIDs, records[i].UserID)
	}
	nicknames := userLookup().Nicknames(creatorIDs)

	out := make([]CatalogResponse, 0, len(records))
	for i := range records {
		stats, err := catalogs.CalculateStats(database.DB, records[i].ID, records[i].UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		resp := ToCatalogResponse(&records[i], stats)
		if nickname, ok := nicknames[records[i].UserID]; ok {
			resp.CreatorNickname = &nickname
		}
		if viewerID != "" {
			var link saved.CatalogLink
			err := database.DB.
				Where("user_id = ? AND original_catalog_id = ?", viewerID, records[i].ID).
				First(&link).Error
			if err == nil {
				resp.IsSaved = true
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check saved state"})
				return
			}
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /catalogs/:id
// ------------------------------
func GetCatalog(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	record, err := getCatalog(database.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, catalogs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return
	}

	if !catalogs.CanView(record, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	stats, err := catalogs.CalculateStats(database.DB, record.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, ToCatalogResponse(record, stats))
}

// ------------------------------
// POST /catalogs
// ------------------------------
func CreateCatalog(c *gin.Context) {
	var req CreateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if req.Category == "" {
		req.Category = catalogs.DefaultCategory
	}
	if req.Visibility == "" {
		req.Visibility = catalogs.VisibilityPublic
	}
	if req.Visibility != catalogs.VisibilityPublic && req.Visibility != catalogs.VisibilityPrivate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visibility must be public or private"})
		return
	}

	record := catalogs.Catalog{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Tags:         datatypes.NewJSONSlice(req.Tags),
		Visibility:   req.Visibility,
		ThumbnailURL: req.ThumbnailURL,
	}

	if err := database.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create catalog"})
		return
	}

	c.JSON(http.StatusCreated, ToCatalogResponse(&record, catalogs.Stats{}))
}

// ------------------------------
// PUT /catalogs/:id
// ------------------------------
func UpdateCatalog(c *gin.Context) {
	var req UpdateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	record, err := getCatalog(database.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, catalogs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return
	}
	if !catalogs.CanModify(record, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = datatypes.NewJSONSlice(*req.Tags)
	}
	if req.Visibility != nil {
		if *req.Visibility != catalogs.VisibilityPublic && *req.Visibility != catalogs.VisibilityPrivate {
			c.JSON(http.StatusBadRequest, gin.H{"error": "visibility must be public or private"})
			return
		}
		updates["visibility"] = *req.Visibility
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := database.DB.Model(&catalogs.Catalog{}).
			Where("catalog_id = ?", record.ID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update catalog"})
			return
		}
	}

	record, err = getCatalog(database.DB, record.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload catalog"})
		return
	}

	stats, err := catalogs.CalculateStats(database.DB, record.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, ToCatalogResponse(record, stats))
}

// ------------------------------
// DELETE /catalogs/:id
// ------------------------------
func DeleteCatalog(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	record, err := getCatalog(database.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, catalogs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return
	}
	if !catalogs.CanModify(record, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return catalogs.DeleteCascade(tx, record.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catalog deleted"})
}
