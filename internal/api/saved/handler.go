package saved

import (
	"errors"
	"net/http"

	"catalog-app/database"
	catalogsapi "catalog-app/internal/api/catalogs"
	"catalog-app/internal/domain/catalogs"
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
// GET /user-catalogs/my-catalogs
// ------------------------------
// Everything the caller owns — created originals and saved copies alike —
// newest first, each decorated with its provenance and the caller's own
// collection progress.
func MyCatalogs(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var records []catalogs.Catalog
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalogs"})
		return
	}

	var links []saved.CatalogLink
	if err := database.DB.Where("user_id = ?", userID).Find(&links).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved links"})
		return
	}
	originalByCopy := make(map[string]string, len(links))
	for i := range links {
		if links[i].CopiedCatalogID != nil {
			originalByCopy[*links[i].CopiedCatalogID] = links[i].OriginalCatalogID
		}
	}

	out := make([]catalogsapi.CatalogResponse, 0, len(records))
	for i := range records {
		stats, err := catalogs.CalculateStats(database.DB, records[i].ID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		resp := catalogsapi.ToCatalogResponse(&records[i], stats)
		if originalID, isCopy := originalByCopy[records[i].ID]; isCopy {
			resp.OriginalCatalogID = &originalID
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /user-catalogs/save-catalog
// ------------------------------
func SaveCatalog(c *gin.Context) {
	var req SaveCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	copiedCatalogID, err := copyCatalog(database.DB, userID, req.CatalogID)
	if err != nil {
		switch {
		case errors.Is(err, catalogs.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog not found"})
		case errors.Is(err, ErrOwnCatalog):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot save your own catalog"})
		case errors.Is(err, ErrAlreadySaved):
			c.JSON(http.StatusConflict, gin.H{"error": "Catalog already saved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save catalog"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "Catalog saved",
		"copied_catalog_id":   copiedCatalogID,
		"original_catalog_id": req.CatalogID,
	})
}

// ------------------------------
// DELETE /user-catalogs/unsave-catalog/:id
// ------------------------------
// :id is the COPIED catalog's id.
func UnsaveCatalog(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := removeCopiedCatalog(database.DB, userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, catalogs.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "No permission to delete this catalog"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove catalog"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catalog removed"})
}

// ------------------------------
// GET /user-catalogs/check-ownership/:id
// ------------------------------
func CheckOwnership(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	catalogID := c.Param("id")

	var cat catalogs.Catalog
	err := database.DB.
		Where("catalog_id = ? AND user_id = ?", catalogID, userID).
		First(&cat).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check ownership"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"catalog_id": catalogID,
		"is_owned":   err == nil,
		"user_id":    userID,
	})
}

// ------------------------------
// GET /user-catalogs/check-saved/:id
// ------------------------------
// :id is the ORIGINAL catalog's id.
func CheckSaved(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	originalCatalogID := c.Param("id")

	link, err := linkFor(database.DB, userID, originalCatalogID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check saved state"})
		return
	}

	resp := gin.H{
		"original_catalog_id": originalCatalogID,
		"is_saved":            link != nil,
		"copied_catalog_id":   nil,
		"user_id":             userID,
	}
	if link != nil {
		resp["copied_catalog_id"] = link.CopiedCatalogID
	}
	c.JSON(http.StatusOK, resp)
}
