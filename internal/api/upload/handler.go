package upload

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog-app/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func mustUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// ------------------------------
// POST /upload/file
// ------------------------------
// Stores an image on the local filesystem under the caller's namespace and
// returns a relative URL. Catalogs and items only echo this URL back.
func UploadFile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	datePrefix := time.Now().Format("2006/01/02")
	fileName := uuid.NewString() + ext

	dir := filepath.Join(config.UPLOAD_DIR, "images", userID, datePrefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}

	if err := c.SaveUploadedFile(file, filepath.Join(dir, fileName)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": "",
		"file_url":   fmt.Sprintf("/uploads/images/%s/%s/%s", userID, datePrefix, fileName),
	})
}

// ------------------------------
// DELETE /upload/file?file_url=...
// ------------------------------
func DeleteFile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	fileURL := c.Query("file_url")
	if fileURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_url is required"})
		return
	}

	// only files inside the caller's own namespace may be deleted
	prefix := fmt.Sprintf("/uploads/images/%s/", userID)
	if !strings.HasPrefix(fileURL, prefix) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No permission to delete this file"})
		return
	}

	// resolve the path and re-check containment: a ".." segment in the URL
	// satisfies the prefix check above but escapes the namespace on disk
	userRoot := filepath.Join(config.UPLOAD_DIR, "images", userID)
	path := filepath.Join(config.UPLOAD_DIR, strings.TrimPrefix(fileURL, "/uploads/"))
	rel, err := filepath.Rel(userRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No permission to delete this file"})
		return
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if err := os.Remove(path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
