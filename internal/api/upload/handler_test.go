package upload

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"catalog-app/config"
)

func setupUploadRouter(t *testing.T, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.UPLOAD_DIR = t.TempDir()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.DELETE("/upload/file", DeleteFile)
	return r
}

func writeStoredFile(t *testing.T, relPath string) string {
	t.Helper()
	path := filepath.Join(config.UPLOAD_DIR, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func deleteRequest(r *gin.Engine, fileURL string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/upload/file?file_url="+url.QueryEscape(fileURL), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeleteFile_OwnNamespace(t *testing.T) {
	r := setupUploadRouter(t, "alice")
	path := writeStoredFile(t, "images/alice/2026/01/02/pic.png")

	w := deleteRequest(r, "/uploads/images/alice/2026/01/02/pic.png")
	require.Equal(t, http.StatusOK, w.Code)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestDeleteFile_OtherUsersNamespaceForbidden(t *testing.T) {
	r := setupUploadRouter(t, "alice")
	path := writeStoredFile(t, "images/bob/2026/01/02/pic.png")

	w := deleteRequest(r, "/uploads/images/bob/2026/01/02/pic.png")
	require.Equal(t, http.StatusForbidden, w.Code)

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestDeleteFile_TraversalOutOfNamespaceForbidden(t *testing.T) {
	r := setupUploadRouter(t, "alice")

	// files outside alice's namespace at increasing depths
	inUploads := writeStoredFile(t, "stray.txt")
	inImages := writeStoredFile(t, "images/bob/pic.png")
	outside := filepath.Join(filepath.Dir(config.UPLOAD_DIR), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	for _, fileURL := range []string{
		"/uploads/images/alice/../../../victim.txt",
		"/uploads/images/alice/../../stray.txt",
		"/uploads/images/alice/../bob/pic.png",
		"/uploads/images/alice/..",
	} {
		w := deleteRequest(r, fileURL)
		require.Equal(t, http.StatusForbidden, w.Code, "url %q", fileURL)
	}

	for _, path := range []string{inUploads, inImages, outside} {
		_, err := os.Stat(path)
		require.NoError(t, err, "path %q", path)
	}
}

func TestDeleteFile_MissingFile(t *testing.T) {
	r := setupUploadRouter(t, "alice")

	w := deleteRequest(r, "/uploads/images/alice/2026/01/02/gone.png")
	require.Equal(t, http.StatusNotFound, w.Code)
}
