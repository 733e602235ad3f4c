package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog-app/config"
	"catalog-app/database"
	"catalog-app/internal/domain/catalogs"
	"catalog-app/internal/domain/items"
	"catalog-app/internal/domain/ownership"
	"catalog-app/internal/domain/saved"
)

const testSecret = "functional-test-secret"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = testSecret

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogs.Catalog{},
		&items.Item{},
		&ownership.Status{},
		&saved.CatalogLink{},
	))
	database.DB = db

	r := gin.New()
	RegisterRoutes(r)
	return r
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, r *gin.Engine, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, userID))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/catalogs", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/catalogs", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCatalogLifecycleOverHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/catalogs", "alice", gin.H{
		"title":       "Coins",
		"description": "world coins",
		"tags":        []string{"metal"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		CatalogID  string `json:"catalog_id"`
		Category   string `json:"category"`
		Visibility string `json:"visibility"`
		ItemCount  int    `json:"item_count"`
	}
	decodeBody(t, w, &created)
	require.NotEmpty(t, created.CatalogID)
	require.Equal(t, catalogs.DefaultCategory, created.Category)
	require.Equal(t, catalogs.VisibilityPublic, created.Visibility)
	require.Zero(t, created.ItemCount)

	// attach an item
	w = doJSON(t, r, http.MethodPost, "/items", "alice", gin.H{
		"catalog_id": created.CatalogID,
		"name":       "1921 Morgan",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item struct {
		ItemID string `json:"item_id"`
		Owned  bool   `json:"owned"`
	}
	decodeBody(t, w, &item)
	require.False(t, item.Owned)

	// toggle ownership, stats follow
	w = doJSON(t, r, http.MethodPatch, "/items/"+item.ItemID+"/toggle-owned", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/catalogs/"+created.CatalogID, "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		ItemCount      int     `json:"item_count"`
		OwnedCount     int     `json:"owned_count"`
		CompletionRate float64 `json:"completion_rate"`
	}
	decodeBody(t, w, &got)
	require.Equal(t, 1, got.ItemCount)
	require.Equal(t, 1, got.OwnedCount)
	require.InDelta(t, 100.0, got.CompletionRate, 0.001)

	// another user cannot update it
	w = doJSON(t, r, http.MethodPut, "/catalogs/"+created.CatalogID, "bob", gin.H{"title": "mine now"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/catalogs/"+created.CatalogID, "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/catalogs/"+created.CatalogID, "alice", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrivateCatalogHiddenFromOthers(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/catalogs", "alice", gin.H{
		"title":      "Secret",
		"visibility": "private",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		CatalogID string `json:"catalog_id"`
	}
	decodeBody(t, w, &created)

	w = doJSON(t, r, http.MethodGet, "/catalogs/"+created.CatalogID, "bob", nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// item listing of a private catalog: 403 for others, 401 anonymous
	w = doJSON(t, r, http.MethodGet, "/items/catalog/"+created.CatalogID, "bob", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodGet, "/items/catalog/"+created.CatalogID, "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSaveUnsaveOverHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/catalogs", "alice", gin.H{"title": "Stamps"})
	require.Equal(t, http.StatusCreated, w.Code)
	var original struct {
		CatalogID string `json:"catalog_id"`
	}
	decodeBody(t, w, &original)

	w = doJSON(t, r, http.MethodPost, "/items", "alice", gin.H{
		"catalog_id": original.CatalogID,
		"name":       "Penny Black",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// saving your own catalog is rejected
	w = doJSON(t, r, http.MethodPost, "/user-catalogs/save-catalog", "alice", gin.H{"catalog_id": original.CatalogID})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/user-catalogs/save-catalog", "bob", gin.H{"catalog_id": original.CatalogID})
	require.Equal(t, http.StatusOK, w.Code)
	var savedResp struct {
		CopiedCatalogID   string `json:"copied_catalog_id"`
		OriginalCatalogID string `json:"original_catalog_id"`
	}
	decodeBody(t, w, &savedResp)
	require.Equal(t, original.CatalogID, savedResp.OriginalCatalogID)
	require.NotEmpty(t, savedResp.CopiedCatalogID)

	w = doJSON(t, r, http.MethodPost, "/user-catalogs/save-catalog", "bob", gin.H{"catalog_id": original.CatalogID})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/user-catalogs/check-saved/"+original.CatalogID, "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var checkSaved struct {
		IsSaved         bool    `json:"is_saved"`
		CopiedCatalogID *string `json:"copied_catalog_id"`
	}
	decodeBody(t, w, &checkSaved)
	require.True(t, checkSaved.IsSaved)
	require.NotNil(t, checkSaved.CopiedCatalogID)
	require.Equal(t, savedResp.CopiedCatalogID, *checkSaved.CopiedCatalogID)

	// my-catalogs shows the copy with its provenance
	w = doJSON(t, r, http.MethodGet, "/user-catalogs/my-catalogs", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []struct {
		CatalogID         string  `json:"catalog_id"`
		Visibility        string  `json:"visibility"`
		OriginalCatalogID *string `json:"original_catalog_id"`
		ItemCount         int     `json:"item_count"`
		OwnedCount        int     `json:"owned_count"`
	}
	decodeBody(t, w, &mine)
	require.Len(t, mine, 1)
	require.Equal(t, savedResp.CopiedCatalogID, mine[0].CatalogID)
	require.Equal(t, catalogs.VisibilityPrivate, mine[0].Visibility)
	require.NotNil(t, mine[0].OriginalCatalogID)
	require.Equal(t, original.CatalogID, *mine[0].OriginalCatalogID)
	require.Equal(t, 1, mine[0].ItemCount)
	require.Zero(t, mine[0].OwnedCount)

	// alice cannot unsave bob's copy
	w = doJSON(t, r, http.MethodDelete, "/user-catalogs/unsave-catalog/"+savedResp.CopiedCatalogID, "alice", nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/user-catalogs/unsave-catalog/"+savedResp.CopiedCatalogID, "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/user-catalogs/check-saved/"+original.CatalogID, "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &checkSaved)
	require.False(t, checkSaved.IsSaved)

	w = doJSON(t, r, http.MethodGet, "/user-catalogs/my-catalogs", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine = nil
	decodeBody(t, w, &mine)
	require.Empty(t, mine)
}

func TestPublicListingAnonymous(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/catalogs", "alice", gin.H{"title": "Vinyl"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/catalogs", "alice", gin.H{
		"title":      "Hidden",
		"visibility": "private",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/catalogs/public", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing []struct {
		Title      string `json:"title"`
		Visibility string `json:"visibility"`
	}
	decodeBody(t, w, &listing)
	require.Len(t, listing, 1)
	require.Equal(t, "Vinyl", listing[0].Title)
	require.Equal(t, catalogs.VisibilityPublic, listing[0].Visibility)
}
