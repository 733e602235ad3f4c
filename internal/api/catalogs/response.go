package catalogs

import (
	"catalog-app/internal/domain/catalogs"
)

type CatalogResponse struct {
	CatalogID    string   `json:"catalog_id"`
	UserID       string   `json:"user_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Visibility   string   `json:"visibility"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`

	ItemCount      int     `json:"item_count"`
	OwnedCount     int     `json:"owned_count"`
	CompletionRate float64 `json:"completion_rate"`

	OriginalCatalogID *string `json:"original_catalog_id,omitempty"`
	CreatorNickname   *string `json:"creator_nickname,omitempty"`
	IsSaved           bool    `json:"is_saved"`
}

func ToCatalogResponse(c *catalogs.Catalog, stats catalogs.Stats) CatalogResponse {
	tags := []string(c.Tags)
	if tags == nil {
		tags = []string{}
	}
	return CatalogResponse{
		CatalogID:      c.ID,
		UserID:         c.UserID,
		Title:          c.Title,
		Description:    c.Description,
		Category:       c.Category,
		Tags:           tags,
		Visibility:     c.Visibility,
		ThumbnailURL:   c.ThumbnailURL,
		CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05.999999"),
		UpdatedAt:      c.UpdatedAt.Format("2006-01-02T15:04:05.999999"),
		ItemCount:      stats.ItemCount,
		OwnedCount:     stats.OwnedCount,
		CompletionRate: stats.CompletionRate,
	}
}
