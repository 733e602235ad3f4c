package catalogs

// ---------- requests

type CreateCatalogRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Visibility   string   `json:"visibility"`
	ThumbnailURL *string  `json:"thumbnail_url"`
}

// UpdateCatalogRequest patches only the fields present in the payload.
// A nil pointer means "leave untouched", not "clear".
type UpdateCatalogRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	Tags         *[]string `json:"tags"`
	Visibility   *string   `json:"visibility"`
	ThumbnailURL *string   `json:"thumbnail_url"`
}
