package saved

type SaveCatalogRequest struct {
	CatalogID string `json:"catalog_id" binding:"required"`
}
