package items

// ---------- requests

type CreateItemRequest struct {
	CatalogID   string            `json:"catalog_id" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	ImageURL    *string           `json:"image_url"`
	UserFields  map[string]string `json:"user_fields"`
}

// UpdateItemRequest patches only the fields present in the payload.
type UpdateItemRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	ImageURL    *string            `json:"image_url"`
	Owned       *bool              `json:"owned"`
	UserFields  *map[string]string `json:"user_fields"`
}
