package items

import (
	"catalog-app/internal/domain/items"
)

type ItemResponse struct {
	ItemID      string            `json:"item_id"`
	CatalogID   string            `json:"catalog_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ImageURL    *string           `json:"image_url,omitempty"`
	Owned       bool              `json:"owned"`
	UserFields  map[string]string `json:"user_fields"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

func ToItemResponse(it *items.Item, owned bool) ItemResponse {
	fields := make(map[string]string, len(it.UserFields))
	for k, v := range it.UserFields {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	return ItemResponse{
		ItemID:      it.ID,
		CatalogID:   it.CatalogID,
		Name:        it.Name,
		Description: it.Description,
		ImageURL:    it.ImageURL,
		Owned:       owned,
		UserFields:  fields,
		CreatedAt:   it.CreatedAt.Format("2006-01-02T15:04:05.999999"),
		UpdatedAt:   it.UpdatedAt.Format("2006-01-02T15:04:05.999999"),
	}
}
