package converter

// CatalogRedisModel — сериализованная в JSON пара (категории, продукты) для кэша.
type CatalogRedisModel struct {
	Categories []CategoryRedisModel `json:"categories"`
	Products   []ProductRedisModel  `json:"products"`
}

type CategoryRedisModel struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	SupportsType        bool   `json:"supports_type"`
	SupportsDescription bool   `json:"supports_description"`
	DefaultImageURL     string `json:"default_image_url,omitempty"`
}

type ProductRedisModel struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Price         string `json:"price"`
	Volume        string `json:"volume,omitempty"`
	Tag           string `json:"tag,omitempty"`
	Type          string `json:"type,omitempty"`
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	CategoryID    int64  `json:"category_id"`
	IsHidden      bool   `json:"is_hidden"`
	IsRecommended bool   `json:"is_recommended"`
}
