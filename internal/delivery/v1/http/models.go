package http

import (
	"time"

	"github.com/aradovic23/drinks-viewer/internal/domain"
)

// ProductResponse — JSON-представление продукта в ответах API.
type ProductResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Price         string     `json:"price"`
	Volume        string     `json:"volume,omitempty"`
	Tag           string     `json:"tag,omitempty"`
	Type          string     `json:"type,omitempty"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	CategoryID    int64      `json:"categoryId"`
	IsHidden      bool       `json:"isHidden"`
	IsRecommended bool       `json:"isRecommended"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// CategoryResponse — JSON-представление категории.
type CategoryResponse struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	SupportsType        bool   `json:"supportsType"`
	SupportsDescription bool   `json:"supportsDescription"`
	DefaultImageURL     string `json:"defaultImageUrl,omitempty"`
}

// ImageResponse — результат поиска изображения.
type ImageResponse struct {
	ID           string `json:"id"`
	ThumbnailURL string `json:"thumbnailUrl"`
	FullURL      string `json:"fullUrl"`
}

// CreateProductRequest — тело запроса на создание продукта.
type CreateProductRequest struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	Volume      string `json:"volume"`
	Tag         string `json:"tag"`
	Type        string `json:"type"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	CategoryID  int64  `json:"categoryId"`
}

// UpdateProductRequest — тело частичного обновления: отсутствующие поля не меняются.
type UpdateProductRequest struct {
	Title       *string `json:"title"`
	Price       *string `json:"price"`
	Volume      *string `json:"volume"`
	Tag         *string `json:"tag"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	CategoryID  *int64  `json:"categoryId"`
}

// CreateCategoryRequest — тело запроса на создание категории.
type CreateCategoryRequest struct {
	Name                string `json:"name"`
	SupportsType        bool   `json:"supportsType"`
	SupportsDescription bool   `json:"supportsDescription"`
	DefaultImageURL     string `json:"defaultImageUrl"`
}

func toProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Title:         p.Title,
		Price:         p.Price,
		Volume:        p.Volume,
		Tag:           p.Tag,
		Type:          p.Type,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		CategoryID:    p.CategoryID,
		IsHidden:      p.IsHidden,
		IsRecommended: p.IsRecommended,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, *toProductResponse(&products[i]))
	}
	return result
}

func toCategoryResponse(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:                  c.ID,
		Name:                c.Name,
		SupportsType:        c.SupportsType,
		SupportsDescription: c.SupportsDescription,
		DefaultImageURL:     c.DefaultImageURL,
	}
}

func toCategoryResponses(categories []domain.Category) []CategoryResponse {
	result := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, *toCategoryResponse(&categories[i]))
	}
	return result
}

func toImageResponses(images []domain.Image) []ImageResponse {
	result := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		result = append(result, ImageResponse{
			ID:           img.ID,
			ThumbnailURL: img.ThumbnailURL,
			FullURL:      img.FullURL,
		})
	}
	return result
}
