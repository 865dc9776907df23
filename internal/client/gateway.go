// Package client реализует клиентский слой каталога: кэшируемый снимок
// категорий и продуктов, фильтрацию, формы создания/редактирования и
// подтверждаемые модерационные действия поверх абстрактного шлюза.
package client

import (
	"context"

	"github.com/aradovic23/drinks-viewer/internal/domain"
)

// Gateway — поверхность бэкенда, которую потребляет клиентский слой.
// Реализация по HTTP живёт в подпакете rest.
type Gateway interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, payload *ProductPayload) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch *ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	HideProduct(ctx context.Context, id string) (*domain.Product, error)
	RecommendProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateCategory(ctx context.Context, payload *CategoryPayload) (*domain.Category, error)
	SearchImages(ctx context.Context, term string) ([]domain.Image, error)
}

// ProductPayload — данные формы создания продукта.
// Перед отправкой проходит через FormBinder.
type ProductPayload struct {
	Title       string
	Price       string
	Volume      string
	Tag         string
	Type        string
	Description string
	ImageURL    string
	CategoryID  int64
}

// ProductPatch — частичное обновление: nil означает «поле не трогать».
type ProductPatch struct {
	Title       *string
	Price       *string
	Volume      *string
	Tag         *string
	Type        *string
	Description *string
	ImageURL    *string
	CategoryID  *int64
}

// CategoryPayload — данные формы создания категории.
type CategoryPayload struct {
	Name                string
	SupportsType        bool
	SupportsDescription bool
	DefaultImageURL     string
}
