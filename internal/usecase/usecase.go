package usecase

import (
	"context"

	"github.com/aradovic23/drinks-viewer/internal/domain"
)

// CatalogUC — серверная поверхность каталога, которую потребляет клиентский слой.
type CatalogUC interface {
	ListProducts(ctx context.Context, role domain.ViewerRole) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	HideProduct(ctx context.Context, id string) (*domain.Product, error)
	RecommendProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateCategory(ctx context.Context, req *CreateCategoryReq) (*domain.Category, error)
	SearchImages(ctx context.Context, term string) ([]domain.Image, error)
}
