package usecase

import (
	"context"

	"github.com/aradovic23/drinks-viewer/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, req *UpdateProductReq) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
	SetHidden(ctx context.Context, id string) (*domain.Product, error)
	SetRecommended(ctx context.Context, id string) (*domain.Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

type CacheRepository interface {
	GetCatalog(ctx context.Context) (*CatalogSnapshot, error)
	SetCatalog(ctx context.Context, snapshot *CatalogSnapshot) error
	DeleteCatalog(ctx context.Context) error
}

type OutboxRepository interface {
	Add(ctx context.Context, event *OutboxEvent) error
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.StoredImage) (string, error)
	Delete(ctx context.Context, key string) error
}
