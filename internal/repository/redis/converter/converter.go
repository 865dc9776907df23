package converter

import (
	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/internal/usecase"
)

// CatalogConverter преобразует снапшот каталога между usecase и Redis-моделью.
type CatalogConverter interface {
	ToRedisModel(snapshot *usecase.CatalogSnapshot) *CatalogRedisModel
	ToUseCase(model *CatalogRedisModel) *usecase.CatalogSnapshot
}

type CatalogConverterImpl struct{}

func NewCatalogConverterImpl() *CatalogConverterImpl {
	return &CatalogConverterImpl{}
}

func (c *CatalogConverterImpl) ToRedisModel(snapshot *usecase.CatalogSnapshot) *CatalogRedisModel {
	categories := make([]CategoryRedisModel, 0, len(snapshot.Categories))
	for _, category := range snapshot.Categories {
		categories = append(categories, CategoryRedisModel{
			ID:                  category.ID,
			Name:                category.Name,
			SupportsType:        category.SupportsType,
			SupportsDescription: category.SupportsDescription,
			DefaultImageURL:     category.DefaultImageURL,
		})
	}

	products := make([]ProductRedisModel, 0, len(snapshot.Products))
	for _, product := range snapshot.Products {
		products = append(products, ProductRedisModel{
			ID:            product.ID,
			Title:         product.Title,
			Price:         product.Price,
			Volume:        product.Volume,
			Tag:           product.Tag,
			Type:          product.Type,
			Description:   product.Description,
			ImageURL:      product.ImageURL,
			CategoryID:    product.CategoryID,
			IsHidden:      product.IsHidden,
			IsRecommended: product.IsRecommended,
		})
	}

	return &CatalogRedisModel{
		Categories: categories,
		Products:   products,
	}
}

func (c *CatalogConverterImpl) ToUseCase(model *CatalogRedisModel) *usecase.CatalogSnapshot {
	categories := make([]domain.Category, 0, len(model.Categories))
	for _, category := range model.Categories {
		categories = append(categories, domain.Category{
			ID:                  category.ID,
			Name:                category.Name,
			SupportsType:        category.SupportsType,
			SupportsDescription: category.SupportsDescription,
			DefaultImageURL:     category.DefaultImageURL,
		})
	}

	products := make([]domain.Product, 0, len(model.Products))
	for _, product := range model.Products {
		products = append(products, domain.Product{
			ID:            product.ID,
			Title:         product.Title,
			Price:         product.Price,
			Volume:        product.Volume,
			Tag:           product.Tag,
			Type:          product.Type,
			Description:   product.Description,
			ImageURL:      product.ImageURL,
			CategoryID:    product.CategoryID,
			IsHidden:      product.IsHidden,
			IsRecommended: product.IsRecommended,
		})
	}

	return usecase.NewCatalogSnapshot(categories, products)
}
