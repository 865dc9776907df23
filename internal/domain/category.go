package domain

import "time"

// Category описывает категорию продукта.
// Флаги Supports* определяют, какие необязательные поля формы доступны продуктам категории.
type Category struct {
	ID                  int64
	Name                string
	SupportsType        bool
	SupportsDescription bool
	DefaultImageURL     string
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

func NewCategory(name string, supportsType, supportsDescription bool, defaultImageURL string) *Category {
	return &Category{
		Name:                name,
		SupportsType:        supportsType,
		SupportsDescription: supportsDescription,
		DefaultImageURL:     defaultImageURL,
	}
}
