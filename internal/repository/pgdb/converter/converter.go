package converter

import (
	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
	ToArrEntity(models []CategoryModel) []domain.Category
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:            entity.ID,
		Title:         entity.Title,
		Price:         entity.Price,
		Volume:        strToPtr(entity.Volume),
		Tag:           strToPtr(entity.Tag),
		Type:          strToPtr(entity.Type),
		Description:   strToPtr(entity.Description),
		ImageURL:      strToPtr(entity.ImageURL),
		CategoryID:    entity.CategoryID,
		IsHidden:      entity.IsHidden,
		IsRecommended: entity.IsRecommended,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:            model.ID,
		Title:         model.Title,
		Price:         model.Price,
		Volume:        ptrToStr(model.Volume),
		Tag:           ptrToStr(model.Tag),
		Type:          ptrToStr(model.Type),
		Description:   ptrToStr(model.Description),
		ImageURL:      ptrToStr(model.ImageURL),
		CategoryID:    model.CategoryID,
		IsHidden:      model.IsHidden,
		IsRecommended: model.IsRecommended,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func (c *ProductConverterImpl) ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

type CategoryConverterImpl struct{}

func NewCategoryConverterImpl() *CategoryConverterImpl {
	return &CategoryConverterImpl{}
}

func (c *CategoryConverterImpl) ToModel(entity *domain.Category) *CategoryModel {
	return &CategoryModel{
		ID:                  entity.ID,
		Name:                entity.Name,
		SupportsType:        entity.SupportsType,
		SupportsDescription: entity.SupportsDescription,
		DefaultImageURL:     strToPtr(entity.DefaultImageURL),
		CreatedAt:           entity.CreatedAt,
		UpdatedAt:           entity.UpdatedAt,
	}
}

func (c *CategoryConverterImpl) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:                  model.ID,
		Name:                model.Name,
		SupportsType:        model.SupportsType,
		SupportsDescription: model.SupportsDescription,
		DefaultImageURL:     ptrToStr(model.DefaultImageURL),
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

func (c *CategoryConverterImpl) ToArrEntity(models []CategoryModel) []domain.Category {
	result := make([]domain.Category, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		ProductID:   entity.ProductID,
		EventType:   string(entity.EventType),
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		ProductID:   model.ProductID,
		EventType:   usecase.OutboxEventType(model.EventType),
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}

func strToPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func ptrToStr(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
