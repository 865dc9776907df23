package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CatalogUseCase реализует бизнес-логику каталога и модерационных операций.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	dbPool       transaction.Transactional
	imagesInfra  ImagesInfra
	imageSearch  ImageSearchInfra
	logger       logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	imagesInfra ImagesInfra,
	imageSearch ImageSearchInfra,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		dbPool:       dbPool,
		imagesInfra:  imagesInfra,
		imageSearch:  imageSearch,
		logger:       logger,
	}
}

// ListProducts возвращает продукты каталога.
// Скрытые продукты видны только администраторам — фильтрация происходит здесь,
// до того как список попадёт к клиентскому слою.
func (c *CatalogUseCase) ListProducts(ctx context.Context, role domain.ViewerRole) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	snapshot, err := c.loadCatalog(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if role.IsAdmin() {
		return snapshot.Products, nil
	}

	visible := make([]domain.Product, 0, len(snapshot.Products))
	for _, product := range snapshot.Products {
		if !product.IsHidden {
			visible = append(visible, product)
		}
	}

	return visible, nil
}

// ListCategories возвращает все категории каталога.
func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogUseCase.ListCategories"

	snapshot, err := c.loadCatalog(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return snapshot.Categories, nil
}

// GetProduct возвращает продукт по идентификатору.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// CreateProduct создаёт продукт: валидация, отбрасывание полей, которые не поддерживает
// категория, зеркалирование выбранного изображения и запись события в outbox — всё в одной
// транзакции. При откате уже зеркалированные изображения зачищаются в фоне.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.CreateProduct"

	var err error
	if err = c.validateCreate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	category, err := c.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	applyCategoryCapabilities(req, category)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var mirroredKey string
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if mirroredKey != "" {
				c.logger.Warnf(
					"Cleaning up orphaned image after transaction failure. product_title: %s, error: %v",
					req.Title,
					e.Wrap(op, err),
				)
				c.imagesInfra.CleanupImages([]string{mirroredKey})
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if req.ImageURL != "" {
		mirrored, mirrorErr := c.imagesInfra.MirrorImage(ctx, NewMirrorImageReq(req.ImageURL, req.Title))
		if mirrorErr != nil {
			err = mirrorErr
			return nil, e.Wrap(op, err)
		}
		req.ImageURL = mirrored.PublicURL
		mirroredKey = mirrored.ObjectKey
	}

	product := newProductFromCreateReq(req)
	product, err = c.productRepo.Create(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = c.addOutboxEvent(ctx, OutboxProductCreated, product); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	c.invalidateCatalogCache(ctx, op)

	return product, nil
}

// UpdateProduct частично обновляет продукт. Поля, не поддерживаемые целевой категорией,
// игнорируются, как и в форме редактирования.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.UpdateProduct"

	var err error
	if err = c.validateUpdate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	current, err := c.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	categoryID := current.CategoryID
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	category, err := c.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !category.SupportsType {
		req.Type = nil
	}
	if !category.SupportsDescription {
		req.Description = nil
		req.ImageURL = nil
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var mirroredKey string
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if mirroredKey != "" {
				c.imagesInfra.CleanupImages([]string{mirroredKey})
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if req.ImageURL != nil && *req.ImageURL != "" {
		title := current.Title
		if req.Title != nil {
			title = *req.Title
		}
		mirrored, mirrorErr := c.imagesInfra.MirrorImage(ctx, NewMirrorImageReq(*req.ImageURL, title))
		if mirrorErr != nil {
			err = mirrorErr
			return nil, e.Wrap(op, err)
		}
		req.ImageURL = &mirrored.PublicURL
		mirroredKey = mirrored.ObjectKey
	}

	product, err := c.productRepo.Update(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = c.addOutboxEvent(ctx, OutboxProductUpdated, product); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	c.invalidateCatalogCache(ctx, op)

	return product, nil
}

// DeleteProduct удаляет продукт.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "CatalogUseCase.DeleteProduct"

	_, err := c.mutateProduct(ctx, op, OutboxProductDeleted, func(ctx context.Context) (*domain.Product, error) {
		return c.productRepo.Delete(ctx, id)
	})

	return err
}

// HideProduct скрывает продукт от обычных пользователей.
// Повторное скрытие отклоняется репозиторием как конфликт.
func (c *CatalogUseCase) HideProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.HideProduct"

	return c.mutateProduct(ctx, op, OutboxProductHidden, func(ctx context.Context) (*domain.Product, error) {
		return c.productRepo.SetHidden(ctx, id)
	})
}

// RecommendProduct помечает продукт рекомендованным.
func (c *CatalogUseCase) RecommendProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.RecommendProduct"

	return c.mutateProduct(ctx, op, OutboxProductRecommended, func(ctx context.Context) (*domain.Product, error) {
		return c.productRepo.SetRecommended(ctx, id)
	})
}

// CreateCategory создаёт категорию с флагами возможностей.
func (c *CatalogUseCase) CreateCategory(ctx context.Context, req *CreateCategoryReq) (*domain.Category, error) {
	const op = "CatalogUseCase.CreateCategory"

	var err error
	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	category, err := c.categoryRepo.Create(ctx, domain.NewCategory(
		req.Name, req.SupportsType, req.SupportsDescription, req.DefaultImageURL,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	c.invalidateCatalogCache(ctx, op)

	return category, nil
}

// SearchImages делегирует поиск изображений внешнему провайдеру.
func (c *CatalogUseCase) SearchImages(ctx context.Context, term string) ([]domain.Image, error) {
	const op = "CatalogUseCase.SearchImages"

	if strings.TrimSpace(term) == "" {
		return nil, e.Wrap(op, e.ErrEmptySearchTerm)
	}

	images, err := c.imageSearch.SearchImages(ctx, term)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return images, nil
}

// mutateProduct выполняет модерационную операцию в транзакции вместе с записью outbox-события.
func (c *CatalogUseCase) mutateProduct(
	ctx context.Context,
	op string,
	eventType OutboxEventType,
	mutate func(ctx context.Context) (*domain.Product, error),
) (*domain.Product, error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	product, err := mutate(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = c.addOutboxEvent(ctx, eventType, product); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	c.invalidateCatalogCache(ctx, op)

	return product, nil
}

// loadCatalog возвращает снапшот каталога из кэша либо из БД, докэшируя в фоне.
func (c *CatalogUseCase) loadCatalog(ctx context.Context) (*CatalogSnapshot, error) {
	const op = "CatalogUseCase.loadCatalog"

	snapshot, err := c.cacheRepo.GetCatalog(ctx)
	if err != nil {
		c.logger.Warnf("Catalog cache read failed: %v", e.Wrap(op, err))
	}
	if snapshot != nil {
		return snapshot, nil
	}

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	snapshot = NewCatalogSnapshot(categories, products)

	// Фоновое кэширование снапшота
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetCatalog(bgCtx, snapshot); err != nil {
			c.logger.Warnf("Failed to cache catalog in background: %v", e.Wrap(op, err))
		}
	}()

	return snapshot, nil
}

// addOutboxEvent записывает событие изменения продукта в outbox в рамках текущей транзакции.
func (c *CatalogUseCase) addOutboxEvent(ctx context.Context, eventType OutboxEventType, product *domain.Product) error {
	event := ProductChangeEvent{
		EventID:    uuid.NewString(),
		Operation:  string(eventType),
		ProductID:  product.ID,
		Title:      product.Title,
		OccurredAt: time.Now().UnixNano(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return c.outboxRepo.Add(ctx, NewOutboxEvent(event.EventID, product.ID, eventType, payload))
}

// invalidateCatalogCache сбрасывает серверный кэш каталога после успешной мутации.
func (c *CatalogUseCase) invalidateCatalogCache(ctx context.Context, op string) {
	if err := c.cacheRepo.DeleteCatalog(ctx); err != nil {
		c.logger.Warnf("Failed to invalidate catalog cache: %v", e.Wrap(op, err))
	}
}

// validateCreate проверяет корректность запроса на создание продукта.
func (c *CatalogUseCase) validateCreate(req *CreateProductReq) error {
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if err := validatePrice(req.Price); err != nil {
		return err
	}
	if err := validateVolume(req.Volume); err != nil {
		return err
	}
	if req.CategoryID <= 0 {
		return e.ErrCategoryRequired
	}

	return nil
}

// validateUpdate проверяет только присутствующие в запросе поля.
func (c *CatalogUseCase) validateUpdate(req *UpdateProductReq) error {
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return err
		}
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return err
		}
	}
	if req.Volume != nil {
		if err := validateVolume(*req.Volume); err != nil {
			return err
		}
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return e.ErrCategoryRequired
	}

	return nil
}

func validateTitle(title string) error {
	if len(strings.TrimSpace(title)) < 3 {
		return e.ErrTitleTooShort
	}

	return nil
}

// validatePrice: цена хранится текстом, числовой разбор рекомендательный —
// отклоняется только пустая строка и заведомо отрицательное значение.
func validatePrice(price string) error {
	if strings.TrimSpace(price) == "" {
		return e.ErrPriceRequired
	}

	if d, err := decimal.NewFromString(price); err == nil && d.IsNegative() {
		return e.ErrPriceMustBePositive
	}

	return nil
}

func validateVolume(volume string) error {
	if volume == "" || volume == domain.NoneSentinel {
		return nil
	}

	d, err := decimal.NewFromString(volume)
	if err != nil || !d.IsPositive() {
		return e.ErrVolumeMustBePositive
	}

	return nil
}

// applyCategoryCapabilities отбрасывает поля, которые не поддерживает выбранная категория.
// Видимость поля определяется флагами категории, а не наличием значения.
func applyCategoryCapabilities(req *CreateProductReq, category *domain.Category) {
	if !category.SupportsType {
		req.Type = ""
	}
	if !category.SupportsDescription {
		req.Description = ""
		req.ImageURL = ""
	}
}

func newProductFromCreateReq(req *CreateProductReq) *domain.Product {
	product := domain.NewProduct(req.Title, req.Price, req.CategoryID)
	product.Volume = req.Volume
	product.Tag = req.Tag
	product.Type = req.Type
	product.Description = req.Description
	product.ImageURL = req.ImageURL

	return product
}
