package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products []domain.Product
	listErr  error
}

func (f *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return product, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	return f.GetByID(ctx, req.ID)
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) (*domain.Product, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProductRepo) SetHidden(ctx context.Context, id string) (*domain.Product, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProductRepo) SetRecommended(ctx context.Context, id string) (*domain.Product, error) {
	return f.GetByID(ctx, id)
}

type fakeCategoryRepo struct {
	categories []domain.Category
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, e.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return category, nil
}

type fakeCacheRepo struct {
	mu       sync.Mutex
	snapshot *CatalogSnapshot
	getErr   error
	sets     int
	deletes  int
}

func (f *fakeCacheRepo) GetCatalog(ctx context.Context) (*CatalogSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.snapshot, nil
}

func (f *fakeCacheRepo) SetCatalog(ctx context.Context, snapshot *CatalogSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	return nil
}

func (f *fakeCacheRepo) DeleteCatalog(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return nil
}

func (f *fakeCacheRepo) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

type fakeOutboxRepo struct{}

func (f *fakeOutboxRepo) Add(ctx context.Context, event *OutboxEvent) error { return nil }
func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error { return nil }

type fakeImagesInfra struct{}

func (f *fakeImagesInfra) MirrorImage(ctx context.Context, req *MirrorImageReq) (*MirrorImageRes, error) {
	return NewMirrorImageRes("http://cdn.local/"+req.ProductTitle, "key"), nil
}
func (f *fakeImagesInfra) CleanupImages(keys []string) {}

type fakeImageSearch struct {
	images []domain.Image
	err    error
}

func (f *fakeImageSearch) SearchImages(ctx context.Context, term string) ([]domain.Image, error) {
	return f.images, f.err
}

func newTestUC(productRepo *fakeProductRepo, categoryRepo *fakeCategoryRepo, cacheRepo *fakeCacheRepo, search *fakeImageSearch) *CatalogUseCase {
	return NewCatalogUC(
		productRepo,
		categoryRepo,
		&fakeOutboxRepo{},
		cacheRepo,
		nil,
		&fakeImagesInfra{},
		search,
		logger.NewSlogLogger(),
	)
}

func TestListProducts_HiddenFilteredForNonAdmins(t *testing.T) {
	productRepo := &fakeProductRepo{products: []domain.Product{
		{ID: "a", Title: "Green Tea"},
		{ID: "b", Title: "Secret Brew", IsHidden: true},
	}}
	uc := newTestUC(productRepo, &fakeCategoryRepo{}, &fakeCacheRepo{}, &fakeImageSearch{})

	for _, role := range []domain.ViewerRole{domain.RoleAnonymous, domain.RoleUser} {
		products, err := uc.ListProducts(context.Background(), role)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "a", products[0].ID)
	}

	products, err := uc.ListProducts(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestListProducts_ServedFromCache(t *testing.T) {
	cacheRepo := &fakeCacheRepo{snapshot: NewCatalogSnapshot(
		nil,
		[]domain.Product{{ID: "cached"}},
	)}
	productRepo := &fakeProductRepo{listErr: errors.New("db down")}
	uc := newTestUC(productRepo, &fakeCategoryRepo{}, cacheRepo, &fakeImageSearch{})

	products, err := uc.ListProducts(context.Background(), domain.RoleAdmin)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "cached", products[0].ID)
}

func TestListProducts_CacheReadFailureFallsBackToDB(t *testing.T) {
	cacheRepo := &fakeCacheRepo{getErr: errors.New("redis down")}
	productRepo := &fakeProductRepo{products: []domain.Product{{ID: "a"}}}
	uc := newTestUC(productRepo, &fakeCategoryRepo{}, cacheRepo, &fakeImageSearch{})

	products, err := uc.ListProducts(context.Background(), domain.RoleAdmin)

	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestListCategories(t *testing.T) {
	categoryRepo := &fakeCategoryRepo{categories: []domain.Category{{ID: 1, Name: "tea"}}}
	uc := newTestUC(&fakeProductRepo{}, categoryRepo, &fakeCacheRepo{}, &fakeImageSearch{})

	categories, err := uc.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "tea", categories[0].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	uc := newTestUC(&fakeProductRepo{}, &fakeCategoryRepo{}, &fakeCacheRepo{}, &fakeImageSearch{})

	_, err := uc.GetProduct(context.Background(), "missing")

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCreateProduct_ValidationBeforeSideEffects(t *testing.T) {
	uc := newTestUC(&fakeProductRepo{}, &fakeCategoryRepo{}, &fakeCacheRepo{}, &fakeImageSearch{})

	tests := []struct {
		name string
		req  *CreateProductReq
		want error
	}{
		{
			name: "short title",
			req:  &CreateProductReq{Title: "ab", Price: "100", CategoryID: 1},
			want: e.ErrTitleTooShort,
		},
		{
			name: "empty price",
			req:  &CreateProductReq{Title: "Green Tea", Price: " ", CategoryID: 1},
			want: e.ErrPriceRequired,
		},
		{
			name: "negative price",
			req:  &CreateProductReq{Title: "Green Tea", Price: "-1", CategoryID: 1},
			want: e.ErrPriceMustBePositive,
		},
		{
			name: "bad volume",
			req:  &CreateProductReq{Title: "Green Tea", Price: "100", Volume: "big", CategoryID: 1},
			want: e.ErrVolumeMustBePositive,
		},
		{
			name: "missing category",
			req:  &CreateProductReq{Title: "Green Tea", Price: "100"},
			want: e.ErrCategoryRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateProduct(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	uc := newTestUC(&fakeProductRepo{}, &fakeCategoryRepo{}, &fakeCacheRepo{}, &fakeImageSearch{})

	_, err := uc.CreateProduct(context.Background(), &CreateProductReq{
		Title: "Green Tea", Price: "100", CategoryID: 42,
	})

	assert.ErrorIs(t, err, e.ErrCategoryNotFound)
}

func TestUpdateProduct_ValidatesPresentFieldsOnly(t *testing.T) {
	uc := newTestUC(&fakeProductRepo{}, &fakeCategoryRepo{}, &fakeCacheRepo{}, &fakeImageSearch{})

	badTitle := "ab"
	_, err := uc.UpdateProduct(context.Background(), &UpdateProductReq{ID: "a", Title: &badTitle})
	assert.ErrorIs(t, err, e.ErrTitleTooShort)

	badCategory := int64(0)
	_, err = uc.UpdateProduct(context.Background(), &UpdateProductReq{ID: "a", CategoryID: &badCategory})
	assert.ErrorIs(t, err, e.ErrCategoryRequired)
}

func TestSearchImages(t *testing.T) {
	search := &fakeImageSearch{images: []domain.Image{{ID: "img1"}}}
	uc := newTestUC(&fakeProductRepo{}, &fakeCategoryRepo{}, &fakeCacheRepo{}, search)

	images, err := uc.SearchImages(context.Background(), "tea")

	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestSearchImages_EmptyTerm(t *testing.T) {
	uc := newTestUC(&fakeProductRepo{}, &fakeCategoryRepo{}, &fakeCacheRepo{}, &fakeImageSearch{})

	_, err := uc.SearchImages(context.Background(), "   ")

	assert.ErrorIs(t, err, e.ErrEmptySearchTerm)
}

func TestApplyCategoryCapabilities(t *testing.T) {
	req := &CreateProductReq{
		Title:       "Cola",
		Price:       "90",
		Type:        "sweet",
		Description: "fizzy",
		ImageURL:    "http://example.com/cola.jpg",
		CategoryID:  1,
	}

	applyCategoryCapabilities(req, &domain.Category{ID: 1, SupportsType: false, SupportsDescription: false})

	assert.Empty(t, req.Type)
	assert.Empty(t, req.Description)
	assert.Empty(t, req.ImageURL)
}

func TestValidateVolume_NoneSentinel(t *testing.T) {
	assert.NoError(t, validateVolume(domain.NoneSentinel))
	assert.NoError(t, validateVolume(""))
	assert.NoError(t, validateVolume("0.7"))
	assert.Error(t, validateVolume("0"))
}

func TestLoadCatalog_BackgroundCachePopulation(t *testing.T) {
	cacheRepo := &fakeCacheRepo{}
	productRepo := &fakeProductRepo{products: []domain.Product{{ID: "a"}}}
	uc := newTestUC(productRepo, &fakeCategoryRepo{}, cacheRepo, &fakeImageSearch{})

	_, err := uc.ListProducts(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return cacheRepo.setCount() == 1
	}, time.Second, 5*time.Millisecond)
}
