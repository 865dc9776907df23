package client

import (
	"context"
	"sync"
	"time"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
)

// fakeGateway — управляемая тестовая реализация Gateway со счётчиками вызовов.
type fakeGateway struct {
	mu sync.Mutex

	categories []domain.Category
	products   []domain.Product

	listProductsCalls   int
	listCategoriesCalls int
	deleteCalls         int
	hideCalls           int
	recommendCalls      int
	createCalls         int
	updateCalls         int

	listProductsErr error
	deleteErr       error
	hideErr         error

	// blockDelete приостанавливает DeleteProduct до закрытия канала.
	blockDelete chan struct{}
	// blockList приостанавливает ListCategories до закрытия канала.
	blockList chan struct{}
}

func newFakeGateway(categories []domain.Category, products []domain.Product) *fakeGateway {
	return &fakeGateway{categories: categories, products: products}
}

func (f *fakeGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listProductsCalls++
	if f.listProductsErr != nil {
		return nil, f.listProductsErr
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeGateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	f.listCategoriesCalls++
	block := f.blockList
	out := make([]domain.Category, len(f.categories))
	copy(out, f.categories)
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return out, nil
}

func (f *fakeGateway) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, context.Canceled
}

func (f *fakeGateway) CreateProduct(ctx context.Context, payload *ProductPayload) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	p := domain.Product{ID: "created", Title: payload.Title, Price: payload.Price, CategoryID: payload.CategoryID}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeGateway) UpdateProduct(ctx context.Context, id string, patch *ProductPatch) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	for i := range f.products {
		if f.products[i].ID == id {
			if patch.Title != nil {
				f.products[i].Title = *patch.Title
			}
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, context.Canceled
}

func (f *fakeGateway) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	block := f.blockDelete
	f.deleteCalls++
	err := f.deleteErr
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.products[:0]
	for _, p := range f.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.products = kept
	return nil
}

func (f *fakeGateway) HideProduct(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hideCalls++
	if f.hideErr != nil {
		return nil, f.hideErr
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].IsHidden = true
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, context.Canceled
}

func (f *fakeGateway) RecommendProduct(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recommendCalls++
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].IsRecommended = true
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, context.Canceled
}

func (f *fakeGateway) CreateCategory(ctx context.Context, payload *CategoryPayload) (*domain.Category, error) {
	return &domain.Category{ID: int64(len(f.categories) + 1), Name: payload.Name}, nil
}

func (f *fakeGateway) SearchImages(ctx context.Context, term string) ([]domain.Image, error) {
	return nil, nil
}

// recordingNotifier копит уведомления для проверок.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []Notification
	errors    []Notification
}

func (r *recordingNotifier) Success(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, n)
}

func (r *recordingNotifier) Error(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, n)
}

func (r *recordingNotifier) lastError() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) == 0 {
		return Notification{}, false
	}
	return r.errors[len(r.errors)-1], true
}

func newTestStore(gw Gateway) *CatalogStore {
	return NewCatalogStore(gw, logger.NewSlogLogger(), time.Second)
}

func newTestManager(store *CatalogStore, gw Gateway, notifier Notifier) *MutationManager {
	return NewMutationManager(store, gw, notifier, time.Second, 50*time.Millisecond)
}
