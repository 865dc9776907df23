package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/internal/usecase"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogUC struct {
	products   []domain.Product
	categories []domain.Category
	hideErr    error
	lastRole   domain.ViewerRole
}

func (f *fakeCatalogUC) ListProducts(ctx context.Context, role domain.ViewerRole) ([]domain.Product, error) {
	f.lastRole = role
	if role.IsAdmin() {
		return f.products, nil
	}
	visible := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		if !p.IsHidden {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func (f *fakeCatalogUC) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalogUC) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (f *fakeCatalogUC) CreateProduct(ctx context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
	if len(req.Title) < 3 {
		return nil, e.ErrTitleTooShort
	}
	return &domain.Product{ID: "new", Title: req.Title, Price: req.Price, CategoryID: req.CategoryID}, nil
}

func (f *fakeCatalogUC) UpdateProduct(ctx context.Context, req *usecase.UpdateProductReq) (*domain.Product, error) {
	return f.GetProduct(ctx, req.ID)
}

func (f *fakeCatalogUC) DeleteProduct(ctx context.Context, id string) error {
	_, err := f.GetProduct(ctx, id)
	return err
}

func (f *fakeCatalogUC) HideProduct(ctx context.Context, id string) (*domain.Product, error) {
	if f.hideErr != nil {
		return nil, f.hideErr
	}
	product, err := f.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.IsHidden = true
	return product, nil
}

func (f *fakeCatalogUC) RecommendProduct(ctx context.Context, id string) (*domain.Product, error) {
	return f.GetProduct(ctx, id)
}

func (f *fakeCatalogUC) CreateCategory(ctx context.Context, req *usecase.CreateCategoryReq) (*domain.Category, error) {
	if req.Name == "" {
		return nil, e.ErrCategoryNameRequired
	}
	return &domain.Category{ID: 1, Name: req.Name}, nil
}

func (f *fakeCatalogUC) SearchImages(ctx context.Context, term string) ([]domain.Image, error) {
	if term == "" {
		return nil, e.ErrEmptySearchTerm
	}
	return []domain.Image{{ID: "img1"}}, nil
}

func newTestRouter(uc usecase.CatalogUC) *chi.Mux {
	r := chi.NewRouter()
	NewRouter(r, logger.NewSlogLogger()).Init(uc)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, role string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if role != "" {
		req.Header.Set(ViewerRoleHeader, role)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListProducts_RoleFromHeader(t *testing.T) {
	uc := &fakeCatalogUC{products: []domain.Product{
		{ID: "a", Title: "Green Tea"},
		{ID: "b", Title: "Secret", IsHidden: true},
	}}
	router := newTestRouter(uc)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)
	assert.Equal(t, domain.RoleAnonymous, uc.lastRole)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/products", "admin", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestMutationsRequireAdminRole(t *testing.T) {
	uc := &fakeCatalogUC{products: []domain.Product{{ID: "a", Title: "Green Tea"}}}
	router := newTestRouter(uc)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/products"},
		{http.MethodPatch, "/api/v1/products/a"},
		{http.MethodDelete, "/api/v1/products/a"},
		{http.MethodPost, "/api/v1/products/a/hide"},
		{http.MethodPost, "/api/v1/products/a/recommend"},
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodGet, "/api/v1/images"},
	}

	for _, p := range paths {
		rec := doRequest(t, router, p.method, p.path, "user", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestCreateProduct_Handler(t *testing.T) {
	router := newTestRouter(&fakeCatalogUC{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/products", "admin", CreateProductRequest{
		Title:      "Oolong",
		Price:      "180",
		CategoryID: 1,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var product ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, "Oolong", product.Title)
}

func TestCreateProduct_ValidationMapsTo400(t *testing.T) {
	router := newTestRouter(&fakeCatalogUC{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/products", "admin", CreateProductRequest{
		Title: "ab", Price: "100", CategoryID: 1,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, e.ErrTitleTooShort.Error(), errResp.Message)
}

func TestGetProduct_NotFoundMapsTo404(t *testing.T) {
	router := newTestRouter(&fakeCatalogUC{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/products/missing", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHideProduct_ConflictMapsTo409(t *testing.T) {
	uc := &fakeCatalogUC{
		products: []domain.Product{{ID: "a", Title: "Green Tea"}},
		hideErr:  e.ErrAlreadyHidden,
	}
	router := newTestRouter(uc)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/products/a/hide", "admin", nil)

	require.Equal(t, http.StatusConflict, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, e.ErrAlreadyHidden.Error(), errResp.Message)
}

func TestHideProduct_Success(t *testing.T) {
	uc := &fakeCatalogUC{products: []domain.Product{{ID: "a", Title: "Green Tea"}}}
	router := newTestRouter(uc)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/products/a/hide", "admin", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var product ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.True(t, product.IsHidden)
}

func TestSearchImages_Handler(t *testing.T) {
	router := newTestRouter(&fakeCatalogUC{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/images?query=tea", "admin", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var images []ImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &images))
	assert.Len(t, images, 1)
}
