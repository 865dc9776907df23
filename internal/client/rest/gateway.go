// Package rest реализует client.Gateway поверх HTTP API каталога.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aradovic23/drinks-viewer/internal/cfg"
	"github.com/aradovic23/drinks-viewer/internal/client"
	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
)

// ViewerRoleHeader — заголовок, через который шлюз сообщает серверу роль.
const ViewerRoleHeader = "X-Viewer-Role"

// Gateway — HTTP-клиент каталога, реализующий client.Gateway.
type Gateway struct {
	baseURL    string
	role       domain.ViewerRole
	httpClient *http.Client
}

func NewGateway(cfg *cfg.ClientCfg) *Gateway {
	return &Gateway{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		role:       domain.ParseViewerRole(cfg.Role),
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
	}
}

type productModel struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Price         string     `json:"price"`
	Volume        string     `json:"volume,omitempty"`
	Tag           string     `json:"tag,omitempty"`
	Type          string     `json:"type,omitempty"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	CategoryID    int64      `json:"categoryId"`
	IsHidden      bool       `json:"isHidden"`
	IsRecommended bool       `json:"isRecommended"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

type categoryModel struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	SupportsType        bool   `json:"supportsType"`
	SupportsDescription bool   `json:"supportsDescription"`
	DefaultImageURL     string `json:"defaultImageUrl,omitempty"`
}

type imageModel struct {
	ID           string `json:"id"`
	ThumbnailURL string `json:"thumbnailUrl"`
	FullURL      string `json:"fullUrl"`
}

type errorModel struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (g *Gateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var models []productModel
	if err := g.do(ctx, http.MethodGet, "/api/v1/products", nil, &models); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(models))
	for i := range models {
		products = append(products, *toProduct(&models[i]))
	}
	return products, nil
}

func (g *Gateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var models []categoryModel
	if err := g.do(ctx, http.MethodGet, "/api/v1/categories", nil, &models); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(models))
	for _, m := range models {
		categories = append(categories, domain.Category{
			ID:                  m.ID,
			Name:                m.Name,
			SupportsType:        m.SupportsType,
			SupportsDescription: m.SupportsDescription,
			DefaultImageURL:     m.DefaultImageURL,
		})
	}
	return categories, nil
}

func (g *Gateway) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var model productModel
	if err := g.do(ctx, http.MethodGet, "/api/v1/products/"+id, nil, &model); err != nil {
		return nil, err
	}
	return toProduct(&model), nil
}

func (g *Gateway) CreateProduct(ctx context.Context, payload *client.ProductPayload) (*domain.Product, error) {
	body := map[string]interface{}{
		"title":       payload.Title,
		"price":       payload.Price,
		"volume":      payload.Volume,
		"tag":         payload.Tag,
		"type":        payload.Type,
		"description": payload.Description,
		"imageUrl":    payload.ImageURL,
		"categoryId":  payload.CategoryID,
	}

	var model productModel
	if err := g.do(ctx, http.MethodPost, "/api/v1/products", body, &model); err != nil {
		return nil, err
	}
	return toProduct(&model), nil
}

func (g *Gateway) UpdateProduct(ctx context.Context, id string, patch *client.ProductPatch) (*domain.Product, error) {
	body := map[string]interface{}{}
	putIfSet := func(key string, v *string) {
		if v != nil {
			body[key] = *v
		}
	}
	putIfSet("title", patch.Title)
	putIfSet("price", patch.Price)
	putIfSet("volume", patch.Volume)
	putIfSet("tag", patch.Tag)
	putIfSet("type", patch.Type)
	putIfSet("description", patch.Description)
	putIfSet("imageUrl", patch.ImageURL)
	if patch.CategoryID != nil {
		body["categoryId"] = *patch.CategoryID
	}

	var model productModel
	if err := g.do(ctx, http.MethodPatch, "/api/v1/products/"+id, body, &model); err != nil {
		return nil, err
	}
	return toProduct(&model), nil
}

func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/v1/products/"+id, nil, nil)
}

func (g *Gateway) HideProduct(ctx context.Context, id string) (*domain.Product, error) {
	var model productModel
	if err := g.do(ctx, http.MethodPost, "/api/v1/products/"+id+"/hide", nil, &model); err != nil {
		return nil, err
	}
	return toProduct(&model), nil
}

func (g *Gateway) RecommendProduct(ctx context.Context, id string) (*domain.Product, error) {
	var model productModel
	if err := g.do(ctx, http.MethodPost, "/api/v1/products/"+id+"/recommend", nil, &model); err != nil {
		return nil, err
	}
	return toProduct(&model), nil
}

func (g *Gateway) CreateCategory(ctx context.Context, payload *client.CategoryPayload) (*domain.Category, error) {
	body := map[string]interface{}{
		"name":                payload.Name,
		"supportsType":        payload.SupportsType,
		"supportsDescription": payload.SupportsDescription,
		"defaultImageUrl":     payload.DefaultImageURL,
	}

	var model categoryModel
	if err := g.do(ctx, http.MethodPost, "/api/v1/categories", body, &model); err != nil {
		return nil, err
	}

	return &domain.Category{
		ID:                  model.ID,
		Name:                model.Name,
		SupportsType:        model.SupportsType,
		SupportsDescription: model.SupportsDescription,
		DefaultImageURL:     model.DefaultImageURL,
	}, nil
}

func (g *Gateway) SearchImages(ctx context.Context, term string) ([]domain.Image, error) {
	var models []imageModel
	path := "/api/v1/images?query=" + url.QueryEscape(term)
	if err := g.do(ctx, http.MethodGet, path, nil, &models); err != nil {
		return nil, err
	}

	images := make([]domain.Image, 0, len(models))
	for _, m := range models {
		images = append(images, domain.Image{ID: m.ID, ThumbnailURL: m.ThumbnailURL, FullURL: m.FullURL})
	}
	return images, nil
}

// do выполняет запрос и декодирует ответ либо ошибку сервера.
func (g *Gateway) do(ctx context.Context, method, path string, body interface{}, dst interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(ViewerRoleHeader, string(g.role))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if dst == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// decodeError восстанавливает сентинели ошибок из ответа сервера,
// чтобы errors.Is работало по обе стороны провода.
func decodeError(resp *http.Response) error {
	var model errorModel
	if err := json.NewDecoder(resp.Body).Decode(&model); err != nil {
		model.Message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusForbidden:
		return e.ErrForbidden
	case http.StatusNotFound:
		if strings.Contains(model.Message, "category") {
			return e.ErrCategoryNotFound
		}
		return e.ErrProductNotFound
	case http.StatusConflict:
		if strings.Contains(model.Message, "recommended") {
			return e.ErrAlreadyRecommended
		}
		return e.ErrAlreadyHidden
	default:
		return fmt.Errorf("server rejected request: %s", model.Message)
	}
}

func toProduct(m *productModel) *domain.Product {
	return &domain.Product{
		ID:            m.ID,
		Title:         m.Title,
		Price:         m.Price,
		Volume:        m.Volume,
		Tag:           m.Tag,
		Type:          m.Type,
		Description:   m.Description,
		ImageURL:      m.ImageURL,
		CategoryID:    m.CategoryID,
		IsHidden:      m.IsHidden,
		IsRecommended: m.IsRecommended,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
