package http

import (
	"net/http"

	"github.com/aradovic23/drinks-viewer/internal/usecase"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts возвращает продукты каталога.
// Скрытые продукты видят только администраторы.
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUsecase.ListProducts(r.Context(), viewerRole(r))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	product, err := h.catalogUsecase.CreateProduct(r.Context(), &usecase.CreateProductReq{
		Title:       req.Title,
		Price:       req.Price,
		Volume:      req.Volume,
		Tag:         req.Tag,
		Type:        req.Type,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	product, err := h.catalogUsecase.UpdateProduct(r.Context(), &usecase.UpdateProductReq{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Price:       req.Price,
		Volume:      req.Volume,
		Tag:         req.Tag,
		Type:        req.Type,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUsecase.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// hideProduct скрывает продукт. Операция односторонняя: повторный вызов вернёт 409.
func (h *CatalogHandler) hideProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUsecase.HideProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// recommendProduct помечает продукт рекомендованным. Операция односторонняя.
func (h *CatalogHandler) recommendProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUsecase.RecommendProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponses(categories))
}

func (h *CatalogHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	category, err := h.catalogUsecase.CreateCategory(r.Context(), &usecase.CreateCategoryReq{
		Name:                req.Name,
		SupportsType:        req.SupportsType,
		SupportsDescription: req.SupportsDescription,
		DefaultImageURL:     req.DefaultImageURL,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toCategoryResponse(category))
}

func (h *CatalogHandler) searchImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.catalogUsecase.SearchImages(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toImageResponses(images))
}
