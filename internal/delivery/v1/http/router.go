package http

import (
	"net/http"

	"github.com/aradovic23/drinks-viewer/internal/usecase"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC) {
	r.router.Route("/api/v1", func(v1 chi.Router) {
		handler := NewCatalogHandler(catalogUC, r.logger)
		registerCatalogRoutes(v1, handler)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/{id}", h.getProduct)

		pr.Group(func(admin chi.Router) {
			admin.Use(requireAdmin)
			admin.Post("/", h.createProduct)
			admin.Patch("/{id}", h.updateProduct)
			admin.Delete("/{id}", h.deleteProduct)
			admin.Post("/{id}/hide", h.hideProduct)
			admin.Post("/{id}/recommend", h.recommendProduct)
		})
	})

	router.Route("/categories", func(cat chi.Router) {
		cat.Get("/", h.listCategories)

		cat.Group(func(admin chi.Router) {
			admin.Use(requireAdmin)
			admin.Post("/", h.createCategory)
		})
	})

	router.Group(func(admin chi.Router) {
		admin.Use(requireAdmin)
		admin.Get("/images", h.searchImages)
	})
}

// requireAdmin пропускает запрос дальше только при роли администратора.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !viewerRole(r).IsAdmin() {
			WriteError(w, e.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
