package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/http/v1/dto"
)

// CatalogHandler serves read access to the three stock catalogs.
type CatalogHandler struct {
	*BaseHandler
	resolver *catalog.Resolver
	stores   map[string]catalog.Store
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(resolver *catalog.Resolver, items, rawMaterials, products catalog.Store) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: NewBaseHandler(),
		resolver:    resolver,
		stores: map[string]catalog.Store{
			"items":         items,
			"raw-materials": rawMaterials,
			"products":      products,
		},
	}
}

// List handles GET /api/v1/catalogs/:catalog.
func (h *CatalogHandler) List(c *gin.Context) {
	store, ok := h.stores[c.Param("catalog")]
	if !ok {
		h.Error(c, apperror.NewNotFound("catalog", c.Param("catalog")))
		return
	}

	entries, err := store.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: entries, Count: len(entries)})
}

// Resolve handles GET /api/v1/catalogs/resolve/:code. The code is searched
// across all catalogs in precedence order.
func (h *CatalogHandler) Resolve(c *gin.Context) {
	code := c.Param("code")

	store, entry, err := h.resolver.Resolve(c.Request.Context(), code)
	if err != nil {
		h.Error(c, err)
		return
	}
	if entry == nil {
		h.Error(c, apperror.NewUnknownCode(code))
		return
	}

	h.OK(c, gin.H{
		"catalog": store.Kind(),
		"entry":   entry,
	})
}
