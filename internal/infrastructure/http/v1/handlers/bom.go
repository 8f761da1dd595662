package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Clawwo/IasProductama-sub000/internal/domain/bom"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/http/v1/dto"
)

// BOMHandler serves recipe lookup endpoints.
type BOMHandler struct {
	*BaseHandler
	service *bom.Service
}

// NewBOMHandler creates a new BOM handler.
func NewBOMHandler(service *bom.Service) *BOMHandler {
	return &BOMHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Lookup handles GET /api/v1/boms/lookup?code=...&name=...
// Falls back to fuzzy name matching when no exact match exists.
func (h *BOMHandler) Lookup(c *gin.Context) {
	var req dto.BOMLookupRequest
	if !h.BindQuery(c, &req) {
		return
	}

	header, err := h.service.FindByCodeOrName(c.Request.Context(), req.Code, req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBOM(header))
}
