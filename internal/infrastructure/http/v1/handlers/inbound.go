package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/inbound"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/http/v1/dto"
)

// InboundHandler serves goods receipt endpoints.
type InboundHandler struct {
	*BaseHandler
	service *inbound.Service
}

// NewInboundHandler creates a new inbound handler.
func NewInboundHandler(service *inbound.Service) *InboundHandler {
	return &InboundHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /api/v1/inbounds.
func (h *InboundHandler) Create(c *gin.Context) {
	var req dto.CreateInboundRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.NewIDResponse(doc.ID, doc.Code))
}

// Get handles GET /api/v1/inbounds/:id.
func (h *InboundHandler) Get(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid document id"))
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// List handles GET /api/v1/inbounds.
func (h *InboundHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 20)

	docs, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: docs, Count: len(docs)})
}
