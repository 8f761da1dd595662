package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/outbound"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/http/v1/dto"
)

// OutboundHandler serves issuance endpoints.
type OutboundHandler struct {
	*BaseHandler
	service *outbound.Service
}

// NewOutboundHandler creates a new outbound handler.
func NewOutboundHandler(service *outbound.Service) *OutboundHandler {
	return &OutboundHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /api/v1/outbounds.
func (h *OutboundHandler) Create(c *gin.Context) {
	var req dto.CreateOutboundRequest
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

// Get handles GET /api/v1/outbounds/:id.
func (h *OutboundHandler) Get(c *gin.Context) {
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

// List handles GET /api/v1/outbounds.
func (h *OutboundHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 20)

	docs, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: docs, Count: len(docs)})
}
