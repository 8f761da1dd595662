package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/rawissue"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/http/v1/dto"
)

// RawIssueHandler serves raw-material issue endpoints.
type RawIssueHandler struct {
	*BaseHandler
	service *rawissue.Service
}

// NewRawIssueHandler creates a new raw-material issue handler.
func NewRawIssueHandler(service *rawissue.Service) *RawIssueHandler {
	return &RawIssueHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /api/v1/raw-issues.
func (h *RawIssueHandler) Create(c *gin.Context) {
	var req dto.CreateRawIssueRequest
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

// Get handles GET /api/v1/raw-issues/:id.
func (h *RawIssueHandler) Get(c *gin.Context) {
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

// ReceiveLine handles POST /api/v1/raw-issues/:id/lines/:lineId/receive.
func (h *RawIssueHandler) ReceiveLine(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid document id"))
		return
	}
	lineID, err := id.Parse(c.Param("lineId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid line id"))
		return
	}

	if err := h.service.ReceiveLine(c.Request.Context(), docID, lineID); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.SuccessResponse{Success: true, Message: "line received"})
}

// List handles GET /api/v1/raw-issues.
func (h *RawIssueHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 20)

	docs, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: docs, Count: len(docs)})
}
