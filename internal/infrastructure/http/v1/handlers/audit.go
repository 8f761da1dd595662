package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/audit"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/http/v1/dto"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
)

var auditEntityTypes = map[string]audit.Entity{
	"inbounds":    audit.EntityInbound,
	"outbounds":   audit.EntityOutbound,
	"productions": audit.EntityProduction,
	"raw-issues":  audit.EntityRawIssue,
}

// AuditHandler serves the per-document audit trail.
type AuditHandler struct {
	*BaseHandler
	service *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(service *postgres.AuditService) *AuditHandler {
	return &AuditHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// History handles GET /api/v1/audit/:entityType/:id.
func (h *AuditHandler) History(c *gin.Context) {
	entity, ok := auditEntityTypes[c.Param("entityType")]
	if !ok {
		h.Error(c, apperror.NewNotFound("audit entity type", c.Param("entityType")))
		return
	}

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid entity id"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := h.service.GetEntityHistory(c.Request.Context(), entity, entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: rows, Count: len(rows)})
}
