package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Clawwo/IasProductama-sub000/internal/domain/bom"
)

// BOMLookupRequest resolves a recipe by code or name.
type BOMLookupRequest struct {
	Code string `form:"code"`
	Name string `form:"name"`
}

// BOMLineResponse is one recipe component.
type BOMLineResponse struct {
	Code       *string         `json:"code,omitempty"`
	Name       string          `json:"name"`
	SourceType string          `json:"sourceType"`
	Qty        decimal.Decimal `json:"qty"`
}

// BOMResponse is a resolved recipe.
type BOMResponse struct {
	ID          string            `json:"id"`
	ProductCode *string           `json:"productCode,omitempty"`
	ProductName string            `json:"productName"`
	Category    *string           `json:"category,omitempty"`
	Lines       []BOMLineResponse `json:"lines"`
}

// FromBOM creates BOMResponse from a bom.Header.
func FromBOM(h *bom.Header) BOMResponse {
	resp := BOMResponse{
		ID:          h.ID.String(),
		ProductCode: h.ProductCode,
		ProductName: h.ProductName,
		Category:    h.Category,
		Lines:       make([]BOMLineResponse, len(h.Lines)),
	}
	for i, line := range h.Lines {
		resp.Lines[i] = BOMLineResponse{
			Code:       line.Code,
			Name:       line.Name,
			SourceType: string(line.SourceType),
			Qty:        line.Qty,
		}
	}
	return resp
}
