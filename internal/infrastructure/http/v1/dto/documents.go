package dto

import (
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/inbound"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/outbound"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/production"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/rawissue"
)

// LineRequest represents one document line. Only code and qty are required;
// the metadata fields overwrite catalog values when present.
type LineRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	SubCategory *string `json:"subCategory,omitempty"`
	Kind        *string `json:"kind,omitempty"`
	Qty         int     `json:"qty" binding:"required,min=1"`
	Note        *string `json:"note,omitempty"`
}

// ToLine converts the request line to a domain line with a fresh id.
func (r LineRequest) ToLine() documents.Line {
	return documents.Line{
		ID:          id.New(),
		Code:        r.Code,
		Name:        r.Name,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		Kind:        r.Kind,
		Qty:         r.Qty,
		Note:        r.Note,
	}
}

func toLines(reqs []LineRequest) []documents.Line {
	lines := make([]documents.Line, len(reqs))
	for i, r := range reqs {
		lines[i] = r.ToLine()
	}
	return lines
}

// --- Inbound ---

// CreateInboundRequest creates a goods receipt.
type CreateInboundRequest struct {
	Vendor string        `json:"vendor" binding:"required"`
	Date   time.Time     `json:"date" binding:"required"`
	Note   *string       `json:"note,omitempty"`
	Lines  []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateInboundRequest) ToEntity() *inbound.Inbound {
	doc := inbound.NewInbound(r.Vendor, r.Date)
	doc.Note = r.Note
	doc.Lines = toLines(r.Lines)
	return doc
}

// --- Outbound ---

// CreateOutboundRequest creates an issuance.
type CreateOutboundRequest struct {
	Orderer string        `json:"orderer" binding:"required"`
	Date    time.Time     `json:"date" binding:"required"`
	Note    *string       `json:"note,omitempty"`
	Lines   []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateOutboundRequest) ToEntity() *outbound.Outbound {
	doc := outbound.NewOutbound(r.Orderer, r.Date)
	doc.Note = r.Note
	doc.Lines = toLines(r.Lines)
	return doc
}

// --- Production ---

// RawLineRequest is a consumed line; sourceType defaults to RAW_MATERIAL.
type RawLineRequest struct {
	LineRequest
	SourceType *string `json:"sourceType,omitempty" binding:"omitempty,oneof=ITEM RAW_MATERIAL"`
}

// CreateProductionRequest creates a production posting.
type CreateProductionRequest struct {
	Date          time.Time        `json:"date" binding:"required"`
	Note          *string          `json:"note,omitempty"`
	RawLines      []RawLineRequest `json:"rawLines" binding:"required,min=1,dive"`
	FinishedLines []LineRequest    `json:"finishedLines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateProductionRequest) ToEntity() *production.Production {
	doc := production.NewProduction(r.Date)
	doc.Note = r.Note

	doc.RawLines = make([]production.RawLine, len(r.RawLines))
	for i, line := range r.RawLines {
		raw := production.RawLine{Line: line.ToLine()}
		if line.SourceType != nil {
			raw.SourceType = catalog.SourceType(*line.SourceType)
		}
		doc.RawLines[i] = raw
	}

	doc.FinishedLines = toLines(r.FinishedLines)
	return doc
}

// --- Raw-material issue ---

// RawIssueLineRequest is one issued material.
type RawIssueLineRequest struct {
	LineRequest
	BatchCode *string `json:"batchCode,omitempty"`
}

// CreateRawIssueRequest issues raw materials to an artisan.
type CreateRawIssueRequest struct {
	Artisan string                `json:"artisan" binding:"required"`
	Date    time.Time             `json:"date" binding:"required"`
	Note    *string               `json:"note,omitempty"`
	Lines   []RawIssueLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateRawIssueRequest) ToEntity() *rawissue.RawIssue {
	doc := rawissue.NewRawIssue(r.Artisan, r.Date)
	doc.Note = r.Note

	doc.Lines = make([]rawissue.Line, len(r.Lines))
	for i, line := range r.Lines {
		doc.Lines[i] = rawissue.Line{
			Line:      line.ToLine(),
			BatchCode: line.BatchCode,
			Status:    rawissue.StatusOut,
		}
	}
	return doc
}
