// Package documents provides the transaction documents that mutate stock:
// inbound receipts, outbound issuances, production runs and raw-material
// issues. The shared line shape lives here.
package documents

import (
	"context"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
)

// Line is one (code, quantity) entry of a transaction document. Lines are
// owned by their parent document and have no independent lifecycle.
type Line struct {
	ID          id.ID   `db:"id" json:"id"`
	Code        string  `db:"code" json:"code"`
	Name        *string `db:"name" json:"name,omitempty"`
	Category    *string `db:"category" json:"category,omitempty"`
	SubCategory *string `db:"sub_category" json:"subCategory,omitempty"`
	Kind        *string `db:"kind" json:"kind,omitempty"`
	Qty         int     `db:"qty" json:"qty"`
	Note        *string `db:"note" json:"note,omitempty"`
}

// Metadata exposes the line's descriptive fields for catalog upserts.
func (l *Line) Metadata() catalog.Metadata {
	return catalog.Metadata{
		Name:        l.Name,
		Category:    l.Category,
		SubCategory: l.SubCategory,
		Kind:        l.Kind,
	}
}

// ValidateLines checks the shared line invariants: at least one line, a code
// on every line and strictly positive quantities.
func ValidateLines(ctx context.Context, field string, lines []Line) error {
	if len(lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", field)
	}
	for i, line := range lines {
		if line.Code == "" {
			return apperror.NewValidation("code is required").
				WithDetail("field", field).
				WithDetail("lineNo", i+1)
		}
		if line.Qty < 1 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", field).
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}
