// Package inbound provides the stock receipt document.
package inbound

import (
	"context"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
)

// CodePrefix is the transaction code prefix for receipts.
const CodePrefix = "IN"

// Inbound records goods received from a vendor. Immutable once created;
// corrections are a separate concern.
type Inbound struct {
	ID          id.ID     `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Vendor      string    `db:"vendor" json:"vendor"`
	Date        time.Time `db:"date" json:"date"`
	Note        *string   `db:"note" json:"note,omitempty"`
	CreatedByID *string   `db:"created_by_id" json:"createdById,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	Lines []documents.Line `db:"-" json:"lines"`
}

// NewInbound creates a receipt document for the given vendor and date.
func NewInbound(vendor string, date time.Time) *Inbound {
	return &Inbound{
		ID:        id.New(),
		Vendor:    vendor,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the receipt's preconditions before any transaction begins.
func (d *Inbound) Validate(ctx context.Context) error {
	if d.Vendor == "" {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendor")
	}
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return documents.ValidateLines(ctx, "lines", d.Lines)
}
