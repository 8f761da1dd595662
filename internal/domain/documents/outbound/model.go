// Package outbound provides the stock issuance document.
package outbound

import (
	"context"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
)

// CodePrefix is the transaction code prefix for issuances.
const CodePrefix = "OUT"

// Outbound records goods issued to an orderer. Immutable once created.
type Outbound struct {
	ID          id.ID     `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Orderer     string    `db:"orderer" json:"orderer"`
	Date        time.Time `db:"date" json:"date"`
	Note        *string   `db:"note" json:"note,omitempty"`
	CreatedByID *string   `db:"created_by_id" json:"createdById,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	Lines []documents.Line `db:"-" json:"lines"`
}

// NewOutbound creates an issuance document for the given orderer and date.
func NewOutbound(orderer string, date time.Time) *Outbound {
	return &Outbound{
		ID:        id.New(),
		Orderer:   orderer,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the issuance's preconditions before any transaction begins.
func (d *Outbound) Validate(ctx context.Context) error {
	if d.Orderer == "" {
		return apperror.NewValidation("orderer is required").
			WithDetail("field", "orderer")
	}
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return documents.ValidateLines(ctx, "lines", d.Lines)
}
