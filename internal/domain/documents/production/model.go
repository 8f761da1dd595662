// Package production provides the manufacturing event document: raw lines
// consumed, finished lines produced, one atomic unit.
package production

import (
	"context"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
)

// CodePrefix is the transaction code prefix for production runs.
const CodePrefix = "PROD"

// RawLine is a consumed component line. SourceType hints at the owning
// catalog; consumption falls back to the other catalog when the hint misses.
type RawLine struct {
	documents.Line
	SourceType catalog.SourceType `db:"source_type" json:"sourceType"`
}

// Production records one manufacturing event with its consumed and produced
// line sets. Immutable once created.
type Production struct {
	ID          id.ID     `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Date        time.Time `db:"date" json:"date"`
	Note        *string   `db:"note" json:"note,omitempty"`
	CreatedByID *string   `db:"created_by_id" json:"createdById,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	RawLines      []RawLine        `db:"-" json:"rawLines"`
	FinishedLines []documents.Line `db:"-" json:"finishedLines"`
}

// NewProduction creates a production document for the given date.
func NewProduction(date time.Time) *Production {
	return &Production{
		ID:        id.New(),
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
}

// Normalize defaults every raw line's missing source type to Raw Material.
func (d *Production) Normalize() {
	for i := range d.RawLines {
		if d.RawLines[i].SourceType == "" {
			d.RawLines[i].SourceType = catalog.SourceRawMaterial
		}
	}
}

// Validate checks the run's preconditions before any transaction begins.
func (d *Production) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	raw := make([]documents.Line, len(d.RawLines))
	for i, l := range d.RawLines {
		raw[i] = l.Line
	}
	if err := documents.ValidateLines(ctx, "rawLines", raw); err != nil {
		return err
	}
	return documents.ValidateLines(ctx, "finishedLines", d.FinishedLines)
}
