// Package rawissue provides the raw-material issue document: materials handed
// to an artisan, tracked per line until everything comes back received.
package rawissue

import (
	"context"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
)

// CodePrefix is the transaction code prefix for raw-material issues.
const CodePrefix = "RM-OUT"

// Line statuses. A line starts OUT and flips to RECEIVED exactly once.
type Status string

const (
	StatusOut      Status = "OUT"
	StatusReceived Status = "RECEIVED"
)

// Line is one issued material with tracking state.
type Line struct {
	documents.Line
	BatchCode  *string    `db:"batch_code" json:"batchCode,omitempty"`
	Status     Status     `db:"status" json:"status"`
	ReceivedAt *time.Time `db:"received_at" json:"receivedAt,omitempty"`
	ReceivedBy *string    `db:"received_by" json:"receivedBy,omitempty"`
}

// RawIssue records raw materials issued to an artisan. The document closes
// when its last outstanding line is received.
type RawIssue struct {
	ID          id.ID      `db:"id" json:"id"`
	Code        string     `db:"code" json:"code"`
	Artisan     string     `db:"artisan" json:"artisan"`
	Date        time.Time  `db:"date" json:"date"`
	Note        *string    `db:"note" json:"note,omitempty"`
	Status      Status     `db:"status" json:"status"`
	ReceivedAt  *time.Time `db:"received_at" json:"receivedAt,omitempty"`
	CreatedByID *string    `db:"created_by_id" json:"createdById,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`

	Lines []Line `db:"-" json:"lines"`
}

// NewRawIssue creates a raw-material issue for the given artisan and date.
func NewRawIssue(artisan string, date time.Time) *RawIssue {
	return &RawIssue{
		ID:        id.New(),
		Artisan:   artisan,
		Date:      date,
		Status:    StatusOut,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the issue's preconditions before any transaction begins.
func (d *RawIssue) Validate(ctx context.Context) error {
	if d.Artisan == "" {
		return apperror.NewValidation("artisan is required").
			WithDetail("field", "artisan")
	}
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	lines := make([]documents.Line, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = l.Line
	}
	return documents.ValidateLines(ctx, "lines", lines)
}
