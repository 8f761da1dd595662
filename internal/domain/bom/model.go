// Package bom provides bill-of-materials lookup: exact header match first,
// token-based fuzzy match as a fallback.
package bom

import (
	"github.com/shopspring/decimal"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
)

// Header is one bill of materials, keyed by the finished product it yields.
// BOM data is read-only from the engine's perspective; population is an
// external batch concern.
type Header struct {
	ID          id.ID   `db:"id" json:"id"`
	ProductCode *string `db:"product_code" json:"productCode,omitempty"`
	ProductName string  `db:"product_name" json:"productName"`
	Category    *string `db:"category" json:"category,omitempty"`
	Lines       []Line  `db:"-" json:"lines"`
}

// Line names one component and its quantity per unit of finished product.
// Code may be empty for components only known by name.
type Line struct {
	ID         id.ID              `db:"id" json:"id"`
	HeaderID   id.ID              `db:"header_id" json:"-"`
	Code       *string            `db:"code" json:"code,omitempty"`
	Name       string             `db:"name" json:"name"`
	SourceType catalog.SourceType `db:"source_type" json:"sourceType"`
	Qty        decimal.Decimal    `db:"qty" json:"qty"`
}
