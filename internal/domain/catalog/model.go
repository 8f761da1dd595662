// Package catalog provides the three stock catalogs (finished items, raw
// materials, catalog products) behind a single resolution interface.
package catalog

import (
	"strings"
	"time"
)

// Kind identifies one of the three catalogs.
type Kind string

const (
	KindItem        Kind = "ITEM"
	KindRawMaterial Kind = "RAW_MATERIAL"
	KindProduct     Kind = "PRODUCT"
)

// SourceType tags a consumed line with the catalog it is expected to live in.
// Component classification is sometimes mislabeled upstream, so consumers
// treat this as a hint, not a guarantee.
type SourceType string

const (
	SourceItem        SourceType = "ITEM"
	SourceRawMaterial SourceType = "RAW_MATERIAL"
)

// KindFor maps a source type hint onto its catalog.
func KindFor(st SourceType) Kind {
	if st == SourceItem {
		return KindItem
	}
	return KindRawMaterial
}

// Fallback returns the opposite consumption catalog. Production consumption
// falls back Items <-> Raw Materials when the hinted catalog misses.
func (k Kind) Fallback() Kind {
	if k == KindItem {
		return KindRawMaterial
	}
	return KindItem
}

// Entry is one row of a stock catalog, keyed by its immutable code.
// Stock is a current counter and never goes negative.
type Entry struct {
	Code        string    `db:"code" json:"code"`
	Name        *string   `db:"name" json:"name,omitempty"`
	Category    *string   `db:"category" json:"category,omitempty"`
	SubCategory *string   `db:"sub_category" json:"subCategory,omitempty"`
	Kind        *string   `db:"kind" json:"kind,omitempty"`
	Stock       int       `db:"stock" json:"stock"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Metadata carries the optional descriptive fields of a catalog entry.
// A nil field means "leave untouched"; a non-nil field overwrites.
type Metadata struct {
	Name        *string
	Category    *string
	SubCategory *string
	Kind        *string
}

// Apply overwrites the entry's descriptive fields with the supplied values.
func (m Metadata) Apply(e *Entry) {
	if m.Name != nil {
		e.Name = m.Name
	}
	if m.Category != nil {
		e.Category = m.Category
	}
	if m.SubCategory != nil {
		e.SubCategory = m.SubCategory
	}
	if m.Kind != nil {
		e.Kind = m.Kind
	}
}

// Raw-material routing markers. Inbound lines whose declared category starts
// with the marker, or whose code carries the raw-material code prefix, are
// received into the Raw Materials catalog instead of Finished Items.
const (
	RawCategoryMarker = "BAHAN"
	RawCodePrefix     = "BB-"
)

// HintKind decides the receiving catalog for an inbound line. This is a
// declared-intent override, not a lookup.
func HintKind(code string, category *string) Kind {
	if category != nil && strings.HasPrefix(strings.ToUpper(strings.TrimSpace(*category)), RawCategoryMarker) {
		return KindRawMaterial
	}
	if strings.HasPrefix(strings.ToUpper(code), RawCodePrefix) {
		return KindRawMaterial
	}
	return KindItem
}
