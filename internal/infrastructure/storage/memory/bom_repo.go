package memory

import (
	"context"
	"strings"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/bom"
)

// BOMRepo is the in-memory bom.Repository.
type BOMRepo struct {
	headers []*bom.Header
}

var _ bom.Repository = (*BOMRepo)(nil)

// NewBOMRepo creates a BOM repository preloaded with the given headers.
func NewBOMRepo(headers ...*bom.Header) *BOMRepo {
	return &BOMRepo{headers: headers}
}

// Add registers another header.
func (r *BOMRepo) Add(header *bom.Header) {
	r.headers = append(r.headers, header)
}

// FindExact searches by exact product code or case-insensitive product name.
func (r *BOMRepo) FindExact(ctx context.Context, code, name string) (*bom.Header, error) {
	for _, h := range r.headers {
		if h.ProductCode != nil && *h.ProductCode == code {
			return h, nil
		}
		if strings.EqualFold(h.ProductName, code) || (name != "" && strings.EqualFold(h.ProductName, name)) {
			return h, nil
		}
	}
	return nil, nil
}

// ListHeaders returns every header in insertion order.
func (r *BOMRepo) ListHeaders(ctx context.Context) ([]*bom.Header, error) {
	return append([]*bom.Header(nil), r.headers...), nil
}

// GetLines returns the lines of one header.
func (r *BOMRepo) GetLines(ctx context.Context, headerID id.ID) ([]bom.Line, error) {
	for _, h := range r.headers {
		if h.ID == headerID {
			return append([]bom.Line(nil), h.Lines...), nil
		}
	}
	return nil, nil
}
