package memory

import (
	"context"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/inbound"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/outbound"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/production"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/rawissue"
)

// docTable holds document headers in insertion order.
type docTable[T any] struct {
	docs   []*T
	idOf   func(*T) id.ID
	dateOf func(*T) time.Time
}

func (t *docTable[T]) add(doc *T) {
	clone := *doc
	t.docs = append(t.docs, &clone)
}

func (t *docTable[T]) byID(docID id.ID) *T {
	for _, doc := range t.docs {
		if t.idOf(doc) == docID {
			clone := *doc
			return &clone
		}
	}
	return nil
}

func (t *docTable[T]) countByDateRange(from, to time.Time) int64 {
	var count int64
	for _, doc := range t.docs {
		d := t.dateOf(doc)
		if !d.Before(from) && d.Before(to) {
			count++
		}
	}
	return count
}

// recent walks insertion order backwards, newest first.
func (t *docTable[T]) recent(limit int) []*T {
	n := len(t.docs)
	if limit > n {
		limit = n
	}
	out := make([]*T, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		clone := *t.docs[i]
		out = append(out, &clone)
	}
	return out
}

func (t *docTable[T]) snapshotDocs() []*T {
	state := make([]*T, len(t.docs))
	for i, doc := range t.docs {
		clone := *doc
		state[i] = &clone
	}
	return state
}

// lineTable holds line slices keyed by document id.
type lineTable[L any] map[id.ID][]L

func (t lineTable[L]) save(docID id.ID, lines []L) {
	t[docID] = append([]L(nil), lines...)
}

func (t lineTable[L]) get(docID id.ID) []L {
	return append([]L(nil), t[docID]...)
}

func (t lineTable[L]) snapshotLines() lineTable[L] {
	state := make(lineTable[L], len(t))
	for docID, lines := range t {
		state[docID] = append([]L(nil), lines...)
	}
	return state
}

// InboundRepo is the in-memory inbound.Repository.
type InboundRepo struct {
	table docTable[inbound.Inbound]
	lines lineTable[documents.Line]
}

var _ inbound.Repository = (*InboundRepo)(nil)

// NewInboundRepo creates an empty inbound repository.
func NewInboundRepo() *InboundRepo {
	return &InboundRepo{
		table: docTable[inbound.Inbound]{
			idOf:   func(d *inbound.Inbound) id.ID { return d.ID },
			dateOf: func(d *inbound.Inbound) time.Time { return d.Date },
		},
		lines: make(lineTable[documents.Line]),
	}
}

func (r *InboundRepo) Create(ctx context.Context, doc *inbound.Inbound) error {
	r.table.add(doc)
	return nil
}

func (r *InboundRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	r.lines.save(docID, lines)
	return nil
}

func (r *InboundRepo) GetByID(ctx context.Context, docID id.ID) (*inbound.Inbound, error) {
	doc := r.table.byID(docID)
	if doc == nil {
		return nil, apperror.NewNotFound("inbound", docID)
	}
	return doc, nil
}

func (r *InboundRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return r.lines.get(docID), nil
}

func (r *InboundRepo) CountByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	return r.table.countByDateRange(from, to), nil
}

func (r *InboundRepo) ListRecent(ctx context.Context, limit int) ([]*inbound.Inbound, error) {
	docs := r.table.recent(limit)
	for _, doc := range docs {
		doc.Lines = r.lines.get(doc.ID)
	}
	return docs, nil
}

type inboundState struct {
	docs  []*inbound.Inbound
	lines lineTable[documents.Line]
}

func (r *InboundRepo) snapshot() any {
	return inboundState{docs: r.table.snapshotDocs(), lines: r.lines.snapshotLines()}
}

func (r *InboundRepo) restore(state any) {
	s := state.(inboundState)
	r.table.docs = s.docs
	r.lines = s.lines
}

// OutboundRepo is the in-memory outbound.Repository.
type OutboundRepo struct {
	table docTable[outbound.Outbound]
	lines lineTable[documents.Line]
}

var _ outbound.Repository = (*OutboundRepo)(nil)

// NewOutboundRepo creates an empty outbound repository.
func NewOutboundRepo() *OutboundRepo {
	return &OutboundRepo{
		table: docTable[outbound.Outbound]{
			idOf:   func(d *outbound.Outbound) id.ID { return d.ID },
			dateOf: func(d *outbound.Outbound) time.Time { return d.Date },
		},
		lines: make(lineTable[documents.Line]),
	}
}

func (r *OutboundRepo) Create(ctx context.Context, doc *outbound.Outbound) error {
	r.table.add(doc)
	return nil
}

func (r *OutboundRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	r.lines.save(docID, lines)
	return nil
}

func (r *OutboundRepo) GetByID(ctx context.Context, docID id.ID) (*outbound.Outbound, error) {
	doc := r.table.byID(docID)
	if doc == nil {
		return nil, apperror.NewNotFound("outbound", docID)
	}
	return doc, nil
}

func (r *OutboundRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return r.lines.get(docID), nil
}

func (r *OutboundRepo) CountByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	return r.table.countByDateRange(from, to), nil
}

func (r *OutboundRepo) ListRecent(ctx context.Context, limit int) ([]*outbound.Outbound, error) {
	docs := r.table.recent(limit)
	for _, doc := range docs {
		doc.Lines = r.lines.get(doc.ID)
	}
	return docs, nil
}

type outboundState struct {
	docs  []*outbound.Outbound
	lines lineTable[documents.Line]
}

func (r *OutboundRepo) snapshot() any {
	return outboundState{docs: r.table.snapshotDocs(), lines: r.lines.snapshotLines()}
}

func (r *OutboundRepo) restore(state any) {
	s := state.(outboundState)
	r.table.docs = s.docs
	r.lines = s.lines
}

// ProductionRepo is the in-memory production.Repository.
type ProductionRepo struct {
	table         docTable[production.Production]
	rawLines      lineTable[production.RawLine]
	finishedLines lineTable[documents.Line]
}

var _ production.Repository = (*ProductionRepo)(nil)

// NewProductionRepo creates an empty production repository.
func NewProductionRepo() *ProductionRepo {
	return &ProductionRepo{
		table: docTable[production.Production]{
			idOf:   func(d *production.Production) id.ID { return d.ID },
			dateOf: func(d *production.Production) time.Time { return d.Date },
		},
		rawLines:      make(lineTable[production.RawLine]),
		finishedLines: make(lineTable[documents.Line]),
	}
}

func (r *ProductionRepo) Create(ctx context.Context, doc *production.Production) error {
	r.table.add(doc)
	return nil
}

func (r *ProductionRepo) SaveRawLines(ctx context.Context, docID id.ID, lines []production.RawLine) error {
	r.rawLines.save(docID, lines)
	return nil
}

func (r *ProductionRepo) SaveFinishedLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	r.finishedLines.save(docID, lines)
	return nil
}

func (r *ProductionRepo) GetByID(ctx context.Context, docID id.ID) (*production.Production, error) {
	doc := r.table.byID(docID)
	if doc == nil {
		return nil, apperror.NewNotFound("production", docID)
	}
	return doc, nil
}

func (r *ProductionRepo) GetRawLines(ctx context.Context, docID id.ID) ([]production.RawLine, error) {
	return r.rawLines.get(docID), nil
}

func (r *ProductionRepo) GetFinishedLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return r.finishedLines.get(docID), nil
}

func (r *ProductionRepo) CountByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	return r.table.countByDateRange(from, to), nil
}

func (r *ProductionRepo) ListRecent(ctx context.Context, limit int) ([]*production.Production, error) {
	docs := r.table.recent(limit)
	for _, doc := range docs {
		doc.RawLines = r.rawLines.get(doc.ID)
		doc.FinishedLines = r.finishedLines.get(doc.ID)
	}
	return docs, nil
}

type productionState struct {
	docs          []*production.Production
	rawLines      lineTable[production.RawLine]
	finishedLines lineTable[documents.Line]
}

func (r *ProductionRepo) snapshot() any {
	return productionState{
		docs:          r.table.snapshotDocs(),
		rawLines:      r.rawLines.snapshotLines(),
		finishedLines: r.finishedLines.snapshotLines(),
	}
}

func (r *ProductionRepo) restore(state any) {
	s := state.(productionState)
	r.table.docs = s.docs
	r.rawLines = s.rawLines
	r.finishedLines = s.finishedLines
}

// RawIssueRepo is the in-memory rawissue.Repository.
type RawIssueRepo struct {
	table docTable[rawissue.RawIssue]
	lines lineTable[rawissue.Line]
}

var _ rawissue.Repository = (*RawIssueRepo)(nil)

// NewRawIssueRepo creates an empty raw-material issue repository.
func NewRawIssueRepo() *RawIssueRepo {
	return &RawIssueRepo{
		table: docTable[rawissue.RawIssue]{
			idOf:   func(d *rawissue.RawIssue) id.ID { return d.ID },
			dateOf: func(d *rawissue.RawIssue) time.Time { return d.Date },
		},
		lines: make(lineTable[rawissue.Line]),
	}
}

func (r *RawIssueRepo) Create(ctx context.Context, doc *rawissue.RawIssue) error {
	r.table.add(doc)
	return nil
}

func (r *RawIssueRepo) SaveLines(ctx context.Context, docID id.ID, lines []rawissue.Line) error {
	r.lines.save(docID, lines)
	return nil
}

func (r *RawIssueRepo) GetByID(ctx context.Context, docID id.ID) (*rawissue.RawIssue, error) {
	doc := r.table.byID(docID)
	if doc == nil {
		return nil, apperror.NewNotFound("raw issue", docID)
	}
	return doc, nil
}

func (r *RawIssueRepo) GetByCode(ctx context.Context, code string) (*rawissue.RawIssue, error) {
	for _, doc := range r.table.docs {
		if doc.Code == code {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("raw issue", code)
}

func (r *RawIssueRepo) GetLines(ctx context.Context, docID id.ID) ([]rawissue.Line, error) {
	return r.lines.get(docID), nil
}

func (r *RawIssueRepo) GetLine(ctx context.Context, docID, lineID id.ID) (*rawissue.Line, error) {
	for _, line := range r.lines[docID] {
		if line.ID == lineID {
			clone := line
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *RawIssueRepo) MarkLineReceived(ctx context.Context, lineID id.ID, receivedAt time.Time, receivedBy *string) error {
	for docID, lines := range r.lines {
		for i := range lines {
			if lines[i].ID == lineID {
				lines[i].Status = rawissue.StatusReceived
				lines[i].ReceivedAt = &receivedAt
				lines[i].ReceivedBy = receivedBy
				r.lines[docID] = lines
				return nil
			}
		}
	}
	return apperror.NewNotFound("raw issue line", lineID)
}

func (r *RawIssueRepo) CountOutstanding(ctx context.Context, docID id.ID) (int64, error) {
	var count int64
	for _, line := range r.lines[docID] {
		if line.Status == rawissue.StatusOut {
			count++
		}
	}
	return count, nil
}

func (r *RawIssueRepo) Close(ctx context.Context, docID id.ID, receivedAt time.Time) error {
	for _, doc := range r.table.docs {
		if doc.ID == docID {
			doc.Status = rawissue.StatusReceived
			doc.ReceivedAt = &receivedAt
			return nil
		}
	}
	return apperror.NewNotFound("raw issue", docID)
}

func (r *RawIssueRepo) CountByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	return r.table.countByDateRange(from, to), nil
}

func (r *RawIssueRepo) ListRecent(ctx context.Context, limit int) ([]*rawissue.RawIssue, error) {
	docs := r.table.recent(limit)
	for _, doc := range docs {
		doc.Lines = r.lines.get(doc.ID)
	}
	return docs, nil
}

type rawIssueState struct {
	docs  []*rawissue.RawIssue
	lines lineTable[rawissue.Line]
}

func (r *RawIssueRepo) snapshot() any {
	return rawIssueState{docs: r.table.snapshotDocs(), lines: r.lines.snapshotLines()}
}

func (r *RawIssueRepo) restore(state any) {
	s := state.(rawIssueState)
	r.table.docs = s.docs
	r.lines = s.lines
}
