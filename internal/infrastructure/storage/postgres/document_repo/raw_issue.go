package document_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/rawissue"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
)

const (
	rawIssuesTable     = "raw_issues"
	rawIssueLinesTable = "raw_issue_lines"
)

// RawIssueRepo implements rawissue.Repository.
type RawIssueRepo struct {
	*BaseDocumentRepo[rawissue.RawIssue]
}

var _ rawissue.Repository = (*RawIssueRepo)(nil)

// NewRawIssueRepo creates a new raw-material issue repository.
func NewRawIssueRepo(txManager *postgres.TxManager) *RawIssueRepo {
	return &RawIssueRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[rawissue.RawIssue](
			txManager, rawIssuesTable, "raw issue",
		),
	}
}

// SaveLines replaces the document's lines.
func (r *RawIssueRepo) SaveLines(ctx context.Context, docID id.ID, lines []rawissue.Line) error {
	return replaceLines(ctx, r.querier(ctx), rawIssueLinesTable, docID, lines)
}

// GetLines retrieves the document's lines in line order.
func (r *RawIssueRepo) GetLines(ctx context.Context, docID id.ID) ([]rawissue.Line, error) {
	return selectLines[rawissue.Line](ctx, r.querier(ctx), rawIssueLinesTable, docID)
}

// GetLine retrieves one line of a document. Returns (nil, nil) when absent.
func (r *RawIssueRepo) GetLine(ctx context.Context, docID, lineID id.ID) (*rawissue.Line, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[rawissue.Line]()...).
		From(rawIssueLinesTable).
		Where(squirrel.Eq{"doc_id": docID, "id": lineID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select line: %w", err)
	}

	var line rawissue.Line
	err = pgxscan.Get(ctx, r.querier(ctx), &line, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select line: %w", err)
	}

	return &line, nil
}

// MarkLineReceived flips a single line to RECEIVED.
func (r *RawIssueRepo) MarkLineReceived(ctx context.Context, lineID id.ID, receivedAt time.Time, receivedBy *string) error {
	q := r.Builder().
		Update(rawIssueLinesTable).
		Set("status", rawissue.StatusReceived).
		Set("received_at", receivedAt).
		Set("received_by", receivedBy).
		Where(squirrel.Eq{"id": lineID, "status": rawissue.StatusOut})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update line: %w", err)
	}

	tag, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("line %s is not outstanding", lineID)
	}

	return nil
}

// CountOutstanding returns the number of lines still OUT.
func (r *RawIssueRepo) CountOutstanding(ctx context.Context, docID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(rawIssueLinesTable).
		Where(squirrel.Eq{"doc_id": docID, "status": rawissue.StatusOut})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count outstanding: %w", err)
	}

	return count, nil
}

// Close marks the document RECEIVED.
func (r *RawIssueRepo) Close(ctx context.Context, docID id.ID, receivedAt time.Time) error {
	q := r.Builder().
		Update(rawIssuesTable).
		Set("status", rawissue.StatusReceived).
		Set("received_at", receivedAt).
		Where(squirrel.Eq{"id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build close: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("close raw issue: %w", err)
	}

	return nil
}

// ListRecent returns the most recent issues with lines, newest first.
func (r *RawIssueRepo) ListRecent(ctx context.Context, limit int) ([]*rawissue.RawIssue, error) {
	docs, err := r.listRecentHeaders(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		lines, err := r.GetLines(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("lines for %s: %w", doc.Code, err)
		}
		doc.Lines = lines
	}
	return docs, nil
}
