// Package document_repo provides PostgreSQL implementations for transaction
// document repositories. All four document types share header semantics via
// BaseDocumentRepo; line persistence is per-document.
package document_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
)

// BaseDocumentRepo provides common header operations for document entities.
type BaseDocumentRepo[T any] struct {
	txManager  *postgres.TxManager
	tableName  string
	entityName string
	selectCols []string
}

// NewBaseDocumentRepo creates a new base document repository.
func NewBaseDocumentRepo[T any](
	txManager *postgres.TxManager,
	tableName string,
	entityName string,
) *BaseDocumentRepo[T] {
	return &BaseDocumentRepo[T]{
		txManager:  txManager,
		tableName:  tableName,
		entityName: entityName,
		selectCols: postgres.ExtractDBColumns[T](),
	}
}

// Builder returns a new squirrel builder.
func (r *BaseDocumentRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseDocumentRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create inserts a new document header.
func (r *BaseDocumentRepo[T]) Create(ctx context.Context, entity *T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// GetByID retrieves a document header without lines.
func (r *BaseDocumentRepo[T]) GetByID(ctx context.Context, docID id.ID) (*T, error) {
	return r.getBy(ctx, squirrel.Eq{"id": docID}, docID)
}

// GetByCode retrieves a document header by its transaction code.
func (r *BaseDocumentRepo[T]) GetByCode(ctx context.Context, code string) (*T, error) {
	return r.getBy(ctx, squirrel.Eq{"code": code}, code)
}

func (r *BaseDocumentRepo[T]) getBy(ctx context.Context, where squirrel.Eq, key any) (*T, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(where)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var entity T
	err = pgxscan.Get(ctx, r.querier(ctx), &entity, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound(r.entityName, key)
		}
		return nil, fmt.Errorf("select %s: %w", r.tableName, err)
	}

	return &entity, nil
}

// CountByDateRange counts documents whose date falls in [from, to).
// Runs on the caller's transaction when one is active.
func (r *BaseDocumentRepo[T]) CountByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(r.tableName).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.tableName, err)
	}

	return count, nil
}

// listRecentHeaders returns the newest document headers.
func (r *BaseDocumentRepo[T]) listRecentHeaders(ctx context.Context, limit int) ([]*T, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var entities []*T
	if err := pgxscan.Select(ctx, r.querier(ctx), &entities, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.tableName, err)
	}

	return entities, nil
}

// replaceLines deletes a document's line rows and bulk-inserts the given
// ones. Rows are built from db-tagged line structs plus doc_id and line_no.
func replaceLines[L any](ctx context.Context, querier postgres.Querier, table string, docID id.ID, lines []L) error {
	deleteSQL := "DELETE FROM " + table + " WHERE doc_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	cols := postgres.ExtractDBColumns[L]()
	allCols := append([]string{"doc_id", "line_no"}, cols...)

	q := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Insert(table).
		Columns(allCols...)

	for i, line := range lines {
		data := postgres.StructToMap(line)
		values := make([]any, 0, len(allCols))
		values = append(values, docID, i+1)
		for _, col := range cols {
			values = append(values, data[col])
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines into %s: %w", table, err)
	}

	return nil
}

// selectLines reads a document's line rows in line order.
func selectLines[L any](ctx context.Context, querier postgres.Querier, table string, docID id.ID) ([]L, error) {
	q := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select(postgres.ExtractDBColumns[L]()...).
		From(table).
		Where(squirrel.Eq{"doc_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select lines: %w", err)
	}

	var lines []L
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines from %s: %w", table, err)
	}

	return lines, nil
}
