// Package bom_repo provides the PostgreSQL implementation of BOM storage.
package bom_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/bom"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
)

const (
	headersTable = "boms"
	linesTable   = "bom_lines"
)

// Repo implements bom.Repository.
type Repo struct {
	txManager *postgres.TxManager
}

var _ bom.Repository = (*Repo)(nil)

// NewRepo creates a new BOM repository.
func NewRepo(txManager *postgres.TxManager) *Repo {
	return &Repo{txManager: txManager}
}

// Builder returns a new squirrel builder.
func (r *Repo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// FindExact searches for a header by exact product code, or by product name
// matched case-insensitively against both inputs.
func (r *Repo) FindExact(ctx context.Context, code, name string) (*bom.Header, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[bom.Header]()...).
		From(headersTable).
		Where(squirrel.Or{
			squirrel.Eq{"product_code": code},
			squirrel.Expr("LOWER(product_name) = LOWER(?)", code),
			squirrel.Expr("LOWER(product_name) = LOWER(?)", name),
		}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var header bom.Header
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &header, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select bom: %w", err)
	}

	lines, err := r.GetLines(ctx, header.ID)
	if err != nil {
		return nil, err
	}
	header.Lines = lines

	return &header, nil
}

// ListHeaders returns every header without lines.
func (r *Repo) ListHeaders(ctx context.Context) ([]*bom.Header, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[bom.Header]()...).
		From(headersTable).
		OrderBy("product_name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var headers []*bom.Header
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &headers, sql, args...); err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}

	return headers, nil
}

// GetLines loads the lines of one header, ordered by component name.
func (r *Repo) GetLines(ctx context.Context, headerID id.ID) ([]bom.Line, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[bom.Line]()...).
		From(linesTable).
		Where(squirrel.Eq{"header_id": headerID}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select lines: %w", err)
	}

	var lines []bom.Line
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get bom lines: %w", err)
	}

	return lines, nil
}
