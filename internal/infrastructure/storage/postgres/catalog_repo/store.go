// Package catalog_repo provides PostgreSQL-backed stock catalog stores.
// The three catalogs (items, raw materials, products) share one schema and
// are served by the same generic store bound to different tables.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
)

// Table names for the three catalogs.
const (
	ItemsTable        = "items"
	RawMaterialsTable = "raw_materials"
	ProductsTable     = "products"
)

// Store implements catalog.Store for one catalog table.
type Store struct {
	txManager  *postgres.TxManager
	kind       catalog.Kind
	tableName  string
	selectCols []string
}

var _ catalog.Store = (*Store)(nil)

// NewItemStore creates the store backing the general items catalog.
func NewItemStore(txManager *postgres.TxManager) *Store {
	return newStore(txManager, catalog.KindItem, ItemsTable)
}

// NewRawMaterialStore creates the store backing the raw materials catalog.
func NewRawMaterialStore(txManager *postgres.TxManager) *Store {
	return newStore(txManager, catalog.KindRawMaterial, RawMaterialsTable)
}

// NewProductStore creates the store backing the finished products catalog.
func NewProductStore(txManager *postgres.TxManager) *Store {
	return newStore(txManager, catalog.KindProduct, ProductsTable)
}

func newStore(txManager *postgres.TxManager, kind catalog.Kind, tableName string) *Store {
	return &Store{
		txManager:  txManager,
		kind:       kind,
		tableName:  tableName,
		selectCols: postgres.ExtractDBColumns[catalog.Entry](),
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (s *Store) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Kind identifies which catalog this store backs.
func (s *Store) Kind() catalog.Kind {
	return s.kind
}

// Get retrieves an entry by code. Returns (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, code string) (*catalog.Entry, error) {
	return s.get(ctx, code, false)
}

// GetForUpdate retrieves an entry with a row lock for stock control.
func (s *Store) GetForUpdate(ctx context.Context, code string) (*catalog.Entry, error) {
	return s.get(ctx, code, true)
}

func (s *Store) get(ctx context.Context, code string, forUpdate bool) (*catalog.Entry, error) {
	q := s.Builder().
		Select(s.selectCols...).
		From(s.tableName).
		Where(squirrel.Eq{"code": code})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var entry catalog.Entry
	querier := s.txManager.GetQuerier(ctx)
	err = pgxscan.Get(ctx, querier, &entry, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select %s: %w", s.tableName, err)
	}

	return &entry, nil
}

// Create inserts a new entry.
func (s *Store) Create(ctx context.Context, entry *catalog.Entry) error {
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	q := s.Builder().
		Insert(s.tableName).
		SetMap(postgres.StructToMap(entry))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := s.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", s.tableName, err)
	}

	return nil
}

// AddStock applies a signed stock delta and overwrites supplied metadata
// fields. Nil metadata fields are left untouched.
func (s *Store) AddStock(ctx context.Context, code string, delta int, meta catalog.Metadata) error {
	q := s.Builder().
		Update(s.tableName).
		Set("stock", squirrel.Expr("stock + ?", delta)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"code": code})

	if meta.Name != nil {
		q = q.Set("name", *meta.Name)
	}
	if meta.Category != nil {
		q = q.Set("category", *meta.Category)
	}
	if meta.SubCategory != nil {
		q = q.Set("sub_category", *meta.SubCategory)
	}
	if meta.Kind != nil {
		q = q.Set("kind", *meta.Kind)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := s.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s stock: %w", s.tableName, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s stock: code %q not found", s.tableName, code)
	}

	return nil
}

// List returns all entries ordered by code.
func (s *Store) List(ctx context.Context) ([]*catalog.Entry, error) {
	q := s.Builder().
		Select(s.selectCols...).
		From(s.tableName).
		OrderBy("code")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var entries []*catalog.Entry
	querier := s.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.tableName, err)
	}

	return entries, nil
}
