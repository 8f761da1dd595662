package outbound_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/outbound"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/memory"
)

type fixture struct {
	service      *outbound.Service
	repo         *memory.OutboundRepo
	items        *memory.CatalogStore
	rawMaterials *memory.CatalogStore
	products     *memory.CatalogStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	items := memory.NewCatalogStore(catalog.KindItem)
	rawMaterials := memory.NewCatalogStore(catalog.KindRawMaterial)
	products := memory.NewCatalogStore(catalog.KindProduct)
	resolver := catalog.NewResolver(items, rawMaterials, products)

	repo := memory.NewOutboundRepo()
	txManager := memory.NewTxManager()
	txManager.Register(items, rawMaterials, products, repo)

	return &fixture{
		service:      outbound.NewService(repo, resolver, txManager, memory.NewAuditRecorder()),
		repo:         repo,
		items:        items,
		rawMaterials: rawMaterials,
		products:     products,
	}
}

func seed(t *testing.T, store *memory.CatalogStore, code string, stock int) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), &catalog.Entry{Code: code, Stock: stock}))
}

func stockOf(t *testing.T, store *memory.CatalogStore, code string) int {
	t.Helper()
	entry, err := store.Get(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, entry, "entry %s", code)
	return entry.Stock
}

func newDoc(lines ...documents.Line) *outbound.Outbound {
	doc := outbound.NewOutbound("Toko Mawar", time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	doc.Lines = lines
	return doc
}

func line(code string, qty int) documents.Line {
	return documents.Line{ID: id.New(), Code: code, Qty: qty}
}

func TestCreateDecrementsAcrossCatalogs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.items, "A-1", 10)
	seed(t, f.rawMaterials, "K-1", 5)
	seed(t, f.products, "P-1", 2)

	doc := newDoc(line("A-1", 4), line("K-1", 5), line("P-1", 1))
	require.NoError(t, f.service.Create(ctx, doc))

	assert.Equal(t, "OUT-20240301-0001", doc.Code)
	assert.Equal(t, 6, stockOf(t, f.items, "A-1"))
	assert.Equal(t, 0, stockOf(t, f.rawMaterials, "K-1"))
	assert.Equal(t, 1, stockOf(t, f.products, "P-1"))
}

func TestCreateFailsOnUnknownCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.items, "A-1", 10)

	doc := newDoc(line("A-1", 1), line("GHOST", 1))
	err := f.service.Create(ctx, doc)
	assert.True(t, apperror.IsUnknownCode(err))

	// The first line's decrement is rolled back with the document.
	assert.Equal(t, 10, stockOf(t, f.items, "A-1"))
	docs, err := f.service.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreateFailsOnInsufficientStockMidDocument(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.items, "A-1", 10)
	seed(t, f.items, "A-2", 3)

	doc := newDoc(line("A-1", 8), line("A-2", 4))
	err := f.service.Create(ctx, doc)
	require.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "A-2", appErr.Details["code"])
	assert.Equal(t, 4, appErr.Details["requested"])
	assert.Equal(t, 3, appErr.Details["remaining"])

	assert.Equal(t, 10, stockOf(t, f.items, "A-1"))
	assert.Equal(t, 3, stockOf(t, f.items, "A-2"))
}

func TestCreateChecksDuplicateLinesSequentially(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.items, "A-1", 10)

	// 6 + 6 exceeds stock even though each line alone would pass. The second
	// line must see the first line's decrement.
	doc := newDoc(line("A-1", 6), line("A-1", 6))
	err := f.service.Create(ctx, doc)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, 10, stockOf(t, f.items, "A-1"))

	// 6 + 4 drains it exactly.
	doc = newDoc(line("A-1", 6), line("A-1", 4))
	require.NoError(t, f.service.Create(ctx, doc))
	assert.Equal(t, 0, stockOf(t, f.items, "A-1"))
}

func TestCreateShadowedCodeDoesNotFallThrough(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.items, "DUP", 2)
	seed(t, f.rawMaterials, "DUP", 100)

	// Precedence resolves DUP to items; the raw-material stock is invisible
	// to the issuance even though it could cover the quantity.
	doc := newDoc(line("DUP", 5))
	err := f.service.Create(ctx, doc)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, 2, stockOf(t, f.items, "DUP"))
	assert.Equal(t, 100, stockOf(t, f.rawMaterials, "DUP"))
}

func TestCreateFailedDocumentDoesNotConsumeCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.items, "A-1", 10)

	failed := newDoc(line("A-1", 99))
	require.Error(t, f.service.Create(ctx, failed))

	doc := newDoc(line("A-1", 1))
	require.NoError(t, f.service.Create(ctx, doc))
	assert.Equal(t, "OUT-20240301-0001", doc.Code)
}
