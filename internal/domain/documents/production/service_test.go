package production_test

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
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/production"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/memory"
)

type fixture struct {
	service      *production.Service
	repo         *memory.ProductionRepo
	items        *memory.CatalogStore
	rawMaterials *memory.CatalogStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	items := memory.NewCatalogStore(catalog.KindItem)
	rawMaterials := memory.NewCatalogStore(catalog.KindRawMaterial)
	products := memory.NewCatalogStore(catalog.KindProduct)
	resolver := catalog.NewResolver(items, rawMaterials, products)

	repo := memory.NewProductionRepo()
	txManager := memory.NewTxManager()
	txManager.Register(items, rawMaterials, products, repo)

	return &fixture{
		service:      production.NewService(repo, resolver, txManager, memory.NewAuditRecorder()),
		repo:         repo,
		items:        items,
		rawMaterials: rawMaterials,
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

func rawLine(code string, qty int, source catalog.SourceType) production.RawLine {
	return production.RawLine{
		Line:       documents.Line{ID: id.New(), Code: code, Qty: qty},
		SourceType: source,
	}
}

func finishedLine(code string, qty int) documents.Line {
	return documents.Line{ID: id.New(), Code: code, Qty: qty}
}

func newDoc(raw []production.RawLine, finished []documents.Line) *production.Production {
	doc := production.NewProduction(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	doc.RawLines = raw
	doc.FinishedLines = finished
	return doc
}

func TestCreateConsumesAndProduces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 20)
	seed(t, f.rawMaterials, "K-2", 10)

	doc := newDoc(
		[]production.RawLine{
			rawLine("K-1", 5, catalog.SourceRawMaterial),
			rawLine("K-2", 2, catalog.SourceRawMaterial),
		},
		[]documents.Line{finishedLine("G-1", 3)},
	)
	require.NoError(t, f.service.Create(ctx, doc))

	assert.Equal(t, "PROD-20240301-0001", doc.Code)
	assert.Equal(t, 15, stockOf(t, f.rawMaterials, "K-1"))
	assert.Equal(t, 8, stockOf(t, f.rawMaterials, "K-2"))
	assert.Equal(t, 3, stockOf(t, f.items, "G-1"))
}

func TestCreateFallsBackOnUnknownCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Component lives in items despite the raw-material hint.
	seed(t, f.items, "A-1", 10)

	doc := newDoc(
		[]production.RawLine{rawLine("A-1", 4, catalog.SourceRawMaterial)},
		[]documents.Line{finishedLine("G-1", 1)},
	)
	require.NoError(t, f.service.Create(ctx, doc))
	assert.Equal(t, 6, stockOf(t, f.items, "A-1"))

	// And the reverse direction: an item hint that lives in raw materials.
	seed(t, f.rawMaterials, "K-1", 10)
	doc = newDoc(
		[]production.RawLine{rawLine("K-1", 3, catalog.SourceItem)},
		[]documents.Line{finishedLine("G-2", 1)},
	)
	require.NoError(t, f.service.Create(ctx, doc))
	assert.Equal(t, 7, stockOf(t, f.rawMaterials, "K-1"))
}

func TestCreateNoFallbackOnInsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Hinted catalog has the code but not the quantity; the other catalog
	// could cover it. Insufficient stock is final, no fallback.
	seed(t, f.rawMaterials, "K-1", 2)
	seed(t, f.items, "K-1", 100)

	doc := newDoc(
		[]production.RawLine{rawLine("K-1", 5, catalog.SourceRawMaterial)},
		[]documents.Line{finishedLine("G-1", 1)},
	)
	err := f.service.Create(ctx, doc)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, 2, stockOf(t, f.rawMaterials, "K-1"))
	assert.Equal(t, 100, stockOf(t, f.items, "K-1"))
}

func TestCreateUnknownInBothCatalogsFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)

	doc := newDoc(
		[]production.RawLine{
			rawLine("K-1", 5, catalog.SourceRawMaterial),
			rawLine("GHOST", 1, catalog.SourceRawMaterial),
		},
		[]documents.Line{finishedLine("G-1", 1)},
	)
	err := f.service.Create(ctx, doc)
	assert.True(t, apperror.IsUnknownCode(err))

	// The first consumption is rolled back.
	assert.Equal(t, 10, stockOf(t, f.rawMaterials, "K-1"))
}

func TestCreateFailedRunLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)
	seed(t, f.items, "G-1", 7)

	// A failing raw line aborts the whole run: earlier decrements are rolled
	// back and nothing is produced.
	doc := newDoc(
		[]production.RawLine{
			rawLine("K-1", 5, catalog.SourceRawMaterial),
			rawLine("K-1", 50, catalog.SourceRawMaterial),
		},
		[]documents.Line{finishedLine("G-1", 3)},
	)
	require.Error(t, f.service.Create(ctx, doc))
	assert.Equal(t, 10, stockOf(t, f.rawMaterials, "K-1"))
	assert.Equal(t, 7, stockOf(t, f.items, "G-1"))
}

func TestNormalizeDefaultsSourceType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)

	doc := newDoc(
		[]production.RawLine{rawLine("K-1", 5, "")},
		[]documents.Line{finishedLine("G-1", 1)},
	)
	require.NoError(t, f.service.Create(ctx, doc))
	assert.Equal(t, catalog.SourceRawMaterial, doc.RawLines[0].SourceType)
	assert.Equal(t, 5, stockOf(t, f.rawMaterials, "K-1"))
}

func TestGetByIDLoadsBothLineSets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)

	doc := newDoc(
		[]production.RawLine{rawLine("K-1", 5, catalog.SourceRawMaterial)},
		[]documents.Line{finishedLine("G-1", 2), finishedLine("G-2", 1)},
	)
	require.NoError(t, f.service.Create(ctx, doc))

	got, err := f.service.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, got.RawLines, 1)
	assert.Len(t, got.FinishedLines, 2)
}
