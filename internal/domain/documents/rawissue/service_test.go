package rawissue_test

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
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/rawissue"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/memory"
)

type fixture struct {
	service      *rawissue.Service
	repo         *memory.RawIssueRepo
	items        *memory.CatalogStore
	rawMaterials *memory.CatalogStore
	audit        *memory.AuditRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	items := memory.NewCatalogStore(catalog.KindItem)
	rawMaterials := memory.NewCatalogStore(catalog.KindRawMaterial)
	products := memory.NewCatalogStore(catalog.KindProduct)
	resolver := catalog.NewResolver(items, rawMaterials, products)

	repo := memory.NewRawIssueRepo()
	txManager := memory.NewTxManager()
	txManager.Register(items, rawMaterials, products, repo)

	auditor := memory.NewAuditRecorder()
	return &fixture{
		service:      rawissue.NewService(repo, resolver, txManager, auditor),
		repo:         repo,
		items:        items,
		rawMaterials: rawMaterials,
		audit:        auditor,
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

func issueLine(code string, qty int) rawissue.Line {
	return rawissue.Line{Line: documents.Line{ID: id.New(), Code: code, Qty: qty}}
}

func newDoc(lines ...rawissue.Line) *rawissue.RawIssue {
	doc := rawissue.NewRawIssue("Bu Siti", time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	doc.Lines = lines
	return doc
}

func TestCreateIssuesFromRawMaterialsOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)
	seed(t, f.items, "A-1", 10)

	doc := newDoc(issueLine("K-1", 4))
	require.NoError(t, f.service.Create(ctx, doc))

	assert.Equal(t, "RM-OUT-20240301-0001", doc.Code)
	assert.Equal(t, 6, stockOf(t, f.rawMaterials, "K-1"))
	for _, l := range doc.Lines {
		assert.Equal(t, rawissue.StatusOut, l.Status)
	}

	// No fallback to items: the code must live in raw materials.
	doc = newDoc(issueLine("A-1", 1))
	err := f.service.Create(ctx, doc)
	assert.True(t, apperror.IsUnknownCode(err))
	assert.Equal(t, 10, stockOf(t, f.items, "A-1"))
}

func TestCreateRollsBackOnFailingLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)
	seed(t, f.rawMaterials, "K-2", 1)

	doc := newDoc(issueLine("K-1", 5), issueLine("K-2", 2))
	err := f.service.Create(ctx, doc)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, 10, stockOf(t, f.rawMaterials, "K-1"))

	docs, err := f.service.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestReceiveLineClosesWhenLastReturned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)
	seed(t, f.rawMaterials, "K-2", 10)

	doc := newDoc(issueLine("K-1", 2), issueLine("K-2", 3))
	require.NoError(t, f.service.Create(ctx, doc))

	require.NoError(t, f.service.ReceiveLine(ctx, doc.ID, doc.Lines[0].ID))

	got, err := f.service.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, rawissue.StatusOut, got.Status, "one line still outstanding")
	assert.Equal(t, rawissue.StatusReceived, got.Lines[0].Status)
	assert.NotNil(t, got.Lines[0].ReceivedAt)
	assert.Equal(t, rawissue.StatusOut, got.Lines[1].Status)

	require.NoError(t, f.service.ReceiveLine(ctx, doc.ID, doc.Lines[1].ID))

	got, err = f.service.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, rawissue.StatusReceived, got.Status)
	assert.NotNil(t, got.ReceivedAt)
}

func TestReceiveLineTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)

	doc := newDoc(issueLine("K-1", 2))
	require.NoError(t, f.service.Create(ctx, doc))
	require.NoError(t, f.service.ReceiveLine(ctx, doc.ID, doc.Lines[0].ID))

	err := f.service.ReceiveLine(ctx, doc.ID, doc.Lines[0].ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestReceiveLineUnknownLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)

	doc := newDoc(issueLine("K-1", 2))
	require.NoError(t, f.service.Create(ctx, doc))

	err := f.service.ReceiveLine(ctx, doc.ID, id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestReceiveDoesNotRestoreStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed(t, f.rawMaterials, "K-1", 10)

	doc := newDoc(issueLine("K-1", 4))
	require.NoError(t, f.service.Create(ctx, doc))
	require.NoError(t, f.service.ReceiveLine(ctx, doc.ID, doc.Lines[0].ID))

	// Return tracking is bookkeeping only; the material was consumed.
	assert.Equal(t, 6, stockOf(t, f.rawMaterials, "K-1"))
}
