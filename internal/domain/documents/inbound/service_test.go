package inbound_test

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
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/inbound"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/memory"
)

type fixture struct {
	service      *inbound.Service
	repo         *memory.InboundRepo
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

	repo := memory.NewInboundRepo()
	txManager := memory.NewTxManager()
	txManager.Register(items, rawMaterials, products, repo)

	auditor := memory.NewAuditRecorder()
	return &fixture{
		service:      inbound.NewService(repo, resolver, txManager, auditor),
		repo:         repo,
		items:        items,
		rawMaterials: rawMaterials,
		audit:        auditor,
	}
}

func strPtr(s string) *string { return &s }

func stockOf(t *testing.T, store *memory.CatalogStore, code string) int {
	t.Helper()
	entry, err := store.Get(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, entry, "entry %s", code)
	return entry.Stock
}

func TestCreateAssignsDayScopedCodes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

	for i := 0; i < 3; i++ {
		doc := inbound.NewInbound("PT Sumber", day)
		doc.Lines = []documents.Line{{ID: id.New(), Code: "A-1", Qty: 1}}
		require.NoError(t, f.service.Create(ctx, doc))
	}

	docs, err := f.service.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "IN-20240301-0003", docs[0].Code)
	assert.Equal(t, "IN-20240301-0002", docs[1].Code)
	assert.Equal(t, "IN-20240301-0001", docs[2].Code)

	// A different day starts its own sequence.
	nextDay := day.AddDate(0, 0, 1)
	doc := inbound.NewInbound("PT Sumber", nextDay)
	doc.Lines = []documents.Line{{ID: id.New(), Code: "A-1", Qty: 1}}
	require.NoError(t, f.service.Create(ctx, doc))
	assert.Equal(t, "IN-20240302-0001", doc.Code)
}

func TestCreateUpsertsCatalogEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	doc := inbound.NewInbound("PT Sumber", time.Now())
	doc.Lines = []documents.Line{
		{ID: id.New(), Code: "A-1", Name: strPtr("Gelang"), Qty: 10},
		{ID: id.New(), Code: "A-1", Qty: 5},
	}
	require.NoError(t, f.service.Create(ctx, doc))

	// Both lines land on the same entry.
	assert.Equal(t, 15, stockOf(t, f.items, "A-1"))

	entry, err := f.items.Get(ctx, "A-1")
	require.NoError(t, err)
	require.NotNil(t, entry.Name)
	assert.Equal(t, "Gelang", *entry.Name)
}

func TestCreateRoutesRawMaterialLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	doc := inbound.NewInbound("PT Sumber", time.Now())
	doc.Lines = []documents.Line{
		{ID: id.New(), Code: "A-1", Category: strPtr("Aksesoris"), Qty: 3},
		{ID: id.New(), Code: "K-1", Category: strPtr("Bahan Baku"), Qty: 7},
		{ID: id.New(), Code: "BB-9", Qty: 2},
	}
	require.NoError(t, f.service.Create(ctx, doc))

	assert.Equal(t, 3, stockOf(t, f.items, "A-1"))
	assert.Equal(t, 7, stockOf(t, f.rawMaterials, "K-1"))
	assert.Equal(t, 2, stockOf(t, f.rawMaterials, "BB-9"))
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	doc := inbound.NewInbound("", time.Now())
	doc.Lines = []documents.Line{{ID: id.New(), Code: "A-1", Qty: 1}}
	err := f.service.Create(ctx, doc)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	doc = inbound.NewInbound("PT Sumber", time.Now())
	err = f.service.Create(ctx, doc)
	require.Error(t, err, "empty lines must be rejected")

	doc = inbound.NewInbound("PT Sumber", time.Now())
	doc.Lines = []documents.Line{{ID: id.New(), Code: "A-1", Qty: 0}}
	err = f.service.Create(ctx, doc)
	require.Error(t, err, "zero quantity must be rejected")
}

func TestCreateRecordsAudit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	doc := inbound.NewInbound("PT Sumber", time.Now())
	doc.Lines = []documents.Line{{ID: id.New(), Code: "A-1", Qty: 1}}
	require.NoError(t, f.service.Create(ctx, doc))

	require.Len(t, f.audit.Entries, 1)
	assert.Equal(t, doc.ID, f.audit.Entries[0].EntityID)
}

func TestGetByIDLoadsLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	doc := inbound.NewInbound("PT Sumber", time.Now())
	doc.Lines = []documents.Line{
		{ID: id.New(), Code: "A-1", Qty: 1},
		{ID: id.New(), Code: "A-2", Qty: 2},
	}
	require.NoError(t, f.service.Create(ctx, doc))

	got, err := f.service.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Code, got.Code)
	assert.Len(t, got.Lines, 2)

	_, err = f.service.GetByID(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
}
