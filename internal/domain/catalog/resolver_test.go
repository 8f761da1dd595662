package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/memory"
)

func newResolver(t *testing.T) (*catalog.Resolver, *memory.CatalogStore, *memory.CatalogStore, *memory.CatalogStore) {
	t.Helper()
	items := memory.NewCatalogStore(catalog.KindItem)
	rawMaterials := memory.NewCatalogStore(catalog.KindRawMaterial)
	products := memory.NewCatalogStore(catalog.KindProduct)
	return catalog.NewResolver(items, rawMaterials, products), items, rawMaterials, products
}

func seed(t *testing.T, store *memory.CatalogStore, code string, stock int) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), &catalog.Entry{Code: code, Stock: stock}))
}

func stockOf(t *testing.T, store *memory.CatalogStore, code string) int {
	t.Helper()
	entry, err := store.Get(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, entry)
	return entry.Stock
}

func TestResolvePrecedence(t *testing.T) {
	ctx := context.Background()
	resolver, items, rawMaterials, products := newResolver(t)

	// Same code in all three catalogs: items wins.
	seed(t, items, "X-1", 1)
	seed(t, rawMaterials, "X-1", 2)
	seed(t, products, "X-1", 3)

	store, entry, err := resolver.Resolve(ctx, "X-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, catalog.KindItem, store.Kind())
	assert.Equal(t, 1, entry.Stock)

	// Raw materials beat products.
	seed(t, rawMaterials, "X-2", 5)
	seed(t, products, "X-2", 7)

	store, entry, err = resolver.Resolve(ctx, "X-2")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, catalog.KindRawMaterial, store.Kind())

	// Unknown code resolves to nothing, without error.
	store, entry, err = resolver.Resolve(ctx, "MISSING")
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.Nil(t, entry)
}

func TestIncrementUpserts(t *testing.T) {
	ctx := context.Background()
	resolver, items, _, _ := newResolver(t)

	name := "Widget"
	err := resolver.Increment(ctx, catalog.KindItem, "W-1", 10, catalog.Metadata{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 10, stockOf(t, items, "W-1"))

	// Second receipt adds to the counter and overwrites metadata.
	renamed := "Widget v2"
	err = resolver.Increment(ctx, catalog.KindItem, "W-1", 5, catalog.Metadata{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, 15, stockOf(t, items, "W-1"))

	entry, err := items.Get(ctx, "W-1")
	require.NoError(t, err)
	require.NotNil(t, entry.Name)
	assert.Equal(t, "Widget v2", *entry.Name)
}

func TestIncrementLeavesMetadataWhenNil(t *testing.T) {
	ctx := context.Background()
	resolver, items, _, _ := newResolver(t)

	name := "Original"
	require.NoError(t, resolver.Increment(ctx, catalog.KindItem, "W-1", 1, catalog.Metadata{Name: &name}))
	require.NoError(t, resolver.Increment(ctx, catalog.KindItem, "W-1", 1, catalog.Metadata{}))

	entry, err := items.Get(ctx, "W-1")
	require.NoError(t, err)
	require.NotNil(t, entry.Name)
	assert.Equal(t, "Original", *entry.Name)
}

func TestDecrement(t *testing.T) {
	ctx := context.Background()
	resolver, _, rawMaterials, _ := newResolver(t)
	seed(t, rawMaterials, "RM-1", 10)

	err := resolver.Decrement(ctx, catalog.KindRawMaterial, "RM-1", 4, catalog.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, 6, stockOf(t, rawMaterials, "RM-1"))

	// Exhausting to exactly zero is allowed.
	err = resolver.Decrement(ctx, catalog.KindRawMaterial, "RM-1", 6, catalog.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, 0, stockOf(t, rawMaterials, "RM-1"))

	// Below zero is not.
	err = resolver.Decrement(ctx, catalog.KindRawMaterial, "RM-1", 1, catalog.Metadata{})
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestDecrementUnknownCode(t *testing.T) {
	ctx := context.Background()
	resolver, items, _, _ := newResolver(t)
	seed(t, items, "IT-1", 100)

	// Code exists in items but the decrement targets raw materials: no
	// cross-catalog search on the kind-scoped path.
	err := resolver.Decrement(ctx, catalog.KindRawMaterial, "IT-1", 1, catalog.Metadata{})
	assert.True(t, apperror.IsUnknownCode(err))
	assert.Equal(t, 100, stockOf(t, items, "IT-1"))
}

func TestDecrementResolved(t *testing.T) {
	ctx := context.Background()
	resolver, items, rawMaterials, products := newResolver(t)
	seed(t, items, "DUP", 10)
	seed(t, rawMaterials, "DUP", 10)
	seed(t, products, "P-1", 3)

	// Precedence picks items; the raw-material copy is untouched.
	require.NoError(t, resolver.DecrementResolved(ctx, "DUP", 4, catalog.Metadata{}))
	assert.Equal(t, 6, stockOf(t, items, "DUP"))
	assert.Equal(t, 10, stockOf(t, rawMaterials, "DUP"))

	// Products are reachable when nothing shadows the code.
	require.NoError(t, resolver.DecrementResolved(ctx, "P-1", 3, catalog.Metadata{}))
	assert.Equal(t, 0, stockOf(t, products, "P-1"))

	err := resolver.DecrementResolved(ctx, "NOPE", 1, catalog.Metadata{})
	assert.True(t, apperror.IsUnknownCode(err))
}

func TestHintKind(t *testing.T) {
	bahan := "Bahan Baku"
	aksesoris := "Aksesoris"
	padded := "  bahan penolong"

	assert.Equal(t, catalog.KindRawMaterial, catalog.HintKind("X-1", &bahan))
	assert.Equal(t, catalog.KindRawMaterial, catalog.HintKind("X-1", &padded))
	assert.Equal(t, catalog.KindRawMaterial, catalog.HintKind("BB-001", nil))
	assert.Equal(t, catalog.KindRawMaterial, catalog.HintKind("bb-001", &aksesoris))
	assert.Equal(t, catalog.KindItem, catalog.HintKind("X-1", &aksesoris))
	assert.Equal(t, catalog.KindItem, catalog.HintKind("X-1", nil))
}
