package catalog

import (
	"testing"

	"shopfront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewCache_DerivesCounts(t *testing.T) {
	cache := NewViewCache()
	products := testProducts()

	view := cache.Get(1, products, model.ProductFilter{InStock: boolPtr(true)}, model.SortPriceAsc, 2)

	require.Len(t, view.Products, 2)
	assert.Equal(t, "P001", view.Products[0].ID)
	assert.Equal(t, "P003", view.Products[1].ID)
	assert.Equal(t, 2, view.TotalProducts)
	assert.Equal(t, 1, view.TotalPages)
}

func TestViewCache_EmptyResultStillHasOnePage(t *testing.T) {
	cache := NewViewCache()

	view := cache.Get(1, testProducts(), model.ProductFilter{Brand: strPtr("nobody")}, model.SortNewest, 12)

	assert.Empty(t, view.Products)
	assert.Equal(t, 0, view.TotalProducts)
	assert.Equal(t, 1, view.TotalPages)
}

func TestViewCache_MemoizesOnInputs(t *testing.T) {
	cache := NewViewCache()
	products := testProducts()
	filter := model.ProductFilter{InStock: boolPtr(true)}

	first := cache.Get(1, products, filter, model.SortPriceAsc, 2)
	second := cache.Get(1, products, filter, model.SortPriceAsc, 2)

	// A hit returns the cached slice itself, not a recomputed copy.
	require.NotEmpty(t, first.Products)
	assert.Same(t, &first.Products[0], &second.Products[0])
}

func TestViewCache_RecomputesWhenInputChanges(t *testing.T) {
	cache := NewViewCache()
	products := testProducts()
	filter := model.ProductFilter{InStock: boolPtr(true)}

	first := cache.Get(1, products, filter, model.SortPriceAsc, 2)

	sorted := cache.Get(1, products, filter, model.SortPriceDesc, 2)
	assert.NotEqual(t, first.Products[0].ID, sorted.Products[0].ID)

	// A new collection generation invalidates the cache even when the
	// slice contents look the same.
	regenerated := cache.Get(2, products, filter, model.SortPriceDesc, 2)
	assert.Equal(t, sorted.TotalProducts, regenerated.TotalProducts)
	assert.NotSame(t, &sorted.Products[0], &regenerated.Products[0])
}

func TestViewCache_Invalidate(t *testing.T) {
	cache := NewViewCache()
	products := testProducts()
	filter := model.ProductFilter{}

	first := cache.Get(1, products, filter, model.SortNewest, 12)
	cache.Invalidate()
	second := cache.Get(1, products, filter, model.SortNewest, 12)

	require.NotEmpty(t, first.Products)
	assert.NotSame(t, &first.Products[0], &second.Products[0])
}
