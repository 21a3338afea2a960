package catalog

import (
	"testing"
	"time"

	"shopfront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func testProducts() []model.Product {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	return []model.Product{
		{
			ID: "P001", Name: "Walnut Desk", Description: "Solid walnut standing desk",
			Price: 49.99, Category: "furniture", CategoryID: "C1", Brand: "Oakline",
			Tags: []string{"wood", "office"}, Stock: 3, Rating: 4.5, RatingCount: 120,
			CreatedAt: base,
		},
		{
			ID: "P002", Name: "Aluminium Lamp", Description: "Adjustable desk lamp",
			Price: 99.99, Category: "lighting", CategoryID: "C2", Brand: "Lumo",
			Tags: []string{"metal", "office"}, Stock: 0, Rating: 3.8, RatingCount: 45,
			CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "P003", Name: "Ergonomic Chair", Description: "Mesh-backed office chair",
			Price: 149.99, Category: "furniture", CategoryID: "C1", Brand: "Oakline",
			Tags: []string{"office"}, Stock: 10, Rating: 4.9, RatingCount: 310,
			OnSale: true, CreatedAt: base.Add(48 * time.Hour),
		},
	}
}

func TestApplyFilters_PriceBand(t *testing.T) {
	products := testProducts()

	result := ApplyFilters(products, model.ProductFilter{
		MinPrice: floatPtr(60),
		MaxPrice: floatPtr(150),
	})

	require.Len(t, result, 2)
	assert.Equal(t, "P002", result[0].ID)
	assert.Equal(t, "P003", result[1].ID)
}

func TestApplyFilters_PriceBandUsesEffectivePrice(t *testing.T) {
	products := testProducts()
	// P003 is on sale at 55.00; its list price 149.99 is outside the band.
	products[2].DiscountPrice = floatPtr(55.00)

	result := ApplyFilters(products, model.ProductFilter{
		MinPrice: floatPtr(50),
		MaxPrice: floatPtr(60),
	})

	require.Len(t, result, 1)
	assert.Equal(t, "P003", result[0].ID)
}

func TestApplyFilters_BoundsAreInclusive(t *testing.T) {
	products := testProducts()

	result := ApplyFilters(products, model.ProductFilter{
		MinPrice: floatPtr(49.99),
		MaxPrice: floatPtr(99.99),
	})

	require.Len(t, result, 2)
	assert.Equal(t, "P001", result[0].ID)
	assert.Equal(t, "P002", result[1].ID)
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name        string
		filter      model.ProductFilter
		expectedIDs []string
	}{
		{
			name:        "Empty filter retains everything",
			filter:      model.ProductFilter{},
			expectedIDs: []string{"P001", "P002", "P003"},
		},
		{
			name:        "In stock only",
			filter:      model.ProductFilter{InStock: boolPtr(true)},
			expectedIDs: []string{"P001", "P003"},
		},
		{
			name:        "Out of stock only",
			filter:      model.ProductFilter{InStock: boolPtr(false)},
			expectedIDs: []string{"P002"},
		},
		{
			name:        "Category exact match",
			filter:      model.ProductFilter{Category: strPtr("furniture")},
			expectedIDs: []string{"P001", "P003"},
		},
		{
			name:        "Brand exact match",
			filter:      model.ProductFilter{Brand: strPtr("Lumo")},
			expectedIDs: []string{"P002"},
		},
		{
			name:        "Minimum rating",
			filter:      model.ProductFilter{Rating: floatPtr(4.0)},
			expectedIDs: []string{"P001", "P003"},
		},
		{
			name:        "On sale",
			filter:      model.ProductFilter{OnSale: boolPtr(true)},
			expectedIDs: []string{"P003"},
		},
		{
			name:        "Tags match any",
			filter:      model.ProductFilter{Tags: []string{"metal", "wood"}},
			expectedIDs: []string{"P001", "P002"},
		},
		{
			name:        "Search matches name case-insensitively",
			filter:      model.ProductFilter{SearchQuery: strPtr("LAMP")},
			expectedIDs: []string{"P002"},
		},
		{
			name:        "Search matches description",
			filter:      model.ProductFilter{SearchQuery: strPtr("mesh-backed")},
			expectedIDs: []string{"P003"},
		},
		{
			name: "Fields compose with AND",
			filter: model.ProductFilter{
				Category: strPtr("furniture"),
				InStock:  boolPtr(true),
				MinPrice: floatPtr(100),
			},
			expectedIDs: []string{"P003"},
		},
		{
			name: "No matches",
			filter: model.ProductFilter{
				Brand:  strPtr("Lumo"),
				OnSale: boolPtr(true),
			},
			expectedIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyFilters(testProducts(), tt.filter)

			ids := make([]string, 0, len(result))
			for _, p := range result {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	products := testProducts()

	ApplyFilters(products, model.ProductFilter{InStock: boolPtr(true)})

	assert.Equal(t, testProducts(), products)
}

func TestSortProducts(t *testing.T) {
	tests := []struct {
		name        string
		option      model.SortOption
		expectedIDs []string
	}{
		{"Price ascending", model.SortPriceAsc, []string{"P001", "P002", "P003"}},
		{"Price descending", model.SortPriceDesc, []string{"P003", "P002", "P001"}},
		{"Name ascending", model.SortNameAsc, []string{"P002", "P003", "P001"}},
		{"Name descending", model.SortNameDesc, []string{"P001", "P003", "P002"}},
		{"Newest first", model.SortNewest, []string{"P003", "P002", "P001"}},
		{"Oldest first", model.SortOldest, []string{"P001", "P002", "P003"}},
		{"Highest rated", model.SortRating, []string{"P003", "P001", "P002"}},
		{"Most popular", model.SortPopularity, []string{"P003", "P001", "P002"}},
		{"Best selling", model.SortBestSelling, []string{"P003", "P001", "P002"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SortProducts(testProducts(), tt.option)

			ids := make([]string, 0, len(result))
			for _, p := range result {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestSortProducts_Stable(t *testing.T) {
	products := []model.Product{
		{ID: "A", Name: "First", Price: 25.00},
		{ID: "B", Name: "Second", Price: 25.00},
		{ID: "C", Name: "Third", Price: 10.00},
		{ID: "D", Name: "Fourth", Price: 25.00},
	}

	result := SortProducts(products, model.SortPriceAsc)

	require.Len(t, result, 4)
	assert.Equal(t, "C", result[0].ID)
	// Equal keys keep their relative input order.
	assert.Equal(t, "A", result[1].ID)
	assert.Equal(t, "B", result[2].ID)
	assert.Equal(t, "D", result[3].ID)
}

func TestSortProducts_Idempotent(t *testing.T) {
	for opt := range map[model.SortOption]struct{}{
		model.SortPriceAsc: {}, model.SortPriceDesc: {},
		model.SortNameAsc: {}, model.SortNameDesc: {},
		model.SortNewest: {}, model.SortOldest: {},
		model.SortRating: {}, model.SortPopularity: {}, model.SortBestSelling: {},
	} {
		once := SortProducts(testProducts(), opt)
		twice := SortProducts(once, opt)
		assert.Equal(t, once, twice, "sort option %s is not idempotent", opt)
	}
}

func TestSortProducts_UnknownOptionKeepsOrder(t *testing.T) {
	products := testProducts()

	result := SortProducts(products, model.SortOption("bogus"))

	assert.Equal(t, products, result)
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name          string
		totalProducts int
		itemsPerPage  int
		expected      int
	}{
		{"Empty list floors at one page", 0, 12, 1},
		{"Exact multiple", 24, 12, 2},
		{"Partial last page rounds up", 25, 12, 3},
		{"Single item", 1, 12, 1},
		{"Zero page size floors at one page", 10, 0, 1},
		{"Negative page size floors at one page", 10, -3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageCount(tt.totalProducts, tt.itemsPerPage))
		})
	}
}

func TestSlice(t *testing.T) {
	products := testProducts()

	tests := []struct {
		name        string
		page        int
		perPage     int
		expectedIDs []string
	}{
		{"First page", 1, 2, []string{"P001", "P002"}},
		{"Partial last page", 2, 2, []string{"P003"}},
		{"Page past the end", 3, 2, []string{}},
		{"Zero page is invalid", 0, 2, []string{}},
		{"Whole list on one page", 1, 10, []string{"P001", "P002", "P003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slice(products, tt.page, tt.perPage)

			ids := make([]string, 0, len(result))
			for _, p := range result {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}
