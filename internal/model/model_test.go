package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestProduct_EffectivePrice(t *testing.T) {
	p := Product{ID: "P001", Price: 100}
	assert.Equal(t, 100.0, p.EffectivePrice())

	p.DiscountPrice = floatPtr(75)
	assert.Equal(t, 75.0, p.EffectivePrice())
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr string
	}{
		{
			name:    "Valid product",
			product: Product{ID: "P001", Price: 100, Stock: 3, Rating: 4.5},
		},
		{
			name:    "Negative stock",
			product: Product{ID: "P001", Stock: -1},
			wantErr: "stock must not be negative",
		},
		{
			name:    "Discount above list price",
			product: Product{ID: "P001", Price: 100, OnSale: true, DiscountPrice: floatPtr(120)},
			wantErr: "exceeds list price",
		},
		{
			name:    "Rating out of range",
			product: Product{ID: "P001", Rating: 5.5},
			wantErr: "rating must be within [0,5]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestProductFilter_Merge(t *testing.T) {
	base := ProductFilter{
		MinPrice: floatPtr(60),
		Category: strPtr("furniture"),
	}

	merged := base.Merge(ProductFilter{
		OnSale:   boolPtr(true),
		Category: strPtr("lighting"),
	})

	// Updated fields overwrite, absent fields survive.
	require.NotNil(t, merged.MinPrice)
	assert.Equal(t, 60.0, *merged.MinPrice)
	require.NotNil(t, merged.Category)
	assert.Equal(t, "lighting", *merged.Category)
	require.NotNil(t, merged.OnSale)
	assert.True(t, *merged.OnSale)

	// The receiver is left untouched.
	assert.Equal(t, "furniture", *base.Category)
	assert.Nil(t, base.OnSale)
}

func TestProductFilter_IsZero(t *testing.T) {
	assert.True(t, ProductFilter{}.IsZero())
	assert.False(t, ProductFilter{OnSale: boolPtr(false)}.IsZero())
	assert.False(t, ProductFilter{Tags: []string{"wood"}}.IsZero())
}

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name         string
		total        int
		currentPage  int
		itemsPerPage int
		expected     PageMeta
	}{
		{
			name:  "First of three pages",
			total: 25, currentPage: 1, itemsPerPage: 12,
			expected: PageMeta{Total: 25, TotalPages: 3, CurrentPage: 1, ItemsPerPage: 12, HasNextPage: true, HasPrevPage: false},
		},
		{
			name:  "Middle page",
			total: 25, currentPage: 2, itemsPerPage: 12,
			expected: PageMeta{Total: 25, TotalPages: 3, CurrentPage: 2, ItemsPerPage: 12, HasNextPage: true, HasPrevPage: true},
		},
		{
			name:  "Last page",
			total: 25, currentPage: 3, itemsPerPage: 12,
			expected: PageMeta{Total: 25, TotalPages: 3, CurrentPage: 3, ItemsPerPage: 12, HasNextPage: false, HasPrevPage: true},
		},
		{
			name:  "Empty listing",
			total: 0, currentPage: 1, itemsPerPage: 12,
			expected: PageMeta{Total: 0, TotalPages: 0, CurrentPage: 1, ItemsPerPage: 12, HasNextPage: false, HasPrevPage: false},
		},
		{
			name:  "Zero page size",
			total: 10, currentPage: 1, itemsPerPage: 0,
			expected: PageMeta{Total: 10, TotalPages: 0, CurrentPage: 1, ItemsPerPage: 0, HasNextPage: true, HasPrevPage: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewPageMeta(tt.total, tt.currentPage, tt.itemsPerPage))
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderPaid, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderShipped, false},
		{OrderPaid, OrderProcessing, true},
		{OrderProcessing, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, false},
		{OrderDelivered, OrderReturned, true},
		{OrderReturned, OrderRefunded, true},
		{OrderCancelled, OrderPaid, false},
		{OrderRefunded, OrderPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, OrderShipped.Valid())
	assert.False(t, OrderStatus("teleported").Valid())
}

func TestOrderItem_Totals(t *testing.T) {
	item := OrderItem{ProductID: "P001", Price: 25, Quantity: 3, Discount: 5}

	assert.Equal(t, 75.0, item.Subtotal())
	assert.Equal(t, 70.0, item.FinalPrice())

	// Discount defaults to zero.
	plain := OrderItem{Price: 10, Quantity: 2}
	assert.Equal(t, 20.0, plain.FinalPrice())
}

func TestParseSortOption(t *testing.T) {
	for _, raw := range []string{
		"price-asc", "price-desc", "name-asc", "name-desc",
		"newest", "oldest", "rating", "popularity", "best-selling",
	} {
		opt, err := ParseSortOption(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, opt.String())
	}

	_, err := ParseSortOption("cheapest")
	assert.Error(t, err)
}

func TestViewMode_Valid(t *testing.T) {
	assert.True(t, ViewModeGrid.Valid())
	assert.True(t, ViewModeList.Valid())
	assert.False(t, ViewMode("carousel").Valid())
}
