package model

// ProductFilter narrows a product listing. Every field is optional; a nil
// (or empty slice) field places no constraint on the result.
type ProductFilter struct {
	CategoryID  *string  `json:"categoryId,omitempty"`
	Category    *string  `json:"category,omitempty"`
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	SearchQuery *string  `json:"searchQuery,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	OnSale      *bool    `json:"onSale,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Merge returns a copy of f with every field present in other overwriting
// the matching field. Fields absent from other are left untouched.
func (f ProductFilter) Merge(other ProductFilter) ProductFilter {
	merged := f

	if other.CategoryID != nil {
		merged.CategoryID = other.CategoryID
	}
	if other.Category != nil {
		merged.Category = other.Category
	}
	if other.MinPrice != nil {
		merged.MinPrice = other.MinPrice
	}
	if other.MaxPrice != nil {
		merged.MaxPrice = other.MaxPrice
	}
	if other.InStock != nil {
		merged.InStock = other.InStock
	}
	if other.SearchQuery != nil {
		merged.SearchQuery = other.SearchQuery
	}
	if other.Brand != nil {
		merged.Brand = other.Brand
	}
	if other.Rating != nil {
		merged.Rating = other.Rating
	}
	if other.Featured != nil {
		merged.Featured = other.Featured
	}
	if other.OnSale != nil {
		merged.OnSale = other.OnSale
	}
	if len(other.Tags) > 0 {
		merged.Tags = other.Tags
	}

	return merged
}

// IsZero reports whether no filter field is set.
func (f ProductFilter) IsZero() bool {
	return f.CategoryID == nil &&
		f.Category == nil &&
		f.MinPrice == nil &&
		f.MaxPrice == nil &&
		f.InStock == nil &&
		f.SearchQuery == nil &&
		f.Brand == nil &&
		f.Rating == nil &&
		f.Featured == nil &&
		f.OnSale == nil &&
		len(f.Tags) == 0
}
