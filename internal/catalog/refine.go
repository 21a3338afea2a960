// Package catalog implements the client-side product query pipeline: the
// pure refinement engine (filter, sort, pagination derivation) and the
// dispatcher that translates filters into backend queries.
package catalog

import (
	"sort"
	"strings"

	"shopfront/internal/model"
)

// ApplyFilters returns the products that satisfy every present field of
// the filter. Absent fields place no constraint. The input order is
// preserved and the input slice is never mutated.
//
// Price bounds are checked against the effective (discounted) price,
// inclusively on both ends. This is the one filter the backend never
// sees; it always runs here.
func ApplyFilters(products []model.Product, filter model.ProductFilter) []model.Product {
	if filter.IsZero() {
		out := make([]model.Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matches(p, filter) {
			out = append(out, p)
		}
	}
	return out
}

// matches reports whether p satisfies every present filter field.
func matches(p model.Product, f model.ProductFilter) bool {
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.Brand != nil && p.Brand != *f.Brand {
		return false
	}

	price := p.EffectivePrice()
	if f.MinPrice != nil && price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && price > *f.MaxPrice {
		return false
	}

	if f.InStock != nil {
		inStock := p.Stock > 0
		if inStock != *f.InStock {
			return false
		}
	}

	if f.Rating != nil && p.Rating < *f.Rating {
		return false
	}

	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}

	if f.OnSale != nil && p.OnSale != *f.OnSale {
		return false
	}

	if len(f.Tags) > 0 && !anyTagMatches(p.Tags, f.Tags) {
		return false
	}

	if f.SearchQuery != nil && *f.SearchQuery != "" {
		query := strings.ToLower(*f.SearchQuery)
		name := strings.ToLower(p.Name)
		description := strings.ToLower(p.Description)
		if !strings.Contains(name, query) && !strings.Contains(description, query) {
			return false
		}
	}

	return true
}

// anyTagMatches reports whether the two tag sets intersect.
func anyTagMatches(productTags, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, pt := range productTags {
			if pt == ft {
				return true
			}
		}
	}
	return false
}

// SortProducts returns a copy of products ordered by the given option.
// The sort is stable: products with equal keys keep their relative input
// order, which is the only ordering guarantee on ties. Unknown options
// return the input order unchanged.
//
// Best-selling uses rating count as its popularity proxy; the data model
// carries no distinct sales metric.
func SortProducts(products []model.Product, opt model.SortOption) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)

	var less func(a, b *model.Product) bool

	switch opt {
	case model.SortPriceAsc:
		less = func(a, b *model.Product) bool { return a.EffectivePrice() < b.EffectivePrice() }
	case model.SortPriceDesc:
		less = func(a, b *model.Product) bool { return a.EffectivePrice() > b.EffectivePrice() }
	case model.SortNameAsc:
		less = func(a, b *model.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case model.SortNameDesc:
		less = func(a, b *model.Product) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	case model.SortNewest:
		less = func(a, b *model.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case model.SortOldest:
		less = func(a, b *model.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case model.SortRating:
		less = func(a, b *model.Product) bool { return a.Rating > b.Rating }
	case model.SortPopularity, model.SortBestSelling:
		less = func(a, b *model.Product) bool { return a.RatingCount > b.RatingCount }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})

	return out
}

// PageCount derives the page count for a refined list. The floor of one
// page prevents a zero-page view even when the list is empty.
func PageCount(totalProducts, itemsPerPage int) int {
	if itemsPerPage <= 0 {
		return 1
	}

	pages := (totalProducts + itemsPerPage - 1) / itemsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Slice returns the window of products visible on the given 1-based page.
// Out-of-range pages yield an empty slice.
func Slice(products []model.Product, page, perPage int) []model.Product {
	if page < 1 || perPage < 1 {
		return []model.Product{}
	}

	start := (page - 1) * perPage
	if start >= len(products) {
		return []model.Product{}
	}

	end := start + perPage
	if end > len(products) {
		end = len(products)
	}

	return products[start:end]
}
