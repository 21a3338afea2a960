package catalog

import (
	"reflect"
	"sync"

	"shopfront/internal/model"
)

// View is the refined catalogue: the fully filtered and sorted product
// list plus the pagination counts derived from it.
type View struct {
	Products      []model.Product
	TotalProducts int
	TotalPages    int
}

// ViewCache memoizes the refinement pipeline on its three inputs: the
// fetched collection (identified by a generation the store bumps on every
// replacement), the filter and the sort option, plus the page size the
// counts depend on. Refinement is pure, so a hit can be returned as-is.
type ViewCache struct {
	mu sync.Mutex

	valid      bool
	generation uint64
	filter     model.ProductFilter
	sortOption model.SortOption
	perPage    int

	view View
}

// NewViewCache creates an empty view cache.
func NewViewCache() *ViewCache {
	return &ViewCache{}
}

// Get returns the refined view for the given inputs, recomputing only
// when an input changed since the last call.
func (c *ViewCache) Get(generation uint64, products []model.Product, filter model.ProductFilter, sortOption model.SortOption, perPage int) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid &&
		c.generation == generation &&
		c.sortOption == sortOption &&
		c.perPage == perPage &&
		reflect.DeepEqual(c.filter, filter) {
		return c.view
	}

	refined := SortProducts(ApplyFilters(products, filter), sortOption)

	c.view = View{
		Products:      refined,
		TotalProducts: len(refined),
		TotalPages:    PageCount(len(refined), perPage),
	}
	c.generation = generation
	c.filter = filter
	c.sortOption = sortOption
	c.perPage = perPage
	c.valid = true

	return c.view
}

// Invalidate drops the cached view.
func (c *ViewCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}
