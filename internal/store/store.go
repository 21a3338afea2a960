// Package store holds the client-side state containers for the catalogue
// and order history. All mutation flows through a single guarded entry
// point per store, so no two updates ever interleave; reads hand out
// copies. Fetch lifecycles follow pending -> fulfilled | rejected, and
// every async operation carries a sequence ticket so a response that
// resolves after a newer request was issued is discarded instead of
// overwriting fresher state.
package store

import (
	"context"
	"sync"

	"shopfront/internal/catalog"
	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// Query keys for the sequence guard. Operations that replace the same
// collection share a key so they supersede each other.
const (
	keyProducts   = "products"
	keyProduct    = "product"
	keyCategories = "categories"
	keyFeatured   = "featured"
	keySearch     = "search"
)

// CatalogState is the catalogue slice of client state.
type CatalogState struct {
	Products         []model.Product
	SelectedProduct  *model.Product
	Categories       []model.Category
	SelectedCategory *model.Category
	FeaturedProducts []model.Product
	SearchResults    []model.Product

	Filter       model.ProductFilter
	SortOption   model.SortOption
	ViewMode     model.ViewMode
	CurrentPage  int
	ItemsPerPage int

	// Server-reported totals for the fetched page set.
	TotalProducts int
	TotalPages    int

	Loading     bool
	Error       string
	Initialized bool
}

// CatalogView is the derived state the presentation layer consumes: the
// client-refined product list with pagination counts recomputed for it.
type CatalogView struct {
	Products      []model.Product      `json:"products"`
	Loading       bool                 `json:"loading"`
	Error         string               `json:"error,omitempty"`
	TotalProducts int                  `json:"totalProducts"`
	TotalPages    int                  `json:"totalPages"`
	CurrentPage   int                  `json:"currentPage"`
	ItemsPerPage  int                  `json:"itemsPerPage"`
	SortOption    model.SortOption     `json:"sortOption"`
	ViewMode      model.ViewMode       `json:"viewMode"`
	Filter        model.ProductFilter  `json:"filter"`
	Initialized   bool                 `json:"initialized"`
}

// CatalogStore owns the catalogue state.
type CatalogStore struct {
	mu    sync.Mutex
	state CatalogState

	// generation identifies the current Products collection for the
	// memoized view; it is bumped on every wholesale replacement.
	generation uint64

	// seq holds the latest issued ticket per query key.
	seq map[string]uint64

	dispatcher      catalog.Dispatcher
	viewCache       *catalog.ViewCache
	defaultPageSize int
	logger          zerolog.Logger
}

// NewCatalogStore creates a catalogue store with the given defaults.
func NewCatalogStore(dispatcher catalog.Dispatcher, defaultPageSize int, logger zerolog.Logger) *CatalogStore {
	if defaultPageSize < 1 {
		defaultPageSize = 12
	}

	return &CatalogStore{
		state: CatalogState{
			SortOption:   model.DefaultSortOption,
			ViewMode:     model.ViewModeGrid,
			CurrentPage:  1,
			ItemsPerPage: defaultPageSize,
		},
		seq:             make(map[string]uint64),
		dispatcher:      dispatcher,
		viewCache:       catalog.NewViewCache(),
		defaultPageSize: defaultPageSize,
		logger:          logger.With().Str("store", "catalog").Logger(),
	}
}

// dispatch applies one synchronous state update. It is the single entry
// point for mutation.
func (s *CatalogStore) dispatch(apply func(*CatalogState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.state)
}

// State returns a copy of the current state.
func (s *CatalogStore) State() CatalogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns the derived catalogue view: the fetched collection run
// through the client-side refinement pipeline, with pagination counts
// recomputed for the refined list. The computation is memoized on the
// collection generation, filter and sort option.
func (s *CatalogStore) View() CatalogView {
	s.mu.Lock()
	st := s.state
	gen := s.generation
	s.mu.Unlock()

	refined := s.viewCache.Get(gen, st.Products, st.Filter, st.SortOption, st.ItemsPerPage)

	return CatalogView{
		Products:      refined.Products,
		Loading:       st.Loading,
		Error:         st.Error,
		TotalProducts: refined.TotalProducts,
		TotalPages:    refined.TotalPages,
		CurrentPage:   st.CurrentPage,
		ItemsPerPage:  st.ItemsPerPage,
		SortOption:    st.SortOption,
		ViewMode:      st.ViewMode,
		Filter:        st.Filter,
		Initialized:   st.Initialized,
	}
}

// begin starts an async operation for the query key: pending semantics
// (loading on, error cleared) plus a fresh sequence ticket.
func (s *CatalogStore) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[key]++
	s.state.Loading = true
	s.state.Error = ""

	return s.seq[key]
}

// settle applies the resolution of an async operation unless a newer
// request was issued for the same key, in which case the resolution is
// discarded entirely. Returns whether the resolution was applied.
func (s *CatalogStore) settle(key string, ticket uint64, apply func(*CatalogState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.seq[key] {
		s.logger.Debug().
			Str("query", key).
			Uint64("ticket", ticket).
			Uint64("latest", s.seq[key]).
			Msg("discarding stale response")
		return false
	}

	s.state.Loading = false
	apply(&s.state)
	return true
}

// reject records a failed fetch: loading off, error set, collections
// untouched (stale-while-error).
func (s *CatalogStore) reject(key string, ticket uint64, err error) {
	s.settle(key, ticket, func(st *CatalogState) {
		st.Error = err.Error()
	})
}

// FetchProducts loads the current page of products for the server-side
// subset of the active filter.
func (s *CatalogStore) FetchProducts(ctx context.Context) error {
	s.mu.Lock()
	filter := s.state.Filter
	page := s.state.CurrentPage
	limit := s.state.ItemsPerPage
	s.mu.Unlock()

	ticket := s.begin(keyProducts)

	result, err := s.dispatcher.FetchProducts(ctx, filter, page, limit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("product fetch failed")
		s.reject(keyProducts, ticket, err)
		return err
	}

	s.settle(keyProducts, ticket, func(st *CatalogState) {
		st.Products = result.Products
		st.TotalProducts = result.Meta.Total
		st.TotalPages = result.Meta.TotalPages
		st.Initialized = true
		s.generation++
	})

	return nil
}

// FetchProductByID loads and selects a single product.
func (s *CatalogStore) FetchProductByID(ctx context.Context, id string) error {
	ticket := s.begin(keyProduct)

	product, err := s.dispatcher.FetchProductByID(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product fetch by ID failed")
		s.reject(keyProduct, ticket, err)
		return err
	}

	s.settle(keyProduct, ticket, func(st *CatalogState) {
		st.SelectedProduct = product
	})

	return nil
}

// FetchCategories loads the category tree. A failure here leaves product
// state untouched; failures are isolated per operation.
func (s *CatalogStore) FetchCategories(ctx context.Context) error {
	ticket := s.begin(keyCategories)

	categories, err := s.dispatcher.FetchCategories(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("category fetch failed")
		s.reject(keyCategories, ticket, err)
		return err
	}

	s.settle(keyCategories, ticket, func(st *CatalogState) {
		st.Categories = categories
	})

	return nil
}

// FetchProductsByCategory replaces the product listing with one page of
// the given category's products. Shares the listing query key with
// FetchProducts so the two supersede each other.
func (s *CatalogStore) FetchProductsByCategory(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	page := s.state.CurrentPage
	limit := s.state.ItemsPerPage
	s.mu.Unlock()

	ticket := s.begin(keyProducts)

	result, err := s.dispatcher.FetchProductsByCategory(ctx, categoryID, page, limit)
	if err != nil {
		s.logger.Warn().Err(err).Str("category_id", categoryID).Msg("category products fetch failed")
		s.reject(keyProducts, ticket, err)
		return err
	}

	s.settle(keyProducts, ticket, func(st *CatalogState) {
		st.Products = result.Products
		st.TotalProducts = result.Meta.Total
		st.TotalPages = result.Meta.TotalPages
		st.Initialized = true
		s.generation++
	})

	return nil
}

// FetchFeatured loads the featured product shelf.
func (s *CatalogStore) FetchFeatured(ctx context.Context, limit int) error {
	ticket := s.begin(keyFeatured)

	products, err := s.dispatcher.FetchFeatured(ctx, limit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("featured fetch failed")
		s.reject(keyFeatured, ticket, err)
		return err
	}

	s.settle(keyFeatured, ticket, func(st *CatalogState) {
		st.FeaturedProducts = products
	})

	return nil
}

// Search loads one page of search results and records the query in the
// active filter.
func (s *CatalogStore) Search(ctx context.Context, query string) error {
	s.mu.Lock()
	page := s.state.CurrentPage
	limit := s.state.ItemsPerPage
	s.mu.Unlock()

	ticket := s.begin(keySearch)

	result, err := s.dispatcher.SearchProducts(ctx, query, page, limit)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("search failed")
		s.reject(keySearch, ticket, err)
		return err
	}

	s.settle(keySearch, ticket, func(st *CatalogState) {
		st.SearchResults = result.Products
		st.Filter = st.Filter.Merge(model.ProductFilter{SearchQuery: &query})
	})

	return nil
}

// SelectProduct sets or clears (nil) the selected product.
func (s *CatalogStore) SelectProduct(p *model.Product) {
	s.dispatch(func(st *CatalogState) {
		st.SelectedProduct = p
	})
}

// SelectCategory sets or clears (nil) the selected category.
func (s *CatalogStore) SelectCategory(c *model.Category) {
	s.dispatch(func(st *CatalogState) {
		st.SelectedCategory = c
	})
}

// SetFilters merges the given fields into the active filter. Fields
// absent from the update are left untouched.
func (s *CatalogStore) SetFilters(update model.ProductFilter) {
	s.dispatch(func(st *CatalogState) {
		st.Filter = st.Filter.Merge(update)
	})
}

// ClearFilters resets the filter to empty.
func (s *CatalogStore) ClearFilters() {
	s.dispatch(func(st *CatalogState) {
		st.Filter = model.ProductFilter{}
	})
}

// SetSortOption selects the catalogue ordering.
func (s *CatalogStore) SetSortOption(opt model.SortOption) error {
	if !opt.Valid() {
		return model.ErrInvalidSort
	}

	s.dispatch(func(st *CatalogState) {
		st.SortOption = opt
	})
	return nil
}

// SetViewMode selects grid or list presentation.
func (s *CatalogStore) SetViewMode(mode model.ViewMode) error {
	if !mode.Valid() {
		return model.ErrInvalidViewMode
	}

	s.dispatch(func(st *CatalogState) {
		st.ViewMode = mode
	})
	return nil
}

// SetCurrentPage moves the pagination window.
func (s *CatalogStore) SetCurrentPage(page int) error {
	if page < 1 {
		return model.ErrInvalidPage
	}

	s.dispatch(func(st *CatalogState) {
		st.CurrentPage = page
	})
	return nil
}

// SetItemsPerPage changes the pagination window size.
func (s *CatalogStore) SetItemsPerPage(perPage int) error {
	if perPage < 1 {
		return model.ErrInvalidPage
	}

	s.dispatch(func(st *CatalogState) {
		st.ItemsPerPage = perPage
	})
	return nil
}

// Reset returns the store to its initial state.
func (s *CatalogStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = CatalogState{
		SortOption:   model.DefaultSortOption,
		ViewMode:     model.ViewModeGrid,
		CurrentPage:  1,
		ItemsPerPage: s.defaultPageSize,
	}
	s.generation++
	s.viewCache.Invalidate()
}
