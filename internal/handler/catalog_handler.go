package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shopfront/internal/model"
	"shopfront/internal/store"

	"github.com/rs/zerolog"
)

// CatalogHandler exposes the derived catalogue view and accepts the
// selection intents the presentation layer dispatches.
type CatalogHandler struct {
	store  *store.CatalogStore
	logger zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(s *store.CatalogStore, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		store:  s,
		logger: logger.With().Str("handler", "catalog").Logger(),
	}
}

// View handles GET /api/catalog. The first request (and any request with
// refresh=true) triggers a listing fetch before the view is derived; a
// fetch failure still returns the view, carrying the error field, because
// existing state is kept on rejection.
func (h *CatalogHandler) View(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	refresh := r.URL.Query().Get("refresh") == "true"
	if refresh || !h.store.State().Initialized {
		if err := h.store.FetchProducts(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("listing fetch failed, serving stale view")
		}
	}

	writeJSON(w, http.StatusOK, h.store.View())
}

// SetFilters handles POST /api/catalog/filters: merges the posted fields
// into the active filter. Changes to server-side fields trigger a
// refetch; a price-only change refines locally without a round-trip.
func (h *CatalogHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var update model.ProductFilter
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid filter payload", h.logger)
		return
	}

	h.store.SetFilters(update)

	if !priceOnly(update) {
		if err := h.store.FetchProducts(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("filter refetch failed, serving stale view")
		}
	}

	writeJSON(w, http.StatusOK, h.store.View())
}

// ClearFilters handles DELETE /api/catalog/filters.
func (h *CatalogHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.store.ClearFilters()

	if err := h.store.FetchProducts(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("filter refetch failed, serving stale view")
	}

	writeJSON(w, http.StatusOK, h.store.View())
}

// SetSort handles POST /api/catalog/sort. Sorting is applied client side,
// so no refetch happens.
func (h *CatalogHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SortOption string `json:"sortOption"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid sort payload", h.logger)
		return
	}

	opt, err := model.ParseSortOption(payload.SortOption)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidSort, err.Error(), h.logger)
		return
	}

	if err := h.store.SetSortOption(opt); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.store.View())
}

// SetPage handles POST /api/catalog/page. Paging is server side, so the
// listing is refetched for the new window.
func (h *CatalogHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid page payload", h.logger)
		return
	}

	if err := h.store.SetCurrentPage(payload.Page); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if err := h.store.FetchProducts(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("page refetch failed, serving stale view")
	}

	writeJSON(w, http.StatusOK, h.store.View())
}

// SetPageSize handles POST /api/catalog/page-size.
func (h *CatalogHandler) SetPageSize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ItemsPerPage int `json:"itemsPerPage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid page size payload", h.logger)
		return
	}

	if err := h.store.SetItemsPerPage(payload.ItemsPerPage); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if err := h.store.FetchProducts(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("page size refetch failed, serving stale view")
	}

	writeJSON(w, http.StatusOK, h.store.View())
}

// SetViewMode handles POST /api/catalog/view-mode.
func (h *CatalogHandler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ViewMode string `json:"viewMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid view mode payload", h.logger)
		return
	}

	if err := h.store.SetViewMode(model.ViewMode(payload.ViewMode)); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.store.View())
}

// Search handles POST /api/catalog/search.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid search payload", h.logger)
		return
	}

	if err := h.store.Search(r.Context(), payload.Query); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.store.State().SearchResults)
}

// Categories handles GET /api/catalog/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	if err := h.store.FetchCategories(r.Context()); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.store.State().Categories)
}

// Featured handles GET /api/catalog/featured.
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	limit := 8
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidPage, "invalid limit parameter", h.logger)
			return
		}
		limit = parsed
	}

	if err := h.store.FetchFeatured(r.Context(), limit); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.store.State().FeaturedProducts)
}

// ProductByID handles GET /api/catalog/products/{id}.
func (h *CatalogHandler) ProductByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	id := r.URL.Path[len("/api/catalog/products/"):]
	if id == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeProductNotFound, "product ID is required", h.logger)
		return
	}

	if err := h.store.FetchProductByID(r.Context(), id); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.store.State().SelectedProduct)
}

// priceOnly reports whether the filter update touches nothing but the
// price bounds, the one field set the backend never sees.
func priceOnly(update model.ProductFilter) bool {
	if update.MinPrice == nil && update.MaxPrice == nil {
		return false
	}

	stripped := update
	stripped.MinPrice = nil
	stripped.MaxPrice = nil
	return stripped.IsZero()
}
