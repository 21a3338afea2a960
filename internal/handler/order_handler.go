package handler

import (
	"net/http"
	"strconv"

	"shopfront/internal/model"
	"shopfront/internal/store"

	"github.com/rs/zerolog"
)

// OrderHandler exposes the customer's order history.
type OrderHandler struct {
	store  *store.OrderStore
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(s *store.OrderStore, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		store:  s,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// orderHistoryView is the order slice as the presentation layer reads it.
type orderHistoryView struct {
	Orders      []model.Order `json:"orders"`
	Loading     bool          `json:"loading"`
	Error       string        `json:"error,omitempty"`
	TotalOrders int           `json:"totalOrders"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// List handles GET /api/orders with an optional page parameter.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidPage, "invalid page parameter", h.logger)
			return
		}
		if err := h.store.SetCurrentPage(page); err != nil {
			writeDomainError(w, r, err, h.logger)
			return
		}
	}

	if err := h.store.FetchOrders(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("order fetch failed, serving stale state")
	}

	state := h.store.State()
	writeJSON(w, http.StatusOK, orderHistoryView{
		Orders:      state.Orders,
		Loading:     state.Loading,
		Error:       state.Error,
		TotalOrders: state.TotalOrders,
		TotalPages:  state.TotalPages,
		CurrentPage: state.CurrentPage,
	})
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	id := r.URL.Path[len("/api/orders/"):]
	if id == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeOrderNotFound, "order ID is required", h.logger)
		return
	}

	if err := h.store.FetchOrderByID(r.Context(), id); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.store.State().SelectedOrder)
}
