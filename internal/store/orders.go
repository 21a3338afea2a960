package store

import (
	"context"
	"sync"

	"shopfront/internal/catalog"
	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

const (
	keyOrders = "orders"
	keyOrder  = "order"
)

// OrderState is the order-history slice of client state.
type OrderState struct {
	Orders        []model.Order
	SelectedOrder *model.Order
	TotalOrders   int
	TotalPages    int
	CurrentPage   int
	ItemsPerPage  int
	Loading       bool
	Error         string
}

// OrderStore owns the order-history state. It follows the same lifecycle
// and sequence-guard rules as the catalogue store; a failing order fetch
// never touches catalogue state and vice versa.
type OrderStore struct {
	mu    sync.Mutex
	state OrderState
	seq   map[string]uint64

	dispatcher catalog.Dispatcher
	logger     zerolog.Logger
}

// NewOrderStore creates an order-history store.
func NewOrderStore(dispatcher catalog.Dispatcher, defaultPageSize int, logger zerolog.Logger) *OrderStore {
	if defaultPageSize < 1 {
		defaultPageSize = 10
	}

	return &OrderStore{
		state: OrderState{
			CurrentPage:  1,
			ItemsPerPage: defaultPageSize,
		},
		seq:        make(map[string]uint64),
		dispatcher: dispatcher,
		logger:     logger.With().Str("store", "orders").Logger(),
	}
}

// State returns a copy of the current state.
func (s *OrderStore) State() OrderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *OrderStore) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[key]++
	s.state.Loading = true
	s.state.Error = ""

	return s.seq[key]
}

func (s *OrderStore) settle(key string, ticket uint64, apply func(*OrderState)) bool {
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

// FetchOrders loads the current page of the customer's order history.
func (s *OrderStore) FetchOrders(ctx context.Context) error {
	s.mu.Lock()
	page := s.state.CurrentPage
	limit := s.state.ItemsPerPage
	s.mu.Unlock()

	ticket := s.begin(keyOrders)

	result, err := s.dispatcher.FetchOrders(ctx, page, limit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("order fetch failed")
		s.settle(keyOrders, ticket, func(st *OrderState) {
			st.Error = err.Error()
		})
		return err
	}

	s.settle(keyOrders, ticket, func(st *OrderState) {
		st.Orders = result.Orders
		st.TotalOrders = result.Meta.Total
		st.TotalPages = result.Meta.TotalPages
	})

	return nil
}

// FetchOrderByID loads and selects a single order.
func (s *OrderStore) FetchOrderByID(ctx context.Context, id string) error {
	ticket := s.begin(keyOrder)

	order, err := s.dispatcher.FetchOrderByID(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("order_id", id).Msg("order fetch by ID failed")
		s.settle(keyOrder, ticket, func(st *OrderState) {
			st.Error = err.Error()
		})
		return err
	}

	s.settle(keyOrder, ticket, func(st *OrderState) {
		st.SelectedOrder = order
	})

	return nil
}

// SetCurrentPage moves the pagination window.
func (s *OrderStore) SetCurrentPage(page int) error {
	if page < 1 {
		return model.ErrInvalidPage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentPage = page
	return nil
}

// Reset returns the store to its initial state.
func (s *OrderStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	perPage := s.state.ItemsPerPage
	s.state = OrderState{
		CurrentPage:  1,
		ItemsPerPage: perPage,
	}
}
