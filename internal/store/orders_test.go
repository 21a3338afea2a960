package store

import (
	"context"
	"testing"

	"shopfront/internal/api"
	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrders() []model.Order {
	return []model.Order{
		{ID: uuid.New(), Status: model.OrderShipped, Total: 199.98},
		{ID: uuid.New(), Status: model.OrderPending, Total: 49.99},
	}
}

func TestOrderStore_FetchOrders_Fulfilled(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	s := NewOrderStore(mockDispatcher, 10, zerolog.Nop())

	orders := testOrders()
	mockDispatcher.On("FetchOrders", mock.Anything, 1, 10).
		Return(&model.OrderPage{
			Orders: orders,
			Meta:   model.PageMeta{Total: 7, TotalPages: 4, CurrentPage: 1, ItemsPerPage: 10},
		}, nil)

	err := s.FetchOrders(context.Background())

	require.NoError(t, err)
	state := s.State()
	assert.Equal(t, orders, state.Orders)
	assert.Equal(t, 7, state.TotalOrders)
	assert.Equal(t, 4, state.TotalPages)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	mockDispatcher.AssertExpectations(t)
}

func TestOrderStore_FetchOrders_RejectedKeepsOrders(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	s := NewOrderStore(mockDispatcher, 10, zerolog.Nop())

	orders := testOrders()
	mockDispatcher.On("FetchOrders", mock.Anything, 1, 10).
		Return(&model.OrderPage{Orders: orders, Meta: model.PageMeta{Total: 2, TotalPages: 1}}, nil).Once()
	mockDispatcher.On("FetchOrders", mock.Anything, 1, 10).
		Return(nil, &api.Error{Message: "Network error", Code: api.ErrCodeNetwork}).Once()

	require.NoError(t, s.FetchOrders(context.Background()))
	require.Error(t, s.FetchOrders(context.Background()))

	state := s.State()
	assert.False(t, state.Loading)
	assert.Equal(t, "Network error", state.Error)
	assert.Equal(t, orders, state.Orders)
}

func TestOrderStore_FetchOrderByID(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	s := NewOrderStore(mockDispatcher, 10, zerolog.Nop())

	order := &model.Order{ID: uuid.New(), Status: model.OrderDelivered, Total: 89.50}
	mockDispatcher.On("FetchOrderByID", mock.Anything, order.ID.String()).
		Return(order, nil)
	mockDispatcher.On("FetchOrderByID", mock.Anything, "missing").
		Return(nil, model.ErrOrderNotFound)

	require.NoError(t, s.FetchOrderByID(context.Background(), order.ID.String()))
	require.NotNil(t, s.State().SelectedOrder)
	assert.Equal(t, model.OrderDelivered, s.State().SelectedOrder.Status)

	err := s.FetchOrderByID(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
	assert.Equal(t, model.ErrOrderNotFound.Error(), s.State().Error)
}

func TestOrderStore_SetCurrentPage(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	s := NewOrderStore(mockDispatcher, 10, zerolog.Nop())

	require.NoError(t, s.SetCurrentPage(3))
	assert.Equal(t, 3, s.State().CurrentPage)

	assert.ErrorIs(t, s.SetCurrentPage(0), model.ErrInvalidPage)
	assert.Equal(t, 3, s.State().CurrentPage)
}

func TestOrderStore_StaleResponseDiscarded(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	s := NewOrderStore(mockDispatcher, 10, zerolog.Nop())

	staleOrders := []model.Order{{ID: uuid.New(), Status: model.OrderPending}}
	freshOrders := []model.Order{{ID: uuid.New(), Status: model.OrderPaid}}

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	mockDispatcher.On("FetchOrders", mock.Anything, 1, 10).
		Run(func(mock.Arguments) {
			close(firstStarted)
			<-releaseFirst
		}).
		Return(&model.OrderPage{Orders: staleOrders, Meta: model.PageMeta{Total: 1, TotalPages: 1}}, nil).Once()
	mockDispatcher.On("FetchOrders", mock.Anything, 1, 10).
		Return(&model.OrderPage{Orders: freshOrders, Meta: model.PageMeta{Total: 1, TotalPages: 1}}, nil).Once()

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		s.FetchOrders(context.Background())
	}()

	<-firstStarted
	require.NoError(t, s.FetchOrders(context.Background()))

	close(releaseFirst)
	<-firstDone

	state := s.State()
	require.Len(t, state.Orders, 1)
	assert.Equal(t, model.OrderPaid, state.Orders[0].Status)
	assert.False(t, state.Loading)
}

func TestOrderStore_Reset(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	s := NewOrderStore(mockDispatcher, 10, zerolog.Nop())

	mockDispatcher.On("FetchOrders", mock.Anything, 1, 10).
		Return(&model.OrderPage{Orders: testOrders(), Meta: model.PageMeta{Total: 2, TotalPages: 1}}, nil)

	require.NoError(t, s.FetchOrders(context.Background()))
	s.Reset()

	state := s.State()
	assert.Empty(t, state.Orders)
	assert.Equal(t, 0, state.TotalOrders)
	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, 10, state.ItemsPerPage)
}
