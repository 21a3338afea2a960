package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPaid       OrderStatus = "paid"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderReturned   OrderStatus = "returned"
	OrderRefunded   OrderStatus = "refunded"
)

// orderTransitions captures the main flow
// pending -> paid -> processing -> shipped -> delivered
// with cancelled/returned/refunded side branches.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderPaid, OrderCancelled},
	OrderPaid:       {OrderProcessing, OrderCancelled, OrderRefunded},
	OrderProcessing: {OrderShipped, OrderCancelled, OrderRefunded},
	OrderShipped:    {OrderDelivered, OrderReturned},
	OrderDelivered:  {OrderReturned},
	OrderReturned:   {OrderRefunded},
}

// CanTransitionTo reports whether the status may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderProcessing, OrderShipped,
		OrderDelivered, OrderCancelled, OrderReturned, OrderRefunded:
		return true
	}
	return false
}

// Order represents a customer order held read-only on the client.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	Status    OrderStatus `json:"status"`
	Items     []OrderItem `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	Discount  float64     `json:"discount"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Discount  float64 `json:"discount"`
}

// Subtotal is the undiscounted line total.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// FinalPrice is the line total after the item discount (default 0).
func (i OrderItem) FinalPrice() float64 {
	return i.Subtotal() - i.Discount
}
