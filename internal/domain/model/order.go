package model

import "time"

// OrderStatus describes the order fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusTransitions is the complete transition table. Adding a state or a
// transition is a one-line change here.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// Known reports whether s is one of the defined order statuses.
func (s OrderStatus) Known() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status machine allows moving from s
// to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is an immutable snapshot of a cart line: name and price are
// frozen at order creation so later catalog edits do not alter history.
type OrderItem struct {
	ID        int64
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
}

// Order records a completed purchase. Append-only except for Status and
// UpdatedAt.
type Order struct {
	ID          int64
	UserID      int64
	Items       []OrderItem
	TotalAmount float64
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderPage is one page of the unfiltered admin listing.
type OrderPage struct {
	Orders     []Order
	Page       int
	Limit      int
	TotalCount int
	TotalPages int
}
