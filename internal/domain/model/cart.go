package model

import "time"

// CartItem is a single purchase intention. ProductName, Price and InStock
// reflect the current catalog state and are resolved on read.
type CartItem struct {
	ID          int64
	ProductID   int64
	ProductName string
	Price       float64
	InStock     bool
	Quantity    int
}

// Cart is the per-user mutable collection of pending purchase intentions.
// A user has at most one cart; a product appears at most once per cart.
type Cart struct {
	ID        int64
	UserID    int64
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}
