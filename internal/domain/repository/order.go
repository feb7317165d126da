package repository

import (
	"context"

	"github.com/nross83/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. The mutating
// operations run inside a single transaction: stock adjustments, order rows
// and cart state change together or not at all.
type OrderRepository interface {
	// CreateFromCart converts the user's cart into a pending order,
	// validating and decrementing stock and emptying the cart.
	CreateFromCart(ctx context.Context, userID int64) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// ListAll returns one page of all orders, optionally filtered by status.
	ListAll(ctx context.Context, status model.OrderStatus, page, limit int) (*model.OrderPage, error)
	// Cancel moves the user's order to cancelled and restores stock.
	Cancel(ctx context.Context, userID, orderID int64) (*model.Order, error)
	// UpdateStatus applies a validated transition, restoring stock when the
	// order enters the cancelled state.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
}
