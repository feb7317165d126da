package usecase

import (
	"context"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/domain/model"
	"github.com/nross83/storefront/internal/domain/repository"
)

// OrderUseCase encapsulates the order lifecycle.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Create converts the user's cart into a pending order.
func (u *OrderUseCase) Create(ctx context.Context, userID int64) (*model.Order, error) {
	return u.orders.CreateFromCart(ctx, userID)
}

// GetForUser returns the order only when it belongs to the requesting user.
func (u *OrderUseCase) GetForUser(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns one page of all orders, optionally filtered by status.
func (u *OrderUseCase) ListAll(ctx context.Context, status string, page, limit int) (*model.OrderPage, error) {
	filter := model.OrderStatus(status)
	if status != "" && !filter.Known() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.orders.ListAll(ctx, filter, page, limit)
}

// Cancel cancels the user's own order and restores stock.
func (u *OrderUseCase) Cancel(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return u.orders.Cancel(ctx, userID, orderID)
}

// UpdateStatus applies a privileged status change.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	next := model.OrderStatus(status)
	if !next.Known() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.orders.UpdateStatus(ctx, orderID, next)
}
