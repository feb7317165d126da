package errors

import (
	"errors"
	"fmt"

	"github.com/nross83/storefront/internal/domain/model"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access denied")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrValidation         = errors.New("invalid request")
)

// InsufficientStockError reports which product blocked an order and how many
// units remain sellable.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %d units of %q available", e.Available, e.ProductName)
}

// InvalidTransitionError reports a status change outside the transition
// table. The order keeps its current status.
type InvalidTransitionError struct {
	From model.OrderStatus
	To   model.OrderStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %q to %q", e.From, e.To)
}
