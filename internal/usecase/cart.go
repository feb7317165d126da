package usecase

import (
	"context"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/domain/model"
	"github.com/nross83/storefront/internal/domain/repository"
)

// CartUseCase manages the per-user cart.
type CartUseCase struct {
	carts repository.CartRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository) *CartUseCase {
	return &CartUseCase{carts: carts}
}

// Get never fails on a missing cart; the caller sees an empty item list.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	return u.carts.Get(ctx, userID)
}

// AddItem puts quantity units of the product into the cart, accumulating
// with any existing line for the same product.
func (u *CartUseCase) AddItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	return u.carts.AddItem(ctx, userID, productID, quantity)
}

// UpdateItem sets the line item's quantity to an absolute value.
func (u *CartUseCase) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	return u.carts.UpdateItem(ctx, userID, itemID, quantity)
}

// RemoveItem deletes the line item. A missing item is an error, not a no-op.
func (u *CartUseCase) RemoveItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	return u.carts.RemoveItem(ctx, userID, itemID)
}

// Clear empties the cart's item collection.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	return u.carts.Clear(ctx, userID)
}
