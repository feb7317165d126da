package repository

import (
	"context"

	"github.com/nross83/storefront/internal/domain/model"
)

// CartRepository describes persistence operations for the per-user cart.
// Get returns a cart with an empty item list when none exists yet.
type CartRepository interface {
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	AddItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (*model.Cart, error)
	Clear(ctx context.Context, userID int64) error
}
