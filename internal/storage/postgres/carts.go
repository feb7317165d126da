package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/domain/model"
)

type cartRepository struct {
	storage *Storage
}

const selectCartQuery = `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id=$1`

const selectCartItemsQuery = `SELECT ci.id, ci.product_id, p.name, p.price, p.in_stock, ci.quantity
                              FROM cart_items ci
                              JOIN products p ON p.id = ci.product_id
                              WHERE ci.cart_id=$1
                              ORDER BY ci.id`

// Get returns the user's cart with product details resolved. A missing cart
// is reported as a cart with no items, not as an error.
func (r *cartRepository) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	var cart model.Cart
	err := r.storage.pool.QueryRow(ctx, selectCartQuery, userID).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
		}
		return nil, err
	}

	rows, err := r.storage.pool.Query(ctx, selectCartItemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart.Items = []model.CartItem{}
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Price, &item.InStock, &item.Quantity); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const productExists = `SELECT id FROM products WHERE id=$1`
		var id int64
		if err := tx.QueryRow(ctx, productExists, productID).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		// The cart is created lazily on first add.
		const upsertCart = `INSERT INTO carts (user_id) VALUES ($1)
                            ON CONFLICT (user_id) DO UPDATE SET updated_at=NOW()
                            RETURNING id`
		var cartID int64
		if err := tx.QueryRow(ctx, upsertCart, userID).Scan(&cartID); err != nil {
			return err
		}

		// Re-adding a product accumulates quantity instead of replacing it.
		const upsertItem = `INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)
                            ON CONFLICT (cart_id, product_id)
                            DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`
		if _, err := tx.Exec(ctx, upsertItem, cartID, productID, quantity); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID)
}

func (r *cartRepository) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := cartIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		const updateItem = `UPDATE cart_items SET quantity=$1 WHERE id=$2 AND cart_id=$3`
		tag, err := tx.Exec(ctx, updateItem, quantity, itemID, cartID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return touchCart(ctx, tx, cartID)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID)
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := cartIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		const deleteItem = `DELETE FROM cart_items WHERE id=$1 AND cart_id=$2`
		tag, err := tx.Exec(ctx, deleteItem, itemID, cartID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return touchCart(ctx, tx, cartID)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID)
}

// Clear empties the item collection; the cart row itself persists. Clearing
// a user without a cart is a no-op, matching the empty-cart reading of Get.
func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := cartIDForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
			return err
		}
		return touchCart(ctx, tx, cartID)
	})
}

func cartIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	const query = `SELECT id FROM carts WHERE user_id=$1 FOR UPDATE`
	var cartID int64
	if err := tx.QueryRow(ctx, query, userID).Scan(&cartID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return cartID, nil
}

func touchCart(ctx context.Context, tx pgx.Tx, cartID int64) error {
	_, err := tx.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE id=$1`, cartID)
	return err
}
