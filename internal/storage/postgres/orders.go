package postgres

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

// CreateFromCart converts the user's cart into a pending order. Stock
// validation, stock decrement, order insertion and cart clearing share one
// transaction; product rows are locked so concurrent orders against the same
// product serialize on the check-and-decrement and cannot oversell.
func (r *orderRepository) CreateFromCart(ctx context.Context, userID int64) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := cartIDForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrEmptyCart
			}
			return err
		}

		// Rows come back ordered by product id so two concurrent orders
		// always take product locks in the same sequence.
		const lockLines = `SELECT ci.product_id, ci.quantity, p.name, p.price, p.quantity
                           FROM cart_items ci
                           JOIN products p ON p.id = ci.product_id
                           WHERE ci.cart_id=$1
                           ORDER BY p.id
                           FOR UPDATE OF p`
		rows, err := tx.Query(ctx, lockLines, cartID)
		if err != nil {
			return err
		}

		type line struct {
			productID int64
			requested int
			name      string
			price     float64
			stock     int
		}
		var lines []line
		for rows.Next() {
			var l line
			if err := rows.Scan(&l.productID, &l.requested, &l.name, &l.price, &l.stock); err != nil {
				rows.Close()
				return err
			}
			lines = append(lines, l)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(lines) == 0 {
			return domainErrors.ErrEmptyCart
		}

		order = model.Order{UserID: userID, Status: model.OrderStatusPending}
		for _, l := range lines {
			if l.stock < l.requested {
				return domainErrors.InsufficientStockError{
					ProductID:   l.productID,
					ProductName: l.name,
					Available:   l.stock,
				}
			}
			// Name and price are frozen here and never re-read.
			order.Items = append(order.Items, model.OrderItem{
				ProductID: l.productID,
				Name:      l.name,
				Price:     l.price,
				Quantity:  l.requested,
			})
			order.TotalAmount += l.price * float64(l.requested)
		}

		const insertOrder = `INSERT INTO orders (user_id, status, total_amount) VALUES ($1, $2, $3)
                             RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder, userID, order.Status, order.TotalAmount).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, name, price, quantity)
                            VALUES ($1, $2, $3, $4, $5) RETURNING id`
		for i := range order.Items {
			item := &order.Items[i]
			if err := tx.QueryRow(ctx, insertItem, order.ID, item.ProductID, item.Name, item.Price, item.Quantity).
				Scan(&item.ID); err != nil {
				return err
			}
		}

		const decrementStock = `UPDATE products
                                SET quantity = quantity - $1,
                                    in_stock = quantity - $1 > 0,
                                    updated_at = NOW()
                                WHERE id=$2`
		for _, l := range lines {
			if _, err := tx.Exec(ctx, decrementStock, l.requested, l.productID); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
			return err
		}
		return touchCart(ctx, tx, cartID)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

const selectOrderQuery = `SELECT id, user_id, status, total_amount, created_at, updated_at FROM orders WHERE id=$1`

const selectOrderItemsQuery = `SELECT id, order_id, product_id, name, price, quantity
                               FROM order_items WHERE order_id = ANY($1) ORDER BY id`

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, selectOrderQuery, id).
		Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	orders := []model.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, status, total_amount, created_at, updated_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll returns one page of orders across all users. The page rows and the
// total count are fetched concurrently.
func (r *orderRepository) ListAll(ctx context.Context, status model.OrderStatus, page, limit int) (*model.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var (
		orders []model.Order
		total  int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var (
			rows pgx.Rows
			err  error
		)
		if status != "" {
			const query = `SELECT id, user_id, status, total_amount, created_at, updated_at
                           FROM orders WHERE status=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
			rows, err = r.storage.pool.Query(gctx, query, status, limit, offset)
		} else {
			const query = `SELECT id, user_id, status, total_amount, created_at, updated_at
                           FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
			rows, err = r.storage.pool.Query(gctx, query, limit, offset)
		}
		if err != nil {
			return err
		}
		orders, err = scanOrders(rows)
		return err
	})
	g.Go(func() error {
		if status != "" {
			return r.storage.pool.QueryRow(gctx, `SELECT COUNT(*) FROM orders WHERE status=$1`, status).Scan(&total)
		}
		return r.storage.pool.QueryRow(gctx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &model.OrderPage{
		Orders:     orders,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Cancel transitions the user's order to cancelled and returns every line
// item's quantity to product stock. Restore and status change commit
// together.
func (r *orderRepository) Cancel(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		o, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return domainErrors.ErrForbidden
		}
		if !o.Status.CanTransitionTo(model.OrderStatusCancelled) {
			return domainErrors.InvalidTransitionError{From: o.Status, To: model.OrderStatusCancelled}
		}
		if err := restoreStock(ctx, tx, orderID); err != nil {
			return err
		}
		if err := setOrderStatus(ctx, tx, o, model.OrderStatusCancelled); err != nil {
			return err
		}
		order = *o
		return nil
	})
	if err != nil {
		return nil, err
	}

	orders := []model.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// UpdateStatus applies an admin status change after validating it against
// the transition table. Entering cancelled restores stock; the table has no
// cancelled->cancelled edge, so restoration can run at most once per order.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		o, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(status) {
			return domainErrors.InvalidTransitionError{From: o.Status, To: status}
		}
		if status == model.OrderStatusCancelled {
			if err := restoreStock(ctx, tx, orderID); err != nil {
				return err
			}
		}
		if err := setOrderStatus(ctx, tx, o, status); err != nil {
			return err
		}
		order = *o
		return nil
	})
	if err != nil {
		return nil, err
	}

	orders := []model.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func lockOrder(ctx context.Context, tx pgx.Tx, orderID int64) (*model.Order, error) {
	const query = `SELECT id, user_id, status, total_amount, created_at, updated_at
                   FROM orders WHERE id=$1 FOR UPDATE`
	var o model.Order
	err := tx.QueryRow(ctx, query, orderID).
		Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func setOrderStatus(ctx context.Context, tx pgx.Tx, o *model.Order, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`
	if err := tx.QueryRow(ctx, query, status, o.ID).Scan(&o.UpdatedAt); err != nil {
		return err
	}
	o.Status = status
	return nil
}

func restoreStock(ctx context.Context, tx pgx.Tx, orderID int64) error {
	const query = `UPDATE products p
                   SET quantity = p.quantity + oi.quantity,
                       in_stock = TRUE,
                       updated_at = NOW()
                   FROM order_items oi
                   WHERE oi.order_id=$1 AND oi.product_id = p.id`
	_, err := tx.Exec(ctx, query, orderID)
	return err
}

func scanOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()
	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[int64]*model.Order, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = &orders[i]
		orders[i].Items = []model.OrderItem{}
	}

	rows, err := r.storage.pool.Query(ctx, selectOrderItemsQuery, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			item    model.OrderItem
		)
		if err := rows.Scan(&item.ID, &orderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return err
		}
		if o, ok := index[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}
