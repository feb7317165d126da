package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
)

var cartColumns = []string{"id", "user_id", "created_at", "updated_at"}

var cartItemColumns = []string{"id", "product_id", "name", "price", "in_stock", "quantity"}

func expectCartWithItems(mock pgxmockv3.PgxPoolIface, cartID, userID int64, items *pgxmockv3.Rows) {
	now := time.Now()
	mock.ExpectQuery("SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id=").
		WithArgs(userID).
		WillReturnRows(pgxmockv3.NewRows(cartColumns).AddRow(cartID, userID, now, now))
	mock.ExpectQuery("SELECT ci.id, ci.product_id, p.name, p.price, p.in_stock, ci.quantity").
		WithArgs(cartID).
		WillReturnRows(items)
}

func TestCartRepositoryGet(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}
	ctx := context.Background()

	t.Run("missing cart reads as empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id=").
			WithArgs(int64(5)).
			WillReturnError(pgx.ErrNoRows)
		cart, err := repo.Get(ctx, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cart.UserID != 5 || len(cart.Items) != 0 || cart.Items == nil {
			t.Fatalf("unexpected cart: %+v", cart)
		}
	})

	t.Run("cart with resolved items", func(t *testing.T) {
		items := pgxmockv3.NewRows(cartItemColumns).
			AddRow(int64(11), int64(3), "Widget", 9.5, true, 2).
			AddRow(int64(12), int64(4), "Gadget", 1.0, false, 1)
		expectCartWithItems(mock, 7, 5, items)

		cart, err := repo.Get(ctx, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart.Items) != 2 {
			t.Fatalf("unexpected items: %+v", cart.Items)
		}
		if cart.Items[0].ProductName != "Widget" || cart.Items[0].Quantity != 2 {
			t.Fatalf("unexpected first item: %+v", cart.Items[0])
		}
		if cart.Items[1].InStock {
			t.Fatalf("expected second item out of stock: %+v", cart.Items[1])
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCartRepositoryAddItem(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id=").
		WithArgs(int64(3)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery("INSERT INTO carts").
		WithArgs(int64(5)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("INSERT INTO cart_items").
		WithArgs(int64(7), int64(3), 2).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectCommit()

	items := pgxmockv3.NewRows(cartItemColumns).AddRow(int64(11), int64(3), "Widget", 9.5, true, 2)
	expectCartWithItems(mock, 7, 5, items)

	cart, err := repo.AddItem(ctx, 5, 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCartRepositoryAddItemUnknownProduct(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id=").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	if _, err := repo.AddItem(context.Background(), 5, 99, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCartRepositoryUpdateItem(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts WHERE user_id=").
		WithArgs(int64(5)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("UPDATE cart_items SET quantity=").
		WithArgs(4, int64(11), int64(7)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE carts SET updated_at=").
		WithArgs(int64(7)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	items := pgxmockv3.NewRows(cartItemColumns).AddRow(int64(11), int64(3), "Widget", 9.5, true, 4)
	expectCartWithItems(mock, 7, 5, items)

	cart, err := repo.UpdateItem(ctx, 5, 11, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Items[0].Quantity != 4 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCartRepositoryUpdateItemMissingLine(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts WHERE user_id=").
		WithArgs(int64(5)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("UPDATE cart_items SET quantity=").
		WithArgs(4, int64(99), int64(7)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	if _, err := repo.UpdateItem(context.Background(), 5, 99, 4); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCartRepositoryRemoveItem(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts WHERE user_id=").
		WithArgs(int64(5)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("DELETE FROM cart_items WHERE id=").
		WithArgs(int64(11), int64(7)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	mock.ExpectExec("UPDATE carts SET updated_at=").
		WithArgs(int64(7)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	items := pgxmockv3.NewRows(cartItemColumns)
	expectCartWithItems(mock, 7, 5, items)

	cart, err := repo.RemoveItem(ctx, 5, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCartRepositoryClear(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}
	ctx := context.Background()

	t.Run("clears existing cart", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM carts WHERE user_id=").
			WithArgs(int64(5)).
			WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectExec("DELETE FROM cart_items WHERE cart_id=").
			WithArgs(int64(7)).
			WillReturnResult(pgxmockv3.NewResult("DELETE", 2))
		mock.ExpectExec("UPDATE carts SET updated_at=").
			WithArgs(int64(7)).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		if err := repo.Clear(ctx, 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing cart is a no-op", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM carts WHERE user_id=").
			WithArgs(int64(6)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectCommit()

		if err := repo.Clear(ctx, 6); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
