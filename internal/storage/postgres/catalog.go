package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/domain/model"
)

type categoryRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

// --- CategoryRepository implementation ---

func (r *categoryRepository) Create(ctx context.Context, name, description string) (*model.Category, error) {
	const query = `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, created_at`
	c := model.Category{Name: name, Description: description}
	if err := r.storage.pool.QueryRow(ctx, query, name, description).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	const query = `SELECT id, name, description, created_at FROM categories WHERE id=$1`
	var c model.Category
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, description, created_at FROM categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *categoryRepository) Update(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error) {
	const query = `UPDATE categories
                   SET name=COALESCE($1, name), description=COALESCE($2, description)
                   WHERE id=$3
                   RETURNING id, name, description, created_at`
	var c model.Category
	err := r.storage.pool.QueryRow(ctx, query, patch.Name, patch.Description, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM categories WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, description, price, quantity, in_stock, category_id)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	p.InStock = p.Quantity > 0
	err := r.storage.pool.QueryRow(ctx, query, p.Name, p.Description, p.Price, p.Quantity, p.InStock, p.CategoryID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, name, description, price, quantity, in_stock, category_id, created_at, updated_at
                   FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.InStock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, name, description, price, quantity, in_stock, category_id, created_at, updated_at
                   FROM products ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.InStock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	// in_stock is recomputed from the effective quantity in the same
	// statement so the two can never drift apart.
	const query = `UPDATE products
                   SET name=COALESCE($1, name),
                       description=COALESCE($2, description),
                       price=COALESCE($3, price),
                       category_id=COALESCE($4, category_id),
                       quantity=COALESCE($5, quantity),
                       in_stock=COALESCE($5, quantity) > 0,
                       updated_at=NOW()
                   WHERE id=$6
                   RETURNING id, name, description, price, quantity, in_stock, category_id, created_at, updated_at`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, patch.Name, patch.Description, patch.Price, patch.CategoryID, patch.Quantity, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.InStock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
