package repository

import (
	"context"

	"github.com/nross83/storefront/internal/domain/model"
)

// CategoryRepository describes persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, name, description string) (*model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository describes persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}
