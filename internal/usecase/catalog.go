package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/domain/model"
	"github.com/nross83/storefront/internal/domain/repository"
)

// CatalogUseCase manages categories and products.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(categories repository.CategoryRepository, products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, products: products}
}

func (u *CatalogUseCase) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrValidation
	}
	return u.categories.Create(ctx, name, description)
}

func (u *CatalogUseCase) Category(ctx context.Context, id int64) (*model.Category, error) {
	return u.categories.GetByID(ctx, id)
}

func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

func (u *CatalogUseCase) UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domainErrors.ErrValidation
	}
	return u.categories.Update(ctx, id, patch)
}

func (u *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return u.categories.Delete(ctx, id)
}

// CreateProduct validates the product and its category reference.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || p.Price < 0 || p.Quantity < 0 {
		return nil, domainErrors.ErrValidation
	}
	if _, err := u.categories.GetByID(ctx, p.CategoryID); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, p)
}

func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

func (u *CatalogUseCase) Products(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// UpdateProduct applies a partial update; only non-nil patch fields change.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domainErrors.ErrValidation
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, domainErrors.ErrValidation
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return nil, domainErrors.ErrValidation
	}
	if patch.CategoryID != nil {
		if _, err := u.categories.GetByID(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}
	return u.products.Update(ctx, id, patch)
}

func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}
