package handlers

import (
	"context"

	"github.com/nross83/storefront/internal/domain/model"
	pkgAuth "github.com/nross83/storefront/internal/pkg/auth"
)

// AuthFacade describes identity capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	Users(ctx context.Context) ([]model.User, error)
}

// CatalogFacade exposes category and product management.
type CatalogFacade interface {
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	Category(ctx context.Context, id int64) (*model.Category, error)
	Categories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CartFacade exposes cart operations for the authenticated caller.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (*model.Cart, error)
	AddCartItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error)
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error)
	RemoveCartItem(ctx context.Context, userID, itemID int64) (*model.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

// OrderFacade exposes order operations.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64) (*model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error)
	AllOrders(ctx context.Context, status string, page, limit int) (*model.OrderPage, error)
	SetOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	OrderFacade
}
