package test

import (
	"context"

	"github.com/nross83/storefront/internal/domain/model"
	pkgAuth "github.com/nross83/storefront/internal/pkg/auth"
)

// AuthFacadeStub implements handlers.AuthFacade with overridable functions.
type AuthFacadeStub struct {
	RegisterFn       func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn   func(context.Context, string, string) (*model.User, string, error)
	ParseTokenFn     func(string) (pkgAuth.Claims, error)
	ProfileFn        func(context.Context, int64) (*model.User, error)
	ChangePasswordFn func(context.Context, int64, string, string) error
	UsersFn          func(context.Context) ([]model.User, error)
}

func (s *AuthFacadeStub) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password)
	}
	return &model.User{ID: 1, Name: name, Email: email, Role: model.RoleCustomer}, "token", nil
}

func (s *AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleCustomer}, "token", nil
}

func (s *AuthFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return pkgAuth.Claims{UserID: 1, Role: model.RoleCustomer}, nil
}

func (s *AuthFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Role: model.RoleCustomer}, nil
}

func (s *AuthFacadeStub) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, userID, oldPassword, newPassword)
	}
	return nil
}

func (s *AuthFacadeStub) Users(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return nil, nil
}

// CatalogFacadeStub implements handlers.CatalogFacade with overridable functions.
type CatalogFacadeStub struct {
	CreateCategoryFn func(context.Context, string, string) (*model.Category, error)
	CategoryFn       func(context.Context, int64) (*model.Category, error)
	CategoriesFn     func(context.Context) ([]model.Category, error)
	UpdateCategoryFn func(context.Context, int64, model.CategoryPatch) (*model.Category, error)
	DeleteCategoryFn func(context.Context, int64) error
	CreateProductFn  func(context.Context, model.Product) (*model.Product, error)
	ProductFn        func(context.Context, int64) (*model.Product, error)
	ProductsFn       func(context.Context) ([]model.Product, error)
	UpdateProductFn  func(context.Context, int64, model.ProductPatch) (*model.Product, error)
	DeleteProductFn  func(context.Context, int64) error
}

func (s *CatalogFacadeStub) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, name, description)
	}
	return &model.Category{ID: 1, Name: name, Description: description}, nil
}

func (s *CatalogFacadeStub) Category(ctx context.Context, id int64) (*model.Category, error) {
	if s.CategoryFn != nil {
		return s.CategoryFn(ctx, id)
	}
	return &model.Category{ID: id}, nil
}

func (s *CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return nil, nil
}

func (s *CatalogFacadeStub) UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error) {
	if s.UpdateCategoryFn != nil {
		return s.UpdateCategoryFn(ctx, id, patch)
	}
	return &model.Category{ID: id}, nil
}

func (s *CatalogFacadeStub) DeleteCategory(ctx context.Context, id int64) error {
	if s.DeleteCategoryFn != nil {
		return s.DeleteCategoryFn(ctx, id)
	}
	return nil
}

func (s *CatalogFacadeStub) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, p)
	}
	p.ID = 1
	return &p, nil
}

func (s *CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id}, nil
}

func (s *CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return nil, nil
}

func (s *CatalogFacadeStub) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, id, patch)
	}
	return &model.Product{ID: id}, nil
}

func (s *CatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

// CartFacadeStub implements handlers.CartFacade with overridable functions.
type CartFacadeStub struct {
	CartFn           func(context.Context, int64) (*model.Cart, error)
	AddCartItemFn    func(context.Context, int64, int64, int) (*model.Cart, error)
	UpdateCartItemFn func(context.Context, int64, int64, int) (*model.Cart, error)
	RemoveCartItemFn func(context.Context, int64, int64) (*model.Cart, error)
	ClearCartFn      func(context.Context, int64) error
}

func (s *CartFacadeStub) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
}

func (s *CartFacadeStub) AddCartItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	if s.AddCartItemFn != nil {
		return s.AddCartItemFn(ctx, userID, productID, quantity)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{{ProductID: productID, Quantity: quantity}}}, nil
}

func (s *CartFacadeStub) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	if s.UpdateCartItemFn != nil {
		return s.UpdateCartItemFn(ctx, userID, itemID, quantity)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{{ID: itemID, Quantity: quantity}}}, nil
}

func (s *CartFacadeStub) RemoveCartItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	if s.RemoveCartItemFn != nil {
		return s.RemoveCartItemFn(ctx, userID, itemID)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
}

func (s *CartFacadeStub) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearCartFn != nil {
		return s.ClearCartFn(ctx, userID)
	}
	return nil
}

// OrderFacadeStub implements handlers.OrderFacade with overridable functions.
type OrderFacadeStub struct {
	PlaceOrderFn     func(context.Context, int64) (*model.Order, error)
	OrderFn          func(context.Context, int64, int64) (*model.Order, error)
	OrdersFn         func(context.Context, int64) ([]model.Order, error)
	CancelOrderFn    func(context.Context, int64, int64) (*model.Order, error)
	AllOrdersFn      func(context.Context, string, int, int) (*model.OrderPage, error)
	SetOrderStatusFn func(context.Context, int64, string) (*model.Order, error)
}

func (s *OrderFacadeStub) PlaceOrder(ctx context.Context, userID int64) (*model.Order, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, userID)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending}, nil
}

func (s *OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

func (s *OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

func (s *OrderFacadeStub) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusCancelled}, nil
}

func (s *OrderFacadeStub) AllOrders(ctx context.Context, status string, page, limit int) (*model.OrderPage, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, status, page, limit)
	}
	return &model.OrderPage{Page: page, Limit: limit}, nil
}

func (s *OrderFacadeStub) SetOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	if s.SetOrderStatusFn != nil {
		return s.SetOrderStatusFn(ctx, orderID, status)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatus(status)}, nil
}

// StoreFacadeStub bundles the facade stubs into one handlers.StoreFacade.
type StoreFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	OrderFacadeStub
}
