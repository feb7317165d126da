package app

import (
	"context"
	"log/slog"

	"github.com/nross83/storefront/internal/adapter/mailer"
	"github.com/nross83/storefront/internal/domain/model"
	pkgAuth "github.com/nross83/storefront/internal/pkg/auth"
	"github.com/nross83/storefront/internal/usecase"
)

// Notifier queues a notification for background delivery.
type Notifier interface {
	Enqueue(msg mailer.Message)
}

// StoreFacade aggregates the application's use cases behind one surface and
// attaches best-effort notifications to the operations that need them.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	cart     *usecase.CartUseCase
	orders   *usecase.OrderUseCase
	notifier Notifier
	logger   *slog.Logger
}

func NewStoreFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	orders *usecase.OrderUseCase,
	notifier Notifier,
	logger *slog.Logger,
) *StoreFacade {
	return &StoreFacade{
		auth:     auth,
		catalog:  catalog,
		cart:     cart,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// --- identity ---

func (f *StoreFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	usr, token, err := f.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, "", err
	}
	f.notifier.Enqueue(mailer.Welcome(usr.Email, usr.Name))
	return usr, token, nil
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StoreFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StoreFacade) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	return f.auth.ChangePassword(ctx, userID, oldPassword, newPassword)
}

func (f *StoreFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.auth.ListUsers(ctx)
}

func (f *StoreFacade) EnsureAdmin(ctx context.Context, name, email, password string) error {
	return f.auth.EnsureAdmin(ctx, name, email, password)
}

// --- catalog ---

func (f *StoreFacade) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, name, description)
}

func (f *StoreFacade) Category(ctx context.Context, id int64) (*model.Category, error) {
	return f.catalog.Category(ctx, id)
}

func (f *StoreFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *StoreFacade) UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error) {
	return f.catalog.UpdateCategory(ctx, id, patch)
}

func (f *StoreFacade) DeleteCategory(ctx context.Context, id int64) error {
	return f.catalog.DeleteCategory(ctx, id)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, p)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *StoreFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.Products(ctx)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	return f.catalog.UpdateProduct(ctx, id, patch)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.DeleteProduct(ctx, id)
}

// --- cart ---

func (f *StoreFacade) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.cart.Get(ctx, userID)
}

func (f *StoreFacade) AddCartItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	return f.cart.AddItem(ctx, userID, productID, quantity)
}

func (f *StoreFacade) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	return f.cart.UpdateItem(ctx, userID, itemID, quantity)
}

func (f *StoreFacade) RemoveCartItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	return f.cart.RemoveItem(ctx, userID, itemID)
}

func (f *StoreFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.cart.Clear(ctx, userID)
}

// --- orders ---

// PlaceOrder converts the caller's cart into an order. The confirmation
// mail is queued after the order is committed; its fate never changes the
// response.
func (f *StoreFacade) PlaceOrder(ctx context.Context, userID int64) (*model.Order, error) {
	order, err := f.orders.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	f.notifyOwner(ctx, order, mailer.OrderConfirmation)
	return order, nil
}

func (f *StoreFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.GetForUser(ctx, userID, orderID)
}

func (f *StoreFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := f.orders.Cancel(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	f.notifyOwner(ctx, order, mailer.OrderStatusUpdate)
	return order, nil
}

func (f *StoreFacade) AllOrders(ctx context.Context, status string, page, limit int) (*model.OrderPage, error) {
	return f.orders.ListAll(ctx, status, page, limit)
}

func (f *StoreFacade) SetOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	order, err := f.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	f.notifyOwner(ctx, order, mailer.OrderStatusUpdate)
	return order, nil
}

func (f *StoreFacade) notifyOwner(ctx context.Context, order *model.Order, build func(to, name string, order *model.Order) mailer.Message) {
	usr, err := f.auth.GetByID(ctx, order.UserID)
	if err != nil {
		f.logger.Error("resolve order owner for notification failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	f.notifier.Enqueue(build(usr.Email, usr.Name, order))
}
