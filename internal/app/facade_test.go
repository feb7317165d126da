package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nross83/storefront/internal/adapter/mailer"
	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/domain/model"
	pkgAuth "github.com/nross83/storefront/internal/pkg/auth"
	testhelpers "github.com/nross83/storefront/internal/test"
	"github.com/nross83/storefront/internal/usecase"
)

type notifierStub struct {
	Messages []mailer.Message
}

func (n *notifierStub) Enqueue(msg mailer.Message) {
	n.Messages = append(n.Messages, msg)
}

type facadeFixture struct {
	facade   *StoreFacade
	users    *testhelpers.UserRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	notifier *notifierStub
}

func newFacade() *facadeFixture {
	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (pkgAuth.Claims, error) {
		return pkgAuth.Claims{UserID: 99, Role: model.RoleAdmin}, nil
	}}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy)

	catalogUC := usecase.NewCatalogUseCase(testhelpers.CategoryRepositoryStub{}, testhelpers.ProductRepositoryStub{})
	cartUC := usecase.NewCartUseCase(testhelpers.CartRepositoryStub{})

	orders := &testhelpers.OrderRepositoryStub{}
	orderUC := usecase.NewOrderUseCase(orders)

	notifier := &notifierStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &facadeFixture{
		facade:   NewStoreFacade(authUC, catalogUC, cartUC, orderUC, notifier, logger),
		users:    users,
		orders:   orders,
		notifier: notifier,
	}
}

func TestStoreFacadeAuth(t *testing.T) {
	fx := newFacade()
	usr, token, err := fx.facade.Register(context.Background(), "Alice", "alice@example.com", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" || usr.Email != "alice@example.com" {
		t.Fatalf("unexpected register result: %+v token=%q", usr, token)
	}

	if len(fx.notifier.Messages) != 1 {
		t.Fatalf("expected welcome mail, got %d messages", len(fx.notifier.Messages))
	}
	welcome := fx.notifier.Messages[0]
	if welcome.To != "alice@example.com" || welcome.Subject != "Welcome to our store" {
		t.Fatalf("unexpected welcome message: %+v", welcome)
	}

	if _, err := fx.users.GetByEmail(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("user not stored: %v", err)
	}

	if _, _, err := fx.facade.Authenticate(context.Background(), "alice@example.com", "pass"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	claims, err := fx.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if claims.UserID != 99 || claims.Role != model.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	profile, err := fx.facade.Profile(context.Background(), usr.ID)
	if err != nil || profile.Name != "Alice" {
		t.Fatalf("unexpected profile: %+v err=%v", profile, err)
	}

	if err := fx.facade.ChangePassword(context.Background(), usr.ID, "pass", "next"); err != nil {
		t.Fatalf("change password returned error: %v", err)
	}

	all, err := fx.facade.Users(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("unexpected users result: %v err=%v", all, err)
	}
}

func TestStoreFacadeRegisterFailureSendsNothing(t *testing.T) {
	fx := newFacade()
	if _, _, err := fx.facade.Register(context.Background(), "", "", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if len(fx.notifier.Messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(fx.notifier.Messages))
	}
}

func TestStoreFacadeEnsureAdmin(t *testing.T) {
	fx := newFacade()
	if err := fx.facade.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "secret"); err != nil {
		t.Fatalf("ensure admin returned error: %v", err)
	}
	stored, err := fx.users.GetByEmail(context.Background(), "admin@example.com")
	if err != nil || stored.Role != model.RoleAdmin {
		t.Fatalf("unexpected admin: %+v err=%v", stored, err)
	}
	if len(fx.notifier.Messages) != 0 {
		t.Fatalf("bootstrap must not send mail, got %d messages", len(fx.notifier.Messages))
	}
}

func TestStoreFacadeCatalog(t *testing.T) {
	fx := newFacade()
	cat, err := fx.facade.CreateCategory(context.Background(), "Books", "printed matter")
	if err != nil || cat == nil {
		t.Fatalf("unexpected create result: %v err=%v", cat, err)
	}
	if _, err := fx.facade.Categories(context.Background()); err != nil {
		t.Fatalf("categories returned error: %v", err)
	}
	price, quantity := 9.5, 3
	prod, err := fx.facade.CreateProduct(context.Background(), model.Product{Name: "Widget", Price: price, Quantity: quantity, CategoryID: 1})
	if err != nil || prod == nil {
		t.Fatalf("unexpected product result: %v err=%v", prod, err)
	}
	if err := fx.facade.DeleteProduct(context.Background(), 1); err != nil {
		t.Fatalf("delete product returned error: %v", err)
	}
}

func TestStoreFacadeCart(t *testing.T) {
	fx := newFacade()
	cart, err := fx.facade.Cart(context.Background(), 5)
	if err != nil || cart.UserID != 5 {
		t.Fatalf("unexpected cart: %+v err=%v", cart, err)
	}
	if _, err := fx.facade.AddCartItem(context.Background(), 5, 3, 2); err != nil {
		t.Fatalf("add item returned error: %v", err)
	}
	if _, err := fx.facade.AddCartItem(context.Background(), 5, 3, 0); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if err := fx.facade.ClearCart(context.Background(), 5); err != nil {
		t.Fatalf("clear returned error: %v", err)
	}
}

func TestStoreFacadePlaceOrderNotifiesOwner(t *testing.T) {
	fx := newFacade()
	usr, _, err := fx.facade.Register(context.Background(), "Alice", "alice@example.com", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	fx.notifier.Messages = nil

	fx.orders.CreateFromCartFn = func(ctx context.Context, userID int64) (*model.Order, error) {
		return &model.Order{ID: 20, UserID: userID, Status: model.OrderStatusPending, TotalAmount: 20}, nil
	}
	order, err := fx.facade.PlaceOrder(context.Background(), usr.ID)
	if err != nil || order.ID != 20 {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	if len(fx.notifier.Messages) != 1 {
		t.Fatalf("expected confirmation mail, got %d messages", len(fx.notifier.Messages))
	}
	msg := fx.notifier.Messages[0]
	if msg.To != "alice@example.com" || msg.Subject != "Order confirmation - #20" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestStoreFacadePlaceOrderUnknownOwner(t *testing.T) {
	fx := newFacade()
	fx.orders.CreateFromCartFn = func(ctx context.Context, userID int64) (*model.Order, error) {
		return &model.Order{ID: 20, UserID: 77, Status: model.OrderStatusPending}, nil
	}

	// Owner lookup fails, but the committed order is still returned.
	order, err := fx.facade.PlaceOrder(context.Background(), 77)
	if err != nil || order == nil {
		t.Fatalf("unexpected result: %+v err=%v", order, err)
	}
	if len(fx.notifier.Messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(fx.notifier.Messages))
	}
}

func TestStoreFacadePlaceOrderFailureSendsNothing(t *testing.T) {
	fx := newFacade()
	fx.orders.CreateFromCartFn = func(context.Context, int64) (*model.Order, error) {
		return nil, domainErrors.ErrEmptyCart
	}
	if _, err := fx.facade.PlaceOrder(context.Background(), 1); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
	if len(fx.notifier.Messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(fx.notifier.Messages))
	}
}

func TestStoreFacadeCancelOrderNotifiesOwner(t *testing.T) {
	fx := newFacade()
	usr, _, err := fx.facade.Register(context.Background(), "Alice", "alice@example.com", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	fx.notifier.Messages = nil

	order, err := fx.facade.CancelOrder(context.Background(), usr.ID, 20)
	if err != nil || order.Status != model.OrderStatusCancelled {
		t.Fatalf("unexpected cancel result: %+v err=%v", order, err)
	}
	if len(fx.notifier.Messages) != 1 {
		t.Fatalf("expected status mail, got %d messages", len(fx.notifier.Messages))
	}
	if fx.notifier.Messages[0].Subject != "Order update: CANCELLED - #20" {
		t.Fatalf("unexpected subject: %q", fx.notifier.Messages[0].Subject)
	}
}

func TestStoreFacadeSetOrderStatus(t *testing.T) {
	fx := newFacade()
	usr, _, err := fx.facade.Register(context.Background(), "Alice", "alice@example.com", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	fx.notifier.Messages = nil

	fx.orders.UpdateStatusFn = func(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
		return &model.Order{ID: orderID, UserID: usr.ID, Status: status}, nil
	}
	order, err := fx.facade.SetOrderStatus(context.Background(), 20, "shipped")
	if err != nil || order.Status != model.OrderStatusShipped {
		t.Fatalf("unexpected result: %+v err=%v", order, err)
	}
	if len(fx.notifier.Messages) != 1 {
		t.Fatalf("expected status mail, got %d messages", len(fx.notifier.Messages))
	}

	fx.notifier.Messages = nil
	if _, err := fx.facade.SetOrderStatus(context.Background(), 20, "bogus"); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
	if len(fx.notifier.Messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(fx.notifier.Messages))
	}
}

func TestStoreFacadeOrderQueries(t *testing.T) {
	fx := newFacade()
	fx.orders.ListByUserFn = func(context.Context, int64) ([]model.Order, error) {
		return []model.Order{{ID: 20, UserID: 5}, {ID: 21, UserID: 5}}, nil
	}
	orders, err := fx.facade.Orders(context.Background(), 5)
	if err != nil || len(orders) != 2 {
		t.Fatalf("unexpected orders: %v err=%v", orders, err)
	}

	fx.orders.GetByIDFn = func(ctx context.Context, id int64) (*model.Order, error) {
		return &model.Order{ID: id, UserID: 5}, nil
	}
	if _, err := fx.facade.Order(context.Background(), 9, 20); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign order, got %v", err)
	}

	page, err := fx.facade.AllOrders(context.Background(), "shipped", 2, 10)
	if err != nil || page.Page != 2 || page.Limit != 10 {
		t.Fatalf("unexpected page: %+v err=%v", page, err)
	}
}
