package test

import (
	"context"

	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	"github.com/nross83/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Name: name, Email: email, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns every stored user.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.User, 0, len(s.ByID))
	for _, u := range s.ByID {
		result = append(result, *u)
	}
	return result, nil
}

// UpdatePassword replaces the stored hash.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// CartRepositoryStub allows tests to customize cart behaviour.
type CartRepositoryStub struct {
	GetFn        func(context.Context, int64) (*model.Cart, error)
	AddItemFn    func(context.Context, int64, int64, int) (*model.Cart, error)
	UpdateItemFn func(context.Context, int64, int64, int) (*model.Cart, error)
	RemoveItemFn func(context.Context, int64, int64) (*model.Cart, error)
	ClearFn      func(context.Context, int64) error
}

func (s CartRepositoryStub) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
}

func (s CartRepositoryStub) AddItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, userID, productID, quantity)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{{ProductID: productID, Quantity: quantity}}}, nil
}

func (s CartRepositoryStub) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	if s.UpdateItemFn != nil {
		return s.UpdateItemFn(ctx, userID, itemID, quantity)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{{ID: itemID, Quantity: quantity}}}, nil
}

func (s CartRepositoryStub) RemoveItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(ctx, userID, itemID)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
}

func (s CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return nil
}

// OrderRepositoryStub allows tests to customize order behaviour.
type OrderRepositoryStub struct {
	CreateFromCartFn func(context.Context, int64) (*model.Order, error)
	GetByIDFn        func(context.Context, int64) (*model.Order, error)
	ListByUserFn     func(context.Context, int64) ([]model.Order, error)
	ListAllFn        func(context.Context, model.OrderStatus, int, int) (*model.OrderPage, error)
	CancelFn         func(context.Context, int64, int64) (*model.Order, error)
	UpdateStatusFn   func(context.Context, int64, model.OrderStatus) (*model.Order, error)
}

func (s OrderRepositoryStub) CreateFromCart(ctx context.Context, userID int64) (*model.Order, error) {
	if s.CreateFromCartFn != nil {
		return s.CreateFromCartFn(ctx, userID)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending}, nil
}

func (s OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

func (s OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s OrderRepositoryStub) ListAll(ctx context.Context, status model.OrderStatus, page, limit int) (*model.OrderPage, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx, status, page, limit)
	}
	return &model.OrderPage{Page: page, Limit: limit}, nil
}

func (s OrderRepositoryStub) Cancel(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusCancelled}, nil
}

func (s OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// CategoryRepositoryStub allows tests to customize category behaviour.
type CategoryRepositoryStub struct {
	CreateFn  func(context.Context, string, string) (*model.Category, error)
	GetByIDFn func(context.Context, int64) (*model.Category, error)
	ListFn    func(context.Context) ([]model.Category, error)
	UpdateFn  func(context.Context, int64, model.CategoryPatch) (*model.Category, error)
	DeleteFn  func(context.Context, int64) error
}

func (s CategoryRepositoryStub) Create(ctx context.Context, name, description string) (*model.Category, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, name, description)
	}
	return &model.Category{ID: 1, Name: name, Description: description}, nil
}

func (s CategoryRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return &model.Category{ID: id}, nil
}

func (s CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

func (s CategoryRepositoryStub) Update(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	return &model.Category{ID: id}, nil
}

func (s CategoryRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// ProductRepositoryStub allows tests to customize product behaviour.
type ProductRepositoryStub struct {
	CreateFn  func(context.Context, model.Product) (*model.Product, error)
	GetByIDFn func(context.Context, int64) (*model.Product, error)
	ListFn    func(context.Context) ([]model.Product, error)
	UpdateFn  func(context.Context, int64, model.ProductPatch) (*model.Product, error)
	DeleteFn  func(context.Context, int64) error
}

func (s ProductRepositoryStub) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, p)
	}
	p.ID = 1
	return &p, nil
}

func (s ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return &model.Product{ID: id}, nil
}

func (s ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

func (s ProductRepositoryStub) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	return &model.Product{ID: id}, nil
}

func (s ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}
