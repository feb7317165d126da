package dto

import "github.com/nross83/storefront/internal/domain/model"

// AddCartItemRequest puts a product into the caller's cart.
type AddCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gte=1"`
}

// UpdateCartItemRequest sets a line item's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// CartItemResponse is one line of the cart with product details resolved.
type CartItemResponse struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	InStock     bool    `json:"inStock"`
	Quantity    int     `json:"quantity"`
}

// CartResponse is the caller's cart. Items is always present, possibly
// empty.
type CartResponse struct {
	ID    int64              `json:"id"`
	Items []CartItemResponse `json:"items"`
}

// ToCartResponse converts the domain cart.
func ToCartResponse(cart *model.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			InStock:     item.InStock,
			Quantity:    item.Quantity,
		})
	}
	return CartResponse{ID: cart.ID, Items: items}
}
