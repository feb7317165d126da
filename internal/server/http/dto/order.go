package dto

import (
	"time"

	"github.com/nross83/storefront/internal/domain/model"
)

// UpdateOrderStatusRequest carries the requested status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is a frozen order line.
type OrderItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"userId"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount float64             `json:"totalAmount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// OrderListResponse wraps a customer's order history.
type OrderListResponse struct {
	Count  int             `json:"count"`
	Orders []OrderResponse `json:"orders"`
}

// Pagination describes one page of the admin listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

// OrderPageResponse is the admin listing payload.
type OrderPageResponse struct {
	Pagination Pagination      `json:"pagination"`
	Orders     []OrderResponse `json:"orders"`
}

// ToOrderResponse converts the domain order.
func ToOrderResponse(order *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return OrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		Items:       items,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// ToOrderPageResponse converts one admin listing page.
func ToOrderPageResponse(page *model.OrderPage) OrderPageResponse {
	orders := make([]OrderResponse, 0, len(page.Orders))
	for i := range page.Orders {
		orders = append(orders, ToOrderResponse(&page.Orders[i]))
	}
	return OrderPageResponse{
		Pagination: Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
			TotalCount: page.TotalCount,
		},
		Orders: orders,
	}
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string `json:"message"`
}
