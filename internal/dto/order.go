package dto

import (
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/core/domain"
)

// CreateOrderItemRequest is one requested line. UnitPrice may arrive from the
// client but is never trusted: the pipeline overwrites it with the dish's
// authoritative price converted into the order currency.
type CreateOrderItemRequest struct {
	DishID    string           `json:"dish" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// CreateOrderRequest defines the checkout payload.
type CreateOrderRequest struct {
	Items    []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Currency string                   `json:"currency" binding:"required,len=3,uppercase"`
}

// OrderItemResponse is one snapshotted order line.
type OrderItemResponse struct {
	DishID    string          `json:"dish"`
	DishName  string          `json:"dishName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderResponse defines the structure for API responses containing an order.
type OrderResponse struct {
	OrderID    string              `json:"orderID"`
	UserID     string              `json:"user"`
	Items      []OrderItemResponse `json:"items"`
	Currency   string              `json:"currency"`
	TotalPrice decimal.Decimal     `json:"totalPrice"`
}

// OrderListResponse is a paged list of a user's orders.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	PageInfo
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			DishID:    item.DishID,
			DishName:  item.DishName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return OrderResponse{
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		Items:      items,
		Currency:   order.Currency,
		TotalPrice: order.TotalPrice,
	}
}
