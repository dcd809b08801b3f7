package services

import (
	"context"

	"github.com/feastly/feastly_backend/internal/core/domain"
	"github.com/feastly/feastly_backend/internal/dto"
)

// OrderSvcFacade defines the order operations. Orders are created exactly
// once per checkout attempt and are immutable afterwards.
type OrderSvcFacade interface {
	// CreateOrder validates, prices and persists an order atomically: every
	// line is re-priced from the authoritative catalog price in the order's
	// currency, stock is checked and decremented, and the whole attempt
	// either fully succeeds or leaves nothing behind.
	CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*domain.Order, error)

	// ListUserOrders retrieves the user's orders, newest first.
	ListUserOrders(ctx context.Context, userID string, pagination dto.Pagination) (*dto.OrderListResponse, error)
}
