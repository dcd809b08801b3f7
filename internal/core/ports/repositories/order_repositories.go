package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/feastly/feastly_backend/internal/core/domain"
	"github.com/feastly/feastly_backend/internal/dto"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves an order with its items; ErrNotFound when missing.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersByUser retrieves a user's orders, newest first, with the
	// matching count for pagination.
	ListOrdersByUser(ctx context.Context, userID string, pagination dto.Pagination) ([]domain.Order, int, error)
}

// OrderWriter defines write operations for order data. Orders are immutable
// once persisted: there is no update path.
type OrderWriter interface {
	// SaveOrder persists the order row and all item rows.
	SaveOrder(ctx context.Context, order domain.Order) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager

	// WithTx returns a facade bound to the given transaction session.
	WithTx(tx pgx.Tx) OrderRepositoryFacade
}
