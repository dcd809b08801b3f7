package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/core/domain"
	"github.com/feastly/feastly_backend/internal/dto"
)

// DishReader defines read operations for catalog data
type DishReader interface {
	// FindDishByID retrieves a dish by its ID; ErrNotFound when missing.
	FindDishByID(ctx context.Context, dishID string) (*domain.Dish, error)

	// FindDishCurrency retrieves only a dish's authoritative currency code.
	FindDishCurrency(ctx context.Context, dishID string) (string, error)

	// ListDishes retrieves every dish; used by the canonical-price rebuild.
	ListDishes(ctx context.Context) ([]domain.Dish, error)

	// AggregateDishes computes the three facets of one catalog listing in a
	// single store pass: the projected page, the matching count and the total
	// count. Filters must already be on the canonical main-currency axis.
	AggregateDishes(ctx context.Context, filters dto.DishFilters, fields map[string]int, pagination dto.Pagination) ([]domain.DishView, int, int, error)

	// AggregateFilterValues computes deduplicated values for list fields and
	// min/max for numeric fields, all in one scan.
	AggregateFilterValues(ctx context.Context, listFields, minMaxFields []string) (*dto.FilterValues, error)
}

// DishWriter defines write operations for catalog data
type DishWriter interface {
	// SaveDish persists a new dish.
	SaveDish(ctx context.Context, dish domain.Dish) error

	// UpdateDish overwrites a dish row; ErrNotFound when missing.
	UpdateDish(ctx context.Context, dish domain.Dish) error

	// UpdateMainUnitPrice rewrites only the canonical price axis of a dish.
	UpdateMainUnitPrice(ctx context.Context, dishID string, mainUnitPrice decimal.Decimal) error

	// DeleteDish removes a dish; ErrNotFound when missing.
	DeleteDish(ctx context.Context, dishID string) error

	// DecrementStock atomically subtracts quantity when stock suffices and
	// reports whether a row was updated.
	DecrementStock(ctx context.Context, dishID string, quantity int) (bool, error)
}

// DishRepositoryFacade combines all catalog-related repository interfaces
type DishRepositoryFacade interface {
	DishReader
	DishWriter
}

// DishRepositoryWithTx extends DishRepositoryFacade with transaction capabilities
type DishRepositoryWithTx interface {
	DishRepositoryFacade
	TransactionManager

	// WithTx returns a facade bound to the given transaction session.
	WithTx(tx pgx.Tx) DishRepositoryFacade
}
