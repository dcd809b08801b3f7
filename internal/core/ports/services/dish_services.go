package services

import (
	"context"

	"github.com/feastly/feastly_backend/internal/core/domain"
	"github.com/feastly/feastly_backend/internal/dto"
)

// DishReaderSvc defines read operations for the catalog
type DishReaderSvc interface {
	// GetDishes lists catalog items with filters, field selection, pagination
	// and optional display-currency conversion, computing the matching and
	// total counts in the same store pass.
	GetDishes(ctx context.Context, filters dto.DishFilters, fields map[string]int, pagination dto.Pagination, targetCurrency string) (*dto.DishListResponse, error)

	// GetDish retrieves one dish with field selection and optional
	// display-currency conversion.
	GetDish(ctx context.Context, dishID string, fields map[string]int, targetCurrency string) (*domain.DishView, error)

	// GetFiltersValues aggregates the available filter values for the
	// selected fields, converting the price axis into targetCurrency.
	GetFiltersValues(ctx context.Context, fields map[string]int, targetCurrency string) (dto.FilterValuesResponse, error)
}

// DishWriterSvc defines write operations for the catalog
type DishWriterSvc interface {
	// CreateDish persists a new dish; the canonical main-currency price is
	// derived here, never taken from the caller.
	CreateDish(ctx context.Context, req dto.CreateDishRequest, creatorUserID string) (*domain.Dish, error)

	// UpdateDish applies a partial update, recomputing the canonical price
	// whenever the unit price or the currency changes.
	UpdateDish(ctx context.Context, dishID string, req dto.UpdateDishRequest, updaterUserID string) (*domain.Dish, error)

	// DeleteDish removes a dish from the catalog.
	DeleteDish(ctx context.Context, dishID string) error
}

// DishSvcFacade combines all catalog-related service interfaces
type DishSvcFacade interface {
	DishReaderSvc
	DishWriterSvc
}
