package dto

import (
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/core/domain"
)

// RangeFilter bounds a numeric filter axis. Nil means unbounded on that side.
type RangeFilter struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// DishFilters carries the parsed catalog filters for one request. UnitPrice
// arrives in the request's display currency; the service translates it onto
// the MainUnitPrice axis before the store ever sees it.
type DishFilters struct {
	Names      []string
	Categories []string
	Cuisines   []string
	Types      []string

	UnitPrice      *RangeFilter
	MainUnitPrice  *RangeFilter
	Stock          *RangeFilter
	RatingsAverage *RangeFilter
	RatingsCount   *RangeFilter
}

// MinMax is the aggregated bounds of one numeric filter axis.
type MinMax struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// FilterValues is the raw aggregation result for the available-filters
// endpoint: deduplicated values per list field, min/max per numeric field.
type FilterValues struct {
	Lists  map[string][]string
	Ranges map[string]MinMax
}

// CreateDishRequest defines the payload for creating a dish. MainUnitPrice is
// absent on purpose: it is derived, never caller-settable.
type CreateDishRequest struct {
	Name           string          `json:"name" binding:"required,min=2,max=40"`
	Category       string          `json:"category" binding:"required"`
	Cuisine        string          `json:"cuisine" binding:"required"`
	Type           string          `json:"type" binding:"required"`
	Description    string          `json:"description"`
	Images         []string        `json:"images" binding:"required,min=1"`
	CoverIdx       *int            `json:"coverIdx"`
	UnitPrice      decimal.Decimal `json:"unitPrice" binding:"required"`
	Currency       string          `json:"currency" binding:"required,len=3,uppercase"`
	Stock          int             `json:"stock" binding:"min=0"`
}

// UpdateDishRequest defines the partial-update payload for a dish. Pointer
// fields distinguish "not sent" from zero values.
type UpdateDishRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=2,max=40"`
	Category    *string          `json:"category"`
	Cuisine     *string          `json:"cuisine"`
	Type        *string          `json:"type"`
	Description *string          `json:"description"`
	Images      []string         `json:"images"`
	CoverIdx    *int             `json:"coverIdx"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	Currency    *string          `json:"currency" binding:"omitempty,len=3,uppercase"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
}

// DishListResponse is the paged catalog listing with its three facets.
type DishListResponse struct {
	Dishes []domain.DishView `json:"dishes"`
	PageInfo
}

// FilterValuesResponse is the available-filters payload keyed by field name.
// List fields map to deduplicated value slices, numeric fields to min/max
// pairs; the price axis is exposed as unitPrice in the display currency.
type FilterValuesResponse map[string]any
