package domain

import "github.com/shopspring/decimal"

// Dish is a catalog item. UnitPrice is authoritative and denominated in
// Currency; MainUnitPrice is the same price pre-converted to the system's
// main currency and is the canonical sort/filter axis. It is recomputed by
// the single update path whenever UnitPrice or Currency changes and is never
// settable by a caller.
type Dish struct {
	DishID         string          `json:"dishID"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Cuisine        string          `json:"cuisine"`
	Type           string          `json:"type"`
	Description    string          `json:"description"`
	Images         []string        `json:"images"`
	CoverImage     string          `json:"coverImage"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Currency       string          `json:"currency"`
	MainUnitPrice  decimal.Decimal `json:"mainUnitPrice"`
	Stock          int             `json:"stock"` // non-negative; sole source of truth for availability
	RatingsAverage decimal.Decimal `json:"ratingsAverage"`
	RatingsCount   int             `json:"ratingsCount"`
	AuditFields
}

// DishView is a projected dish as returned by the catalog aggregation. Fields
// stripped by the caller's field selection are nil; DishID is always present.
// Prices on a view are display values and may be retargeted to another
// currency in place.
type DishView struct {
	DishID         string           `json:"dishID"`
	Name           *string          `json:"name,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Cuisine        *string          `json:"cuisine,omitempty"`
	Type           *string          `json:"type,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Images         []string         `json:"images,omitempty"`
	CoverImage     *string          `json:"coverImage,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unitPrice,omitempty"`
	Currency       *string          `json:"currency,omitempty"`
	MainUnitPrice  *decimal.Decimal `json:"mainUnitPrice,omitempty"`
	Stock          *int             `json:"stock,omitempty"`
	RatingsAverage *decimal.Decimal `json:"ratingsAverage,omitempty"`
	RatingsCount   *int             `json:"ratingsCount,omitempty"`
}
