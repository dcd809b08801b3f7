package models

import "github.com/shopspring/decimal"

// Dish is one row of the dishes table. main_unit_price is the canonical
// price axis derived from unit_price and currency; it is only ever written
// by the dish update path.
type Dish struct {
	DishID         string          `db:"dish_id"`
	Name           string          `db:"name"`
	Category       string          `db:"category"`
	Cuisine        string          `db:"cuisine"`
	Type           string          `db:"type"`
	Description    string          `db:"description"`
	Images         []string        `db:"images"`
	CoverImage     string          `db:"cover_image"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	Currency       string          `db:"currency"`
	MainUnitPrice  decimal.Decimal `db:"main_unit_price"`
	Stock          int             `db:"stock"`
	RatingsAverage decimal.Decimal `db:"ratings_average"`
	RatingsCount   int             `db:"ratings_count"`
	AuditFields
}
