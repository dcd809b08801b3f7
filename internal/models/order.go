package models

import "github.com/shopspring/decimal"

// Order is one row of the orders table.
type Order struct {
	OrderID    string          `db:"order_id"`
	UserID     string          `db:"user_id"`
	Currency   string          `db:"currency"`
	TotalPrice decimal.Decimal `db:"total_price"`
	AuditFields
}

// OrderItem is one row of the order_items table. dish_name and unit_price
// are snapshots taken when the order was validated.
type OrderItem struct {
	OrderID   string          `db:"order_id"`
	DishID    string          `db:"dish_id"`
	DishName  string          `db:"dish_name"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
}
