package domain

import "github.com/shopspring/decimal"

// OrderItem is one line of an order. DishName and UnitPrice are snapshots
// taken at order-validation time: the price is the dish's authoritative price
// converted into the order's currency, never a client-supplied value.
type OrderItem struct {
	DishID    string          `json:"dish"`
	DishName  string          `json:"dishName"`
	Quantity  int             `json:"quantity"` // > 0
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Order is an immutable record of one successful checkout.
// TotalPrice = ceil2(sum(quantity_i * unitPrice_i)).
type Order struct {
	OrderID    string          `json:"orderID"`
	UserID     string          `json:"user"`
	Items      []OrderItem     `json:"items"`
	Currency   string          `json:"currency"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	AuditFields
}
