package models

import "github.com/shopspring/decimal"

// ExchangeRate is one row of the exchange_rates table. The primary key is
// (from_currency, to_currency); the inverse row is maintained by the paired
// repository operations, never independently.
type ExchangeRate struct {
	FromCurrencyCode string          `db:"from_currency"`
	ToCurrencyCode   string          `db:"to_currency"`
	Rate             decimal.Decimal `db:"rate"`
	AuditFields
}
