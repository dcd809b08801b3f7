package domain

import "github.com/shopspring/decimal"

// ExchangeRate is one directed leg of a currency pair. For every stored leg
// (from,to,rate) the store maintains the inverse leg (to,from,ceil4(1/rate));
// the two are only ever created, updated and deleted together.
type ExchangeRate struct {
	FromCurrencyCode string          `json:"from"` // e.g. "USD"
	ToCurrencyCode   string          `json:"to"`   // e.g. "EUR"
	Rate             decimal.Decimal `json:"rate"` // positive, ceiled to 4 digits
	AuditFields
}

// RatePair couples a directed rate with its maintained inverse leg.
type RatePair struct {
	Rate    ExchangeRate `json:"rate"`
	Inverse ExchangeRate `json:"inverse"`
}
