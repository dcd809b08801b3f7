// Package money holds the rounding rule shared by every monetary computation.
//
// Amounts are always rounded up (toward positive infinity), never down or to
// nearest, so truncation can never under-charge. Monetary amounts round to 2
// decimal digits; exchange rates round to 4 so inverse-pair arithmetic stays
// stable.
package money

import "github.com/shopspring/decimal"

const (
	// AmountDigits is the scale used for prices, converted amounts and totals.
	AmountDigits = 2
	// RateDigits is the scale used for exchange rates.
	RateDigits = 4
)

// CeilTo rounds d up to the given number of decimal digits.
func CeilTo(d decimal.Decimal, digits int32) decimal.Decimal {
	return d.RoundCeil(digits)
}

// CeilAmount rounds a monetary amount up to 2 decimal digits.
func CeilAmount(d decimal.Decimal) decimal.Decimal {
	return CeilTo(d, AmountDigits)
}

// CeilRate rounds an exchange rate up to 4 decimal digits.
func CeilRate(d decimal.Decimal) decimal.Decimal {
	return CeilTo(d, RateDigits)
}

// InverseRate computes the inverse of a rate, rounded up to 4 decimal digits.
// The caller must ensure rate is non-zero.
func InverseRate(rate decimal.Decimal) decimal.Decimal {
	return CeilRate(decimal.NewFromInt(1).Div(rate))
}
