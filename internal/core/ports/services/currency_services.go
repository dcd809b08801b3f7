package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/core/domain"
)

// CurrencyConverterSvc converts monetary amounts between currency codes. All
// methods take an explicit transaction session so conversions made inside a
// unit of work read rates and config through the caller's transaction; a nil
// session reads outside any transaction. Converted amounts are always ceiled
// to 2 decimal digits.
type CurrencyConverterSvc interface {
	// Convert converts amount from one currency into another. Identity
	// conversions skip the rate store but still apply the rounding rule.
	Convert(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)

	// ToMain converts amount from the given currency into the main currency.
	ToMain(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, fromCode string) (decimal.Decimal, error)

	// FromMain converts amount from the main currency into the given currency.
	FromMain(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, toCode string) (decimal.Decimal, error)

	// RetargetDishPrice overwrites a dish view's displayed price and currency
	// in place. When the view's currency was stripped by a field projection,
	// the authoritative currency is re-read from the catalog by dish ID.
	RetargetDishPrice(ctx context.Context, tx pgx.Tx, view *domain.DishView, toCode string) error

	// ListCurrencies returns the sorted currency codes prices can be quoted
	// in: every code with a stored rate pair plus the main currency.
	ListCurrencies(ctx context.Context) ([]string, error)

	// GetCurrency returns code normalized when it is available; NotFound
	// otherwise.
	GetCurrency(ctx context.Context, code string) (string, error)
}
