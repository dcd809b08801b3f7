package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/feastly/feastly_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRate retrieves the directed rate between two currencies. There is
	// no inference through a third currency: a missing pair is ErrNotFound.
	FindRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListRates retrieves rate legs with optional from/to filtering and the
	// total count for pagination.
	ListRates(ctx context.Context, fromCurrency, toCurrency *string, page, pageSize int) ([]domain.ExchangeRate, int, error)

	// ListCurrencyCodes retrieves the distinct currency codes appearing as
	// the from leg of any stored rate, sorted.
	ListCurrencyCodes(ctx context.Context) ([]string, error)
}

// ExchangeRateWriter defines write operations for exchange rate data. Only
// paired mutations exist: a single leg can never be written on its own, so
// the two legs of a pair cannot drift apart.
type ExchangeRateWriter interface {
	// SaveRatePair persists both legs of a new pair.
	SaveRatePair(ctx context.Context, pair domain.RatePair) error

	// UpdateRatePair updates both legs; ErrNotFound if either leg is missing.
	UpdateRatePair(ctx context.Context, pair domain.RatePair) error

	// DeleteRatePair deletes both legs; ErrNotFound if either delete affected
	// zero rows.
	DeleteRatePair(ctx context.Context, fromCurrencyCode, toCurrencyCode string) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager

	// WithTx returns a facade bound to the given transaction session.
	WithTx(tx pgx.Tx) ExchangeRateRepositoryFacade
}
