package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/core/domain"
	"github.com/feastly/feastly_backend/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves the directed rate between two currencies.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves rate legs with optional filtering.
	ListExchangeRates(ctx context.Context, fromCode, toCode *string, page, pageSize int) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriterSvc defines the paired mutations for exchange rate data.
// Every mutation touches both legs of the pair as one atomic unit.
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new rate pair.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.RatePair, error)

	// UpdateExchangeRate updates both legs of an existing pair.
	UpdateExchangeRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, updaterUserID string) (*domain.RatePair, error)

	// DeleteExchangeRate deletes both legs of a pair.
	DeleteExchangeRate(ctx context.Context, fromCode, toCode string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
