package dto

import (
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/core/domain"
)

// CreateExchangeRateRequest defines the structure for creating a new rate pair.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
}

// UpdateExchangeRateRequest defines the structure for updating a rate pair.
type UpdateExchangeRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse defines the structure for API responses containing one rate leg.
type ExchangeRateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
}

// RatePairResponse carries both legs of a pair mutation result.
type RatePairResponse struct {
	Rate    ExchangeRateResponse `json:"rate"`
	Inverse ExchangeRateResponse `json:"inverse"`
}

// CurrencyResponse carries one available currency code.
type CurrencyResponse struct {
	Code string `json:"code"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
	}
}

// ToRatePairResponse converts a domain.RatePair to RatePairResponse DTO
func ToRatePairResponse(pair *domain.RatePair) RatePairResponse {
	return RatePairResponse{
		Rate:    ToExchangeRateResponse(&pair.Rate),
		Inverse: ToExchangeRateResponse(&pair.Inverse),
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
