package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/apperrors"
	"github.com/feastly/feastly_backend/internal/core/domain"
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	portssvc "github.com/feastly/feastly_backend/internal/core/ports/services"
	"github.com/feastly/feastly_backend/internal/dto"
	"github.com/feastly/feastly_backend/internal/utils/money"
)

// ExchangeRateService provides business logic for exchange rate pairs. Every
// mutation writes both legs of a pair inside one transaction so the pair
// invariant cannot be observed broken.
type ExchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryWithTx
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryWithTx) *ExchangeRateService {
	return &ExchangeRateService{rateRepo: rateRepo}
}

// Ensure ExchangeRateService implements the facade port
var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

func validatePairCodes(fromCode, toCode string) (string, string, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return "", "", apperrors.NewValidationError("currency codes must be 3 letters")
	}
	if fromCode == toCode {
		return "", "", apperrors.NewValidationError("from and to currency codes cannot be the same")
	}
	return fromCode, toCode, nil
}

// buildRatePair builds both legs of a pair from a directed rate. The forward
// leg carries ceil4(rate), the inverse leg ceil4(1/rate); inverting is not an
// exact involution because of the rounding, so the stored legs are what every
// later read sees.
func buildRatePair(fromCode, toCode string, rate decimal.Decimal, audit domain.AuditFields) domain.RatePair {
	forward := money.CeilRate(rate)
	return domain.RatePair{
		Rate: domain.ExchangeRate{
			FromCurrencyCode: fromCode,
			ToCurrencyCode:   toCode,
			Rate:             forward,
			AuditFields:      audit,
		},
		Inverse: domain.ExchangeRate{
			FromCurrencyCode: toCode,
			ToCurrencyCode:   fromCode,
			Rate:             money.InverseRate(rate),
			AuditFields:      audit,
		},
	}
}

// CreateExchangeRate persists a new rate pair.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.RatePair, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("exchange rate must be positive")
	}
	fromCode, toCode, err := validatePairCodes(req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pair := buildRatePair(fromCode, toCode, req.Rate, domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	})

	err = runInTx(ctx, s.rateRepo, func(tx pgx.Tx) error {
		return s.rateRepo.WithTx(tx).SaveRatePair(ctx, pair)
	})
	if err != nil {
		s.LogError(ctx, err, "failed to create exchange rate pair",
			"from", fromCode, "to", toCode)
		return nil, err
	}

	return &pair, nil
}

// UpdateExchangeRate updates both legs of an existing pair.
func (s *ExchangeRateService) UpdateExchangeRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, updaterUserID string) (*domain.RatePair, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("exchange rate must be positive")
	}
	fromCode, toCode, err := validatePairCodes(fromCode, toCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pair := buildRatePair(fromCode, toCode, rate, domain.AuditFields{
		LastUpdatedAt: now,
		LastUpdatedBy: updaterUserID,
	})

	err = runInTx(ctx, s.rateRepo, func(tx pgx.Tx) error {
		return s.rateRepo.WithTx(tx).UpdateRatePair(ctx, pair)
	})
	if err != nil {
		s.LogError(ctx, err, "failed to update exchange rate pair",
			"from", fromCode, "to", toCode)
		return nil, err
	}

	return &pair, nil
}

// DeleteExchangeRate deletes both legs of a pair.
func (s *ExchangeRateService) DeleteExchangeRate(ctx context.Context, fromCode, toCode string) error {
	fromCode, toCode, err := validatePairCodes(fromCode, toCode)
	if err != nil {
		return err
	}

	err = runInTx(ctx, s.rateRepo, func(tx pgx.Tx) error {
		return s.rateRepo.WithTx(tx).DeleteRatePair(ctx, fromCode, toCode)
	})
	if err != nil {
		s.LogError(ctx, err, "failed to delete exchange rate pair",
			"from", fromCode, "to", toCode)
		return err
	}
	return nil
}

// GetExchangeRate retrieves the directed rate between two currencies.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, apperrors.NewValidationError("currency codes must be 3 letters")
	}

	rate, err := s.rateRepo.FindRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListExchangeRates retrieves rate legs with optional filtering.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, fromCode, toCode *string, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	if page < 1 {
		page = 1
	}
	return s.rateRepo.ListRates(ctx, fromCode, toCode, page, pageSize)
}
