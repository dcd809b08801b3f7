package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/apperrors"
	"github.com/feastly/feastly_backend/internal/core/domain"
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	portssvc "github.com/feastly/feastly_backend/internal/core/ports/services"
	"github.com/feastly/feastly_backend/internal/utils/money"
)

// CurrencyService converts monetary amounts between currencies. Every method
// takes an explicit session handle so that conversions made inside a unit of
// work read rates and config through the caller's transaction; nil reads
// outside any transaction.
type CurrencyService struct {
	BaseService
	rateRepo   portsrepo.ExchangeRateRepositoryWithTx
	dishRepo   portsrepo.DishRepositoryWithTx
	configRepo portsrepo.ConfigRepositoryWithTx
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(
	rateRepo portsrepo.ExchangeRateRepositoryWithTx,
	dishRepo portsrepo.DishRepositoryWithTx,
	configRepo portsrepo.ConfigRepositoryWithTx,
) *CurrencyService {
	return &CurrencyService{
		rateRepo:   rateRepo,
		dishRepo:   dishRepo,
		configRepo: configRepo,
	}
}

// Ensure CurrencyService implements the converter port
var _ portssvc.CurrencyConverterSvc = (*CurrencyService)(nil)

func (s *CurrencyService) rates(tx pgx.Tx) portsrepo.ExchangeRateRepositoryFacade {
	if tx == nil {
		return s.rateRepo
	}
	return s.rateRepo.WithTx(tx)
}

func (s *CurrencyService) dishes(tx pgx.Tx) portsrepo.DishRepositoryFacade {
	if tx == nil {
		return s.dishRepo
	}
	return s.dishRepo.WithTx(tx)
}

func (s *CurrencyService) config(tx pgx.Tx) portsrepo.ConfigRepositoryFacade {
	if tx == nil {
		return s.configRepo
	}
	return s.configRepo.WithTx(tx)
}

// Convert converts amount from one currency into another. Identity
// conversions skip the rate store but still pass through the rounding rule,
// so a converted amount is always ceiled to 2 decimal digits.
func (s *CurrencyService) Convert(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return decimal.Zero, apperrors.NewValidationError("currency codes must be 3 letters")
	}

	if fromCode == toCode {
		return money.CeilAmount(amount), nil
	}

	rate, err := s.rates(tx).FindRate(ctx, fromCode, toCode)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot convert %s to %s: %w", fromCode, toCode, err)
	}

	return money.CeilAmount(amount.Mul(rate.Rate)), nil
}

// ToMain converts amount from the given currency into the main currency.
func (s *CurrencyService) ToMain(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, fromCode string) (decimal.Decimal, error) {
	cfg, err := s.config(tx).GetConfig(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Convert(ctx, tx, amount, fromCode, cfg.MainCurrency)
}

// FromMain converts amount from the main currency into the given currency.
func (s *CurrencyService) FromMain(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, toCode string) (decimal.Decimal, error) {
	cfg, err := s.config(tx).GetConfig(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Convert(ctx, tx, amount, cfg.MainCurrency, toCode)
}

// RetargetDishPrice overwrites a dish view's displayed price and currency in
// place. A field projection may have stripped the view's currency while
// keeping its price; in that case the authoritative currency is re-read from
// the catalog by dish ID before converting. A view carrying neither price
// nor currency is left untouched.
func (s *CurrencyService) RetargetDishPrice(ctx context.Context, tx pgx.Tx, view *domain.DishView, toCode string) error {
	if view == nil || (view.UnitPrice == nil && view.Currency == nil) {
		return nil
	}

	toCode = strings.ToUpper(toCode)
	if view.UnitPrice == nil {
		// No price to convert, but the view still reports the display
		// currency rather than the stored one
		view.Currency = &toCode
		return nil
	}

	var fromCode string
	if view.Currency != nil {
		fromCode = *view.Currency
	} else {
		currency, err := s.dishes(tx).FindDishCurrency(ctx, view.DishID)
		if err != nil {
			return err
		}
		fromCode = currency
	}

	converted, err := s.Convert(ctx, tx, *view.UnitPrice, fromCode, toCode)
	if err != nil {
		return err
	}

	view.UnitPrice = &converted
	view.Currency = &toCode
	return nil
}

// ListCurrencies returns the currency codes prices can be quoted in. The set
// is derived from the stored rate pairs plus the main currency, sorted; the
// pair invariant guarantees every rated currency appears as a from leg.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]string, error) {
	cfg, err := s.configRepo.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	codes, err := s.rateRepo.ListCurrencyCodes(ctx)
	if err != nil {
		return nil, err
	}

	hasMain := false
	for _, code := range codes {
		if code == cfg.MainCurrency {
			hasMain = true
			break
		}
	}
	if !hasMain {
		codes = append(codes, cfg.MainCurrency)
		sort.Strings(codes)
	}
	return codes, nil
}

// GetCurrency returns the given code normalized when it is available;
// NotFound when neither a rate pair nor the config references it.
func (s *CurrencyService) GetCurrency(ctx context.Context, code string) (string, error) {
	code = strings.ToUpper(code)
	if len(code) != 3 {
		return "", apperrors.NewValidationError("currency codes must be 3 letters")
	}

	codes, err := s.ListCurrencies(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range codes {
		if c == code {
			return code, nil
		}
	}
	return "", apperrors.NewNotFoundError("currency " + code + " is not available")
}
