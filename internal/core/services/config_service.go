package services

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/feastly/feastly_backend/internal/apperrors"
	"github.com/feastly/feastly_backend/internal/core/domain"
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	portssvc "github.com/feastly/feastly_backend/internal/core/ports/services"
)

// ConfigService manages the platform configuration singleton.
type ConfigService struct {
	BaseService
	configRepo portsrepo.ConfigRepositoryWithTx
	dishRepo   portsrepo.DishRepositoryWithTx
	converter  portssvc.CurrencyConverterSvc
}

// NewConfigService creates a new ConfigService.
func NewConfigService(
	configRepo portsrepo.ConfigRepositoryWithTx,
	dishRepo portsrepo.DishRepositoryWithTx,
	converter portssvc.CurrencyConverterSvc,
) *ConfigService {
	return &ConfigService{
		configRepo: configRepo,
		dishRepo:   dishRepo,
		converter:  converter,
	}
}

// Ensure ConfigService implements the facade port
var _ portssvc.ConfigSvcFacade = (*ConfigService)(nil)

// GetConfig retrieves the config singleton.
func (s *ConfigService) GetConfig(ctx context.Context) (*domain.Config, error) {
	return s.configRepo.GetConfig(ctx)
}

// UpdateConfig changes the main currency and rebuilds every dish's canonical
// price against the new pivot in the same transaction. Conversions read
// through the transaction, so they see the old config and rate rows
// consistently until the commit.
func (s *ConfigService) UpdateConfig(ctx context.Context, mainCurrency string, updaterUserID string) (*domain.Config, error) {
	mainCurrency = strings.ToUpper(mainCurrency)
	if len(mainCurrency) != 3 {
		return nil, apperrors.NewValidationError("currency codes must be 3 letters")
	}

	cfg, err := s.configRepo.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.MainCurrency == mainCurrency {
		return cfg, nil
	}

	err = runInTx(ctx, s.configRepo, func(tx pgx.Tx) error {
		dishRepoTx := s.dishRepo.WithTx(tx)
		dishes, err := dishRepoTx.ListDishes(ctx)
		if err != nil {
			return err
		}
		for _, dish := range dishes {
			newMain, err := s.converter.Convert(ctx, tx, dish.UnitPrice, dish.Currency, mainCurrency)
			if err != nil {
				return err
			}
			if err := dishRepoTx.UpdateMainUnitPrice(ctx, dish.DishID, newMain); err != nil {
				return err
			}
		}

		cfg.MainCurrency = mainCurrency
		cfg.LastUpdatedAt = time.Now()
		cfg.LastUpdatedBy = updaterUserID
		return s.configRepo.WithTx(tx).SaveConfig(ctx, *cfg)
	})
	if err != nil {
		s.LogError(ctx, err, "failed to update main currency", "main_currency", mainCurrency)
		return nil, err
	}

	s.LogInfo(ctx, "main currency updated", "main_currency", mainCurrency)
	return cfg, nil
}
