package pgsql

import (
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	dishRepo := newPgxDishRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	configRepo := newPgxConfigRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: exchangeRateRepo,
		DishRepo:         dishRepo,
		OrderRepo:        orderRepo,
		ConfigRepo:       configRepo,
		UserRepo:         userRepo,
	}
}
