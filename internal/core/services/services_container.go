package services

import (
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	portssvc "github.com/feastly/feastly_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The converter comes first since pricing and checkout depend on it
	container.Currency = NewCurrencyService(repos.ExchangeRateRepo, repos.DishRepo, repos.ConfigRepo)

	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)
	container.Dish = NewDishService(repos.DishRepo, container.Currency)
	container.Order = NewOrderService(repos.OrderRepo, repos.DishRepo, container.Currency)
	container.Config = NewConfigService(repos.ConfigRepo, repos.DishRepo, container.Currency)
	container.User = NewUserService(repos.UserRepo)

	return container
}
