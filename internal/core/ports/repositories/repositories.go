package repositories

// RepositoryProvider groups every repository the service container needs.
type RepositoryProvider struct {
	ExchangeRateRepo ExchangeRateRepositoryWithTx
	DishRepo         DishRepositoryWithTx
	OrderRepo        OrderRepositoryWithTx
	ConfigRepo       ConfigRepositoryWithTx
	UserRepo         UserRepositoryFacade
}
