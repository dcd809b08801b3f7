package services_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/feastly/feastly_backend/internal/core/domain"
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	"github.com/feastly/feastly_backend/internal/dto"
)

// The repository mocks below return themselves from WithTx: the mock stands
// in for both the pool-bound and the transaction-bound facade, and the tests
// assert on Begin/Commit/Rollback to observe transaction boundaries.

// fakeTx is a distinguishable pgx.Tx value for asserting that a code path
// threads the session it began through every store call it makes.
type fakeTx struct {
	pgx.Tx
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, fromCurrency, toCurrency *string, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

func (m *MockExchangeRateRepository) ListCurrencyCodes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveRatePair(ctx context.Context, pair domain.RatePair) error {
	args := m.Called(ctx, pair)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) UpdateRatePair(ctx context.Context, pair domain.RatePair) error {
	args := m.Called(ctx, pair)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) DeleteRatePair(ctx context.Context, fromCode, toCode string) error {
	args := m.Called(ctx, fromCode, toCode)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockExchangeRateRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) WithTx(tx pgx.Tx) portsrepo.ExchangeRateRepositoryFacade {
	return m
}

// --- Mock DishRepository ---
type MockDishRepository struct {
	mock.Mock
}

func (m *MockDishRepository) FindDishByID(ctx context.Context, dishID string) (*domain.Dish, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dish), args.Error(1)
}

func (m *MockDishRepository) FindDishCurrency(ctx context.Context, dishID string) (string, error) {
	args := m.Called(ctx, dishID)
	return args.String(0), args.Error(1)
}

func (m *MockDishRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dish), args.Error(1)
}

func (m *MockDishRepository) AggregateDishes(ctx context.Context, filters dto.DishFilters, fields map[string]int, pagination dto.Pagination) ([]domain.DishView, int, int, error) {
	args := m.Called(ctx, filters, fields, pagination)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Int(2), args.Error(3)
	}
	return args.Get(0).([]domain.DishView), args.Int(1), args.Int(2), args.Error(3)
}

func (m *MockDishRepository) AggregateFilterValues(ctx context.Context, listFields, minMaxFields []string) (*dto.FilterValues, error) {
	args := m.Called(ctx, listFields, minMaxFields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FilterValues), args.Error(1)
}

func (m *MockDishRepository) SaveDish(ctx context.Context, dish domain.Dish) error {
	args := m.Called(ctx, dish)
	return args.Error(0)
}

func (m *MockDishRepository) UpdateDish(ctx context.Context, dish domain.Dish) error {
	args := m.Called(ctx, dish)
	return args.Error(0)
}

func (m *MockDishRepository) UpdateMainUnitPrice(ctx context.Context, dishID string, mainUnitPrice decimal.Decimal) error {
	args := m.Called(ctx, dishID, mainUnitPrice)
	return args.Error(0)
}

func (m *MockDishRepository) DeleteDish(ctx context.Context, dishID string) error {
	args := m.Called(ctx, dishID)
	return args.Error(0)
}

func (m *MockDishRepository) DecrementStock(ctx context.Context, dishID string, quantity int) (bool, error) {
	args := m.Called(ctx, dishID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockDishRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockDishRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDishRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDishRepository) WithTx(tx pgx.Tx) portsrepo.DishRepositoryFacade {
	return m
}

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByUser(ctx context.Context, userID string, pagination dto.Pagination) ([]domain.Order, int, error) {
	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockOrderRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOrderRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOrderRepository) WithTx(tx pgx.Tx) portsrepo.OrderRepositoryFacade {
	return m
}

// --- Mock ConfigRepository ---
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) GetConfig(ctx context.Context) (*domain.Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Config), args.Error(1)
}

func (m *MockConfigRepository) SaveConfig(ctx context.Context, cfg domain.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockConfigRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockConfigRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockConfigRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockConfigRepository) WithTx(tx pgx.Tx) portsrepo.ConfigRepositoryFacade {
	return m
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock CurrencyConverter ---
type MockCurrencyConverter struct {
	mock.Mock
}

func (m *MockCurrencyConverter) Convert(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, amount, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCurrencyConverter) ToMain(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, fromCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, amount, fromCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCurrencyConverter) FromMain(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, toCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, amount, toCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCurrencyConverter) RetargetDishPrice(ctx context.Context, tx pgx.Tx, view *domain.DishView, toCode string) error {
	args := m.Called(ctx, tx, view, toCode)
	return args.Error(0)
}

func (m *MockCurrencyConverter) ListCurrencies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCurrencyConverter) GetCurrency(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}
