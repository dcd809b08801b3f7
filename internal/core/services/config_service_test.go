package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/feastly/feastly_backend/internal/apperrors"
	"github.com/feastly/feastly_backend/internal/core/domain"
	"github.com/feastly/feastly_backend/internal/core/services"
)

type ConfigServiceTestSuite struct {
	suite.Suite
	mockConfigRepo *MockConfigRepository
	mockDishRepo   *MockDishRepository
	mockConverter  *MockCurrencyConverter
	service        *services.ConfigService
	ctx            context.Context
}

func (suite *ConfigServiceTestSuite) SetupTest() {
	suite.mockConfigRepo = new(MockConfigRepository)
	suite.mockDishRepo = new(MockDishRepository)
	suite.mockConverter = new(MockCurrencyConverter)
	suite.service = services.NewConfigService(suite.mockConfigRepo, suite.mockDishRepo, suite.mockConverter)
	suite.ctx = context.Background()
}

func (suite *ConfigServiceTestSuite) TestGetConfig() {
	cfg := &domain.Config{MainCurrency: "USD"}
	suite.mockConfigRepo.On("GetConfig", suite.ctx).Return(cfg, nil).Once()

	got, err := suite.service.GetConfig(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal("USD", got.MainCurrency)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_SameCurrencyIsNoOp() {
	cfg := &domain.Config{MainCurrency: "USD"}
	suite.mockConfigRepo.On("GetConfig", suite.ctx).Return(cfg, nil).Once()

	got, err := suite.service.UpdateConfig(suite.ctx, "usd", "admin-1")

	suite.Require().NoError(err)
	suite.Equal("USD", got.MainCurrency)
	suite.mockConfigRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockConfigRepo.AssertNotCalled(suite.T(), "SaveConfig", mock.Anything, mock.Anything)
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_InvalidCode() {
	_, err := suite.service.UpdateConfig(suite.ctx, "EURO", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockConfigRepo.AssertNotCalled(suite.T(), "GetConfig", mock.Anything)
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_RebuildsCanonicalPrices() {
	cfg := &domain.Config{MainCurrency: "USD"}
	suite.mockConfigRepo.On("GetConfig", suite.ctx).Return(cfg, nil).Once()
	suite.mockConfigRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockConfigRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockConfigRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()

	dishes := []domain.Dish{
		{DishID: "dish-1", UnitPrice: decimal.NewFromInt(10), Currency: "USD", MainUnitPrice: decimal.NewFromInt(10)},
		{DishID: "dish-2", UnitPrice: decimal.NewFromInt(9), Currency: "EUR", MainUnitPrice: decimal.NewFromInt(10)},
	}
	suite.mockDishRepo.On("ListDishes", suite.ctx).Return(dishes, nil).Once()

	// Every canonical price is rebuilt from the authoritative unit price
	suite.mockConverter.On("Convert", mock.Anything, mock.Anything, decEq("10"), "USD", "EUR").
		Return(decimal.NewFromInt(9), nil).Once()
	suite.mockConverter.On("Convert", mock.Anything, mock.Anything, decEq("9"), "EUR", "EUR").
		Return(decimal.NewFromInt(9), nil).Once()
	suite.mockDishRepo.On("UpdateMainUnitPrice", suite.ctx, "dish-1", decEq("9")).Return(nil).Once()
	suite.mockDishRepo.On("UpdateMainUnitPrice", suite.ctx, "dish-2", decEq("9")).Return(nil).Once()

	suite.mockConfigRepo.On("SaveConfig", suite.ctx, mock.MatchedBy(func(c domain.Config) bool {
		return c.MainCurrency == "EUR" && c.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()

	got, err := suite.service.UpdateConfig(suite.ctx, "EUR", "admin-1")

	suite.Require().NoError(err)
	suite.Equal("EUR", got.MainCurrency)
	suite.mockConfigRepo.AssertExpectations(suite.T())
	suite.mockDishRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *ConfigServiceTestSuite) TestUpdateConfig_MissingRateRollsBack() {
	cfg := &domain.Config{MainCurrency: "USD"}
	suite.mockConfigRepo.On("GetConfig", suite.ctx).Return(cfg, nil).Once()
	suite.mockConfigRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockConfigRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()

	dishes := []domain.Dish{
		{DishID: "dish-1", UnitPrice: decimal.NewFromInt(10), Currency: "USD"},
	}
	suite.mockDishRepo.On("ListDishes", suite.ctx).Return(dishes, nil).Once()
	suite.mockConverter.On("Convert", mock.Anything, mock.Anything, decEq("10"), "USD", "JPY").
		Return(decimal.Zero, apperrors.NewNotFoundError("exchange rate from USD to JPY not found")).Once()

	_, err := suite.service.UpdateConfig(suite.ctx, "JPY", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockConfigRepo.AssertNotCalled(suite.T(), "SaveConfig", mock.Anything, mock.Anything)
	suite.mockConfigRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func TestConfigServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigServiceTestSuite))
}
