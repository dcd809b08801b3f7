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
	"github.com/feastly/feastly_backend/internal/dto"
	"github.com/feastly/feastly_backend/internal/utils/selectfields"
)

func decEq(expected string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString(expected))
	})
}

type DishServiceTestSuite struct {
	suite.Suite
	mockDishRepo  *MockDishRepository
	mockConverter *MockCurrencyConverter
	service       *services.DishService
	ctx           context.Context
}

func (suite *DishServiceTestSuite) SetupTest() {
	suite.mockDishRepo = new(MockDishRepository)
	suite.mockConverter = new(MockCurrencyConverter)
	suite.service = services.NewDishService(suite.mockDishRepo, suite.mockConverter)
	suite.ctx = context.Background()
}

func (suite *DishServiceTestSuite) expectTxCommit() {
	suite.mockDishRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockDishRepo.On("Commit", suite.ctx, nil).Return(nil).Once()
	suite.mockDishRepo.On("Rollback", suite.ctx, nil).Return(nil).Maybe()
}

func (suite *DishServiceTestSuite) expectTxRollback() {
	suite.mockDishRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockDishRepo.On("Rollback", suite.ctx, nil).Return(nil).Once()
}

func (suite *DishServiceTestSuite) sampleDish() *domain.Dish {
	return &domain.Dish{
		DishID:        "dish-1",
		Name:          "Pad Thai",
		Category:      "main course",
		Cuisine:       "thai",
		Type:          "non-vegetarian",
		Description:   "stir-fried rice noodles",
		Images:        []string{"a.jpg", "b.jpg"},
		CoverImage:    "a.jpg",
		UnitPrice:     decimal.NewFromInt(10),
		Currency:      "USD",
		MainUnitPrice: decimal.NewFromInt(10),
		Stock:         5,
	}
}

func (suite *DishServiceTestSuite) TestGetDishes_TranslatesPriceFilterToMainAxis() {
	min := decimal.NewFromInt(9)
	max := decimal.NewFromInt(18)
	filters := dto.DishFilters{UnitPrice: &dto.RangeFilter{Min: &min, Max: &max}}
	pagination := dto.Pagination{Skip: 0, Limit: 20}

	suite.expectTxCommit()
	suite.mockConverter.On("ToMain", mock.Anything, mock.Anything, decEq("9"), "EUR").
		Return(decimal.NewFromInt(10), nil).Once()
	suite.mockConverter.On("ToMain", mock.Anything, mock.Anything, decEq("18"), "EUR").
		Return(decimal.NewFromInt(20), nil).Once()

	mainPrice := decimal.NewFromInt(10)
	suite.mockDishRepo.On("AggregateDishes", suite.ctx, mock.MatchedBy(func(f dto.DishFilters) bool {
		return f.UnitPrice == nil &&
			f.MainUnitPrice != nil &&
			f.MainUnitPrice.Min.Equal(decimal.NewFromInt(10)) &&
			f.MainUnitPrice.Max.Equal(decimal.NewFromInt(20))
	}), map[string]int(nil), pagination).
		Return([]domain.DishView{{DishID: "dish-1", MainUnitPrice: &mainPrice}}, 1, 3, nil).Once()

	suite.mockConverter.On("RetargetDishPrice", mock.Anything, mock.Anything, mock.Anything, "EUR").
		Return(nil).Once()

	resp, err := suite.service.GetDishes(suite.ctx, filters, nil, pagination, "EUR")

	suite.Require().NoError(err)
	suite.Len(resp.Dishes, 1)
	// The canonical price is stripped from display-currency listings
	suite.Nil(resp.Dishes[0].MainUnitPrice)
	suite.Equal(1, resp.MatchingCount)
	suite.Equal(3, resp.TotalCount)
	suite.mockDishRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *DishServiceTestSuite) TestGetDishes_PriceFilterRequiresCurrency() {
	min := decimal.NewFromInt(9)
	filters := dto.DishFilters{UnitPrice: &dto.RangeFilter{Min: &min}}

	_, err := suite.service.GetDishes(suite.ctx, filters, nil, dto.Pagination{Limit: 20}, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDishRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockDishRepo.AssertNotCalled(suite.T(), "AggregateDishes",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DishServiceTestSuite) TestGetDishes_MixedSelection() {
	fields := map[string]int{"name": selectfields.Include, "description": selectfields.Exclude}

	_, err := suite.service.GetDishes(suite.ctx, dto.DishFilters{}, fields, dto.Pagination{Limit: 20}, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DishServiceTestSuite) TestGetDishes_PageInfo() {
	pagination := dto.Pagination{Skip: 20, Limit: 20}
	suite.expectTxCommit()
	suite.mockDishRepo.On("AggregateDishes", suite.ctx, dto.DishFilters{}, map[string]int(nil), pagination).
		Return([]domain.DishView{{DishID: "dish-1"}}, 45, 100, nil).Once()

	resp, err := suite.service.GetDishes(suite.ctx, dto.DishFilters{}, nil, pagination, "")

	suite.Require().NoError(err)
	suite.Equal(45, resp.MatchingCount)
	suite.Equal(100, resp.TotalCount)
	suite.Equal(3, resp.PagesCount)
	suite.Equal(2, resp.CurrentPage)
}

func (suite *DishServiceTestSuite) TestGetDishes_EmptyPage() {
	pagination := dto.Pagination{Skip: 0, Limit: 20}
	suite.expectTxCommit()
	suite.mockDishRepo.On("AggregateDishes", suite.ctx, dto.DishFilters{}, map[string]int(nil), pagination).
		Return(nil, 0, 0, nil).Once()

	resp, err := suite.service.GetDishes(suite.ctx, dto.DishFilters{}, nil, pagination, "")

	suite.Require().NoError(err)
	suite.NotNil(resp.Dishes)
	suite.Empty(resp.Dishes)
}

func (suite *DishServiceTestSuite) TestGetDishes_PastLastPageKeepsMatchingCount() {
	// A page past the end comes back empty but still reports the real
	// matching count, so pagination controls stay correct
	pagination := dto.Pagination{Skip: 80, Limit: 20}
	suite.expectTxCommit()
	suite.mockDishRepo.On("AggregateDishes", suite.ctx, dto.DishFilters{}, map[string]int(nil), pagination).
		Return(nil, 45, 100, nil).Once()

	resp, err := suite.service.GetDishes(suite.ctx, dto.DishFilters{}, nil, pagination, "")

	suite.Require().NoError(err)
	suite.Empty(resp.Dishes)
	suite.Equal(45, resp.MatchingCount)
	suite.Equal(3, resp.PagesCount)
}

func (suite *DishServiceTestSuite) TestGetDishes_ReadsOnOneSession() {
	session := fakeTx{}
	suite.mockDishRepo.On("Begin", suite.ctx).Return(session, nil).Once()
	suite.mockDishRepo.On("Commit", suite.ctx, session).Return(nil).Once()
	suite.mockDishRepo.On("Rollback", suite.ctx, session).Return(nil).Maybe()

	min := decimal.NewFromInt(9)
	filters := dto.DishFilters{UnitPrice: &dto.RangeFilter{Min: &min}}
	pagination := dto.Pagination{Limit: 20}

	// The session that translated the filter bound is the one that converts
	// the page back, so one listing never sees two rates
	suite.mockConverter.On("ToMain", suite.ctx, session, decEq("9"), "EUR").
		Return(decimal.NewFromInt(10), nil).Once()
	suite.mockDishRepo.On("AggregateDishes", suite.ctx, mock.Anything, map[string]int(nil), pagination).
		Return([]domain.DishView{{DishID: "dish-1"}}, 1, 1, nil).Once()
	suite.mockConverter.On("RetargetDishPrice", suite.ctx, session, mock.Anything, "EUR").
		Return(nil).Once()

	_, err := suite.service.GetDishes(suite.ctx, filters, nil, pagination, "EUR")

	suite.Require().NoError(err)
	suite.mockDishRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *DishServiceTestSuite) TestGetDishes_AggregateErrorRollsBack() {
	pagination := dto.Pagination{Limit: 20}
	suite.expectTxRollback()
	suite.mockDishRepo.On("AggregateDishes", suite.ctx, dto.DishFilters{}, map[string]int(nil), pagination).
		Return(nil, 0, 0, apperrors.NewAggregationError("dish aggregation failed")).Once()

	_, err := suite.service.GetDishes(suite.ctx, dto.DishFilters{}, nil, pagination, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAggregation)
	suite.mockDishRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *DishServiceTestSuite) TestGetDish_AppliesProjection() {
	suite.expectTxCommit()
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "dish-1").Return(suite.sampleDish(), nil).Once()
	fields := map[string]int{"name": selectfields.Include, "unitPrice": selectfields.Include}

	view, err := suite.service.GetDish(suite.ctx, "dish-1", fields, "")

	suite.Require().NoError(err)
	suite.Equal("dish-1", view.DishID)
	suite.Require().NotNil(view.Name)
	suite.Equal("Pad Thai", *view.Name)
	suite.Require().NotNil(view.UnitPrice)
	suite.Nil(view.Description)
	suite.Nil(view.Stock)
	suite.Nil(view.Currency)
	suite.mockDishRepo.AssertExpectations(suite.T())
}

func (suite *DishServiceTestSuite) TestGetDish_RetargetsCurrency() {
	suite.expectTxCommit()
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "dish-1").Return(suite.sampleDish(), nil).Once()
	suite.mockConverter.On("RetargetDishPrice", mock.Anything, mock.Anything, mock.Anything, "EUR").
		Run(func(args mock.Arguments) {
			view := args.Get(2).(*domain.DishView)
			converted := decimal.NewFromInt(9)
			currency := "EUR"
			view.UnitPrice = &converted
			view.Currency = &currency
		}).Return(nil).Once()

	view, err := suite.service.GetDish(suite.ctx, "dish-1", nil, "EUR")

	suite.Require().NoError(err)
	suite.True(view.UnitPrice.Equal(decimal.NewFromInt(9)))
	suite.Equal("EUR", *view.Currency)
	suite.Nil(view.MainUnitPrice)
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *DishServiceTestSuite) TestGetFiltersValues() {
	fields := map[string]int{"category": selectfields.Include, "unitPrice": selectfields.Include}
	suite.expectTxCommit()
	suite.mockDishRepo.On("AggregateFilterValues", suite.ctx, []string{"category"}, []string{"mainUnitPrice"}).
		Return(&dto.FilterValues{
			Lists: map[string][]string{"category": {"dessert", "main course"}},
			Ranges: map[string]dto.MinMax{
				"mainUnitPrice": {Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(20)},
			},
		}, nil).Once()
	suite.mockConverter.On("FromMain", mock.Anything, mock.Anything, decEq("10"), "EUR").
		Return(decimal.NewFromInt(9), nil).Once()
	suite.mockConverter.On("FromMain", mock.Anything, mock.Anything, decEq("20"), "EUR").
		Return(decimal.NewFromInt(18), nil).Once()

	resp, err := suite.service.GetFiltersValues(suite.ctx, fields, "EUR")

	suite.Require().NoError(err)
	suite.Equal([]string{"dessert", "main course"}, resp["category"])

	// The canonical bounds come back keyed as unitPrice in the display currency
	bounds, ok := resp["unitPrice"].(dto.MinMax)
	suite.Require().True(ok)
	suite.True(bounds.Min.Equal(decimal.NewFromInt(9)))
	suite.True(bounds.Max.Equal(decimal.NewFromInt(18)))
	suite.NotContains(resp, "mainUnitPrice")
	suite.mockDishRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *DishServiceTestSuite) TestGetFiltersValues_PriceWithoutCurrency() {
	fields := map[string]int{"unitPrice": selectfields.Include}

	_, err := suite.service.GetFiltersValues(suite.ctx, fields, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDishRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockDishRepo.AssertNotCalled(suite.T(), "AggregateFilterValues",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DishServiceTestSuite) TestGetFiltersValues_UnknownField() {
	fields := map[string]int{"coverImage": selectfields.Include}

	_, err := suite.service.GetFiltersValues(suite.ctx, fields, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "coverImage")
}

func (suite *DishServiceTestSuite) TestGetFiltersValues_CurrencyWithoutPrice() {
	fields := map[string]int{"category": selectfields.Include}

	_, err := suite.service.GetFiltersValues(suite.ctx, fields, "EUR")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DishServiceTestSuite) TestCreateDish_DerivesCanonicalPrice() {
	coverIdx := 1
	req := dto.CreateDishRequest{
		Name:      "Tiramisu",
		Category:  "dessert",
		Cuisine:   "italian",
		Type:      "vegetarian",
		Images:    []string{"a.jpg", "b.jpg"},
		CoverIdx:  &coverIdx,
		UnitPrice: decimal.RequireFromString("10.005"),
		Currency:  "EUR",
		Stock:     3,
	}

	// The submitted price ceils to 10.01 before the canonical conversion
	suite.mockConverter.On("ToMain", mock.Anything, mock.Anything, decEq("10.01"), "EUR").
		Return(decimal.RequireFromString("11.13"), nil).Once()
	suite.mockDishRepo.On("SaveDish", suite.ctx, mock.MatchedBy(func(d domain.Dish) bool {
		return d.Name == "Tiramisu" &&
			d.CoverImage == "b.jpg" &&
			d.UnitPrice.Equal(decimal.RequireFromString("10.01")) &&
			d.MainUnitPrice.Equal(decimal.RequireFromString("11.13")) &&
			d.Currency == "EUR" &&
			d.DishID != ""
	})).Return(nil).Once()

	dish, err := suite.service.CreateDish(suite.ctx, req, "manager-1")

	suite.Require().NoError(err)
	suite.Equal("manager-1", dish.CreatedBy)
	suite.mockDishRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *DishServiceTestSuite) TestCreateDish_CoverIdxOutOfBounds() {
	coverIdx := 2
	req := dto.CreateDishRequest{
		Name:      "Tiramisu",
		Images:    []string{"a.jpg", "b.jpg"},
		CoverIdx:  &coverIdx,
		UnitPrice: decimal.NewFromInt(10),
		Currency:  "EUR",
	}

	_, err := suite.service.CreateDish(suite.ctx, req, "manager-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDishRepo.AssertNotCalled(suite.T(), "SaveDish", mock.Anything, mock.Anything)
}

func (suite *DishServiceTestSuite) TestCreateDish_NonPositivePrice() {
	req := dto.CreateDishRequest{
		Name:      "Tiramisu",
		Images:    []string{"a.jpg"},
		UnitPrice: decimal.Zero,
		Currency:  "EUR",
	}

	_, err := suite.service.CreateDish(suite.ctx, req, "manager-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DishServiceTestSuite) TestUpdateDish_CurrencyChangeRecomputesCanonical() {
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "dish-1").Return(suite.sampleDish(), nil).Once()

	newCurrency := "EUR"
	req := dto.UpdateDishRequest{Currency: &newCurrency}

	suite.mockConverter.On("ToMain", mock.Anything, mock.Anything, decEq("10"), "EUR").
		Return(decimal.RequireFromString("11.12"), nil).Once()
	suite.mockDishRepo.On("UpdateDish", suite.ctx, mock.MatchedBy(func(d domain.Dish) bool {
		return d.Currency == "EUR" && d.MainUnitPrice.Equal(decimal.RequireFromString("11.12"))
	})).Return(nil).Once()

	dish, err := suite.service.UpdateDish(suite.ctx, "dish-1", req, "manager-1")

	suite.Require().NoError(err)
	suite.Equal("EUR", dish.Currency)
	suite.mockDishRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *DishServiceTestSuite) TestUpdateDish_NoRepriceKeepsCanonical() {
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "dish-1").Return(suite.sampleDish(), nil).Once()

	newName := "Pad See Ew"
	req := dto.UpdateDishRequest{Name: &newName}

	suite.mockDishRepo.On("UpdateDish", suite.ctx, mock.MatchedBy(func(d domain.Dish) bool {
		return d.Name == "Pad See Ew" && d.MainUnitPrice.Equal(decimal.NewFromInt(10))
	})).Return(nil).Once()

	dish, err := suite.service.UpdateDish(suite.ctx, "dish-1", req, "manager-1")

	suite.Require().NoError(err)
	suite.Equal("manager-1", dish.LastUpdatedBy)
	suite.mockConverter.AssertNotCalled(suite.T(), "ToMain",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockDishRepo.AssertExpectations(suite.T())
}

func (suite *DishServiceTestSuite) TestDeleteDish_NotFound() {
	suite.mockDishRepo.On("DeleteDish", suite.ctx, "missing").
		Return(apperrors.NewNotFoundError("dish missing not found")).Once()

	err := suite.service.DeleteDish(suite.ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDishRepo.AssertExpectations(suite.T())
}

func TestDishServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DishServiceTestSuite))
}
