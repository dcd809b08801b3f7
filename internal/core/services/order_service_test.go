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
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo *MockOrderRepository
	mockDishRepo  *MockDishRepository
	mockConverter *MockCurrencyConverter
	service       *services.OrderService
	ctx           context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockDishRepo = new(MockDishRepository)
	suite.mockConverter = new(MockCurrencyConverter)
	suite.service = services.NewOrderService(suite.mockOrderRepo, suite.mockDishRepo, suite.mockConverter)
	suite.ctx = context.Background()
}

func (suite *OrderServiceTestSuite) expectTxCommit() {
	suite.mockOrderRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockOrderRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *OrderServiceTestSuite) expectTxRollback() {
	suite.mockOrderRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockOrderRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()
}

func (suite *OrderServiceTestSuite) stockedDish(stock int) *domain.Dish {
	return &domain.Dish{
		DishID:    "dish-1",
		Name:      "Pad Thai",
		UnitPrice: decimal.NewFromInt(10),
		Currency:  "USD",
		Stock:     stock,
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ConvertsAndTotals() {
	req := dto.CreateOrderRequest{
		Currency: "EUR",
		Items:    []dto.CreateOrderItemRequest{{DishID: "dish-1", Quantity: 3}},
	}

	suite.expectTxCommit()
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "dish-1").Return(suite.stockedDish(5), nil).Once()
	suite.mockConverter.On("Convert", mock.Anything, mock.Anything, decEq("10"), "USD", "EUR").
		Return(decimal.NewFromInt(9), nil).Once()
	suite.mockDishRepo.On("DecrementStock", suite.ctx, "dish-1", 3).Return(true, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", suite.ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.UserID == "user-1" &&
			o.Currency == "EUR" &&
			len(o.Items) == 1 &&
			o.Items[0].DishName == "Pad Thai" &&
			o.Items[0].UnitPrice.Equal(decimal.NewFromInt(9)) &&
			o.TotalPrice.Equal(decimal.NewFromInt(27))
	})).Return(nil).Once()

	order, err := suite.service.CreateOrder(suite.ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.True(order.TotalPrice.Equal(decimal.NewFromInt(27)), "got %s", order.TotalPrice)
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockDishRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_IgnoresClientSubmittedPrice() {
	clientPrice := decimal.RequireFromString("0.01")
	req := dto.CreateOrderRequest{
		Currency: "USD",
		Items:    []dto.CreateOrderItemRequest{{DishID: "dish-1", Quantity: 2, UnitPrice: &clientPrice}},
	}

	suite.expectTxCommit()
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "dish-1").Return(suite.stockedDish(5), nil).Once()
	suite.mockConverter.On("Convert", mock.Anything, mock.Anything, decEq("10"), "USD", "USD").
		Return(decimal.NewFromInt(10), nil).Once()
	suite.mockDishRepo.On("DecrementStock", suite.ctx, "dish-1", 2).Return(true, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", suite.ctx, mock.MatchedBy(func(o domain.Order) bool {
		// The line carries the catalog price, not what the client sent
		return o.Items[0].UnitPrice.Equal(decimal.NewFromInt(10)) &&
			o.TotalPrice.Equal(decimal.NewFromInt(20))
	})).Return(nil).Once()

	order, err := suite.service.CreateOrder(suite.ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.True(order.TotalPrice.Equal(decimal.NewFromInt(20)))
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_EmptyItems() {
	req := dto.CreateOrderRequest{Currency: "USD"}

	_, err := suite.service.CreateOrder(suite.ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_DuplicateDishLines() {
	req := dto.CreateOrderRequest{
		Currency: "USD",
		Items: []dto.CreateOrderItemRequest{
			{DishID: "dish-1", Quantity: 1},
			{DishID: "dish-1", Quantity: 2},
		},
	}

	_, err := suite.service.CreateOrder(suite.ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "dish-1")
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NonPositiveQuantity() {
	req := dto.CreateOrderRequest{
		Currency: "USD",
		Items:    []dto.CreateOrderItemRequest{{DishID: "dish-1", Quantity: 0}},
	}

	suite.expectTxRollback()

	_, err := suite.service.CreateOrder(suite.ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_StockBoundaryExact() {
	// Ordering exactly the remaining stock succeeds
	req := dto.CreateOrderRequest{
		Currency: "USD",
		Items:    []dto.CreateOrderItemRequest{{DishID: "dish-1", Quantity: 3}},
	}

	suite.expectTxCommit()
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "dish-1").Return(suite.stockedDish(3), nil).Once()
	suite.mockConverter.On("Convert", mock.Anything, mock.Anything, decEq("10"), "USD", "USD").
		Return(decimal.NewFromInt(10), nil).Once()
	suite.mockDishRepo.On("DecrementStock", suite.ctx, "dish-1", 3).Return(true, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", suite.ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateOrder(suite.ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InsufficientStock() {
	req := dto.CreateOrderRequest{
		Currency: "USD",
		Items:    []dto.CreateOrderItemRequest{{DishID: "dish-1", Quantity: 4}},
	}

	suite.expectTxRollback()
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "dish-1").Return(suite.stockedDish(3), nil).Once()

	_, err := suite.service.CreateOrder(suite.ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockDishRepo.AssertNotCalled(suite.T(), "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ConcurrentDecrementLoses() {
	// The precheck passed but another order took the stock first; the
	// conditional decrement reports no row updated
	req := dto.CreateOrderRequest{
		Currency: "USD",
		Items:    []dto.CreateOrderItemRequest{{DishID: "dish-1", Quantity: 3}},
	}

	suite.expectTxRollback()
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "dish-1").Return(suite.stockedDish(5), nil).Once()
	suite.mockConverter.On("Convert", mock.Anything, mock.Anything, decEq("10"), "USD", "USD").
		Return(decimal.NewFromInt(10), nil).Once()
	suite.mockDishRepo.On("DecrementStock", suite.ctx, "dish-1", 3).Return(false, nil).Once()

	_, err := suite.service.CreateOrder(suite.ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_DishNotFound() {
	req := dto.CreateOrderRequest{
		Currency: "USD",
		Items:    []dto.CreateOrderItemRequest{{DishID: "missing", Quantity: 1}},
	}

	suite.expectTxRollback()
	suite.mockDishRepo.On("FindDishByID", suite.ctx, "missing").
		Return(nil, apperrors.NewNotFoundError("dish missing not found")).Once()

	_, err := suite.service.CreateOrder(suite.ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestListUserOrders() {
	pagination := dto.Pagination{Skip: 0, Limit: 10}
	orders := []domain.Order{{
		OrderID:    "order-1",
		UserID:     "user-1",
		Currency:   "USD",
		TotalPrice: decimal.NewFromInt(20),
		Items:      []domain.OrderItem{{DishID: "dish-1", DishName: "Pad Thai", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}},
	}}
	suite.mockOrderRepo.On("ListOrdersByUser", suite.ctx, "user-1", pagination).
		Return(orders, 1, nil).Once()

	resp, err := suite.service.ListUserOrders(suite.ctx, "user-1", pagination)

	suite.Require().NoError(err)
	suite.Len(resp.Orders, 1)
	suite.Equal("order-1", resp.Orders[0].OrderID)
	suite.Equal(1, resp.MatchingCount)
	suite.Equal(1, resp.TotalCount)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
