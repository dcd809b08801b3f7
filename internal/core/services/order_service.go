package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/apperrors"
	"github.com/feastly/feastly_backend/internal/core/domain"
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	portssvc "github.com/feastly/feastly_backend/internal/core/ports/services"
	"github.com/feastly/feastly_backend/internal/dto"
	"github.com/feastly/feastly_backend/internal/utils/money"
)

// OrderService provides business logic for checkout. An order is validated,
// priced and persisted inside a single transaction together with the stock
// decrements, so a failed attempt leaves nothing behind.
type OrderService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryWithTx
	dishRepo  portsrepo.DishRepositoryWithTx
	converter portssvc.CurrencyConverterSvc
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryWithTx,
	dishRepo portsrepo.DishRepositoryWithTx,
	converter portssvc.CurrencyConverterSvc,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		dishRepo:  dishRepo,
		converter: converter,
	}
}

// Ensure OrderService implements the facade port
var _ portssvc.OrderSvcFacade = (*OrderService)(nil)

// CreateOrder runs the checkout pipeline. Each line is re-priced from the
// dish's authoritative catalog price converted into the order currency; any
// client-submitted price is discarded. The total is the ceiled sum of the
// snapshotted line prices, so it can never disagree with the lines.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*domain.Order, error) {
	currency := strings.ToUpper(req.Currency)
	if len(req.Items) == 0 {
		return nil, apperrors.NewValidationError("an order needs at least one item")
	}
	// One line per dish
	seen := make(map[string]bool, len(req.Items))
	for _, line := range req.Items {
		if seen[line.DishID] {
			return nil, apperrors.NewValidationError("dish " + line.DishID + " appears in more than one order line")
		}
		seen[line.DishID] = true
	}

	now := time.Now()
	order := domain.Order{
		OrderID:  uuid.NewString(),
		UserID:   userID,
		Currency: currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err := runInTx(ctx, s.orderRepo, func(tx pgx.Tx) error {
		dishes := s.dishRepo.WithTx(tx)

		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			if line.Quantity <= 0 {
				return apperrors.NewValidationError("item quantity must be positive")
			}

			dish, err := dishes.FindDishByID(ctx, line.DishID)
			if err != nil {
				return err
			}
			if dish.Stock < line.Quantity {
				return apperrors.NewInsufficientStockError(fmt.Sprintf(
					"not enough %s in stock: %d requested, %d available",
					dish.Name, line.Quantity, dish.Stock))
			}

			unitPrice, err := s.converter.Convert(ctx, tx, dish.UnitPrice, dish.Currency, currency)
			if err != nil {
				return err
			}

			// Conditional decrement so two concurrent orders cannot both take
			// the last unit
			decremented, err := dishes.DecrementStock(ctx, dish.DishID, line.Quantity)
			if err != nil {
				return err
			}
			if !decremented {
				return apperrors.NewInsufficientStockError(fmt.Sprintf(
					"not enough %s in stock: %d requested", dish.Name, line.Quantity))
			}

			items = append(items, domain.OrderItem{
				DishID:    dish.DishID,
				DishName:  dish.Name,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
			})
			total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order.Items = items
		order.TotalPrice = money.CeilAmount(total)

		return s.orderRepo.WithTx(tx).SaveOrder(ctx, order)
	})
	if err != nil {
		s.LogError(ctx, err, "failed to create order", "user_id", userID)
		return nil, err
	}

	s.LogInfo(ctx, "order created", "order_id", order.OrderID, "user_id", userID,
		"total_price", order.TotalPrice.String(), "currency", order.Currency)
	return &order, nil
}

// ListUserOrders retrieves the user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string, pagination dto.Pagination) (*dto.OrderListResponse, error) {
	orders, matchingCount, err := s.orderRepo.ListOrdersByUser(ctx, userID, pagination)
	if err != nil {
		s.LogError(ctx, err, "failed to list orders", "user_id", userID)
		return nil, err
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = dto.ToOrderResponse(&orders[i])
	}
	return &dto.OrderListResponse{
		Orders:   responses,
		PageInfo: buildPageInfo(matchingCount, matchingCount, pagination),
	}, nil
}
