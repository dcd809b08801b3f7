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
	"github.com/feastly/feastly_backend/internal/utils/mapping"
	"github.com/feastly/feastly_backend/internal/utils/money"
	"github.com/feastly/feastly_backend/internal/utils/selectfields"
)

// listFilterFields are the catalog fields whose filter values are
// deduplicated lists; minMaxFilterFields are the numeric axes reported as
// min/max bounds. The price axis is exposed to callers as unitPrice and
// stored as mainUnitPrice.
var (
	listFilterFields   = []string{"name", "category", "cuisine", "type"}
	minMaxFilterFields = []string{"stock", "unitPrice", "ratingsAverage", "ratingsCount"}
)

func isFilterField(name string) bool {
	for _, f := range listFilterFields {
		if f == name {
			return true
		}
	}
	for _, f := range minMaxFilterFields {
		if f == name {
			return true
		}
	}
	return false
}

// DishService provides business logic for the catalog.
type DishService struct {
	BaseService
	dishRepo  portsrepo.DishRepositoryWithTx
	converter portssvc.CurrencyConverterSvc
}

// NewDishService creates a new DishService.
func NewDishService(dishRepo portsrepo.DishRepositoryWithTx, converter portssvc.CurrencyConverterSvc) *DishService {
	return &DishService{dishRepo: dishRepo, converter: converter}
}

// Ensure DishService implements the facade port
var _ portssvc.DishSvcFacade = (*DishService)(nil)

// GetDishes lists catalog items. The unitPrice filter arrives in the display
// currency and is translated onto the canonical main-currency axis before the
// store sees it, so one stored column serves filtering in every currency.
// The whole read runs on one transaction session: the rate that translated
// the filter bound is the rate that converts the page back, so a concurrent
// rate or main-currency change cannot split the listing across two rates.
func (s *DishService) GetDishes(ctx context.Context, filters dto.DishFilters, fields map[string]int, pagination dto.Pagination, targetCurrency string) (*dto.DishListResponse, error) {
	if err := selectfields.Validate(fields); err != nil {
		return nil, err
	}
	if filters.UnitPrice != nil && targetCurrency == "" {
		return nil, apperrors.NewValidationError("unitPrice filter requires a currency")
	}

	var response *dto.DishListResponse
	err := runInTx(ctx, s.dishRepo, func(tx pgx.Tx) error {
		if filters.UnitPrice != nil {
			mainRange, err := s.rangeToMain(ctx, tx, filters.UnitPrice, targetCurrency)
			if err != nil {
				return err
			}
			filters.MainUnitPrice = mainRange
			filters.UnitPrice = nil
		}

		views, matchingCount, totalCount, err := s.dishRepo.WithTx(tx).AggregateDishes(ctx, filters, fields, pagination)
		if err != nil {
			return err
		}

		if targetCurrency != "" {
			for i := range views {
				if err := s.converter.RetargetDishPrice(ctx, tx, &views[i], targetCurrency); err != nil {
					return err
				}
				// The canonical price has no meaning in the display currency
				views[i].MainUnitPrice = nil
			}
		}

		if views == nil {
			views = []domain.DishView{}
		}
		response = &dto.DishListResponse{
			Dishes:   views,
			PageInfo: buildPageInfo(matchingCount, totalCount, pagination),
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "failed to list dishes")
		return nil, err
	}
	return response, nil
}

// rangeToMain translates a price range from the given currency onto the
// main-currency axis.
func (s *DishService) rangeToMain(ctx context.Context, tx pgx.Tx, r *dto.RangeFilter, currency string) (*dto.RangeFilter, error) {
	translated := &dto.RangeFilter{}
	if r.Min != nil {
		min, err := s.converter.ToMain(ctx, tx, *r.Min, currency)
		if err != nil {
			return nil, err
		}
		translated.Min = &min
	}
	if r.Max != nil {
		max, err := s.converter.ToMain(ctx, tx, *r.Max, currency)
		if err != nil {
			return nil, err
		}
		translated.Max = &max
	}
	return translated, nil
}

func buildPageInfo(matchingCount, totalCount int, pagination dto.Pagination) dto.PageInfo {
	info := dto.PageInfo{
		MatchingCount: matchingCount,
		TotalCount:    totalCount,
	}
	if pagination.Limit > 0 {
		info.PagesCount = (matchingCount + pagination.Limit - 1) / pagination.Limit
		info.CurrentPage = pagination.Skip/pagination.Limit + 1
	}
	return info
}

// GetDish retrieves one dish with field selection and optional
// display-currency conversion.
func (s *DishService) GetDish(ctx context.Context, dishID string, fields map[string]int, targetCurrency string) (*domain.DishView, error) {
	if err := selectfields.Validate(fields); err != nil {
		return nil, err
	}

	var view domain.DishView
	err := runInTx(ctx, s.dishRepo, func(tx pgx.Tx) error {
		dish, err := s.dishRepo.WithTx(tx).FindDishByID(ctx, dishID)
		if err != nil {
			return err
		}

		view = mapping.ToDishView(*dish)
		applyProjection(&view, fields)

		if targetCurrency != "" {
			if err := s.converter.RetargetDishPrice(ctx, tx, &view, targetCurrency); err != nil {
				return err
			}
			view.MainUnitPrice = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// applyProjection strips the view fields the selection does not keep.
func applyProjection(view *domain.DishView, fields map[string]int) {
	if len(fields) == 0 {
		return
	}
	if !selectfields.Selected(fields, "name") {
		view.Name = nil
	}
	if !selectfields.Selected(fields, "category") {
		view.Category = nil
	}
	if !selectfields.Selected(fields, "cuisine") {
		view.Cuisine = nil
	}
	if !selectfields.Selected(fields, "type") {
		view.Type = nil
	}
	if !selectfields.Selected(fields, "description") {
		view.Description = nil
	}
	if !selectfields.Selected(fields, "images") {
		view.Images = nil
	}
	if !selectfields.Selected(fields, "coverImage") {
		view.CoverImage = nil
	}
	if !selectfields.Selected(fields, "unitPrice") {
		view.UnitPrice = nil
	}
	if !selectfields.Selected(fields, "currency") {
		view.Currency = nil
	}
	if !selectfields.Selected(fields, "mainUnitPrice") {
		view.MainUnitPrice = nil
	}
	if !selectfields.Selected(fields, "stock") {
		view.Stock = nil
	}
	if !selectfields.Selected(fields, "ratingsAverage") {
		view.RatingsAverage = nil
	}
	if !selectfields.Selected(fields, "ratingsCount") {
		view.RatingsCount = nil
	}
}

// GetFiltersValues aggregates the available filter values for the selected
// fields. The price axis is aggregated on the canonical column and converted
// into targetCurrency on the way out.
func (s *DishService) GetFiltersValues(ctx context.Context, fields map[string]int, targetCurrency string) (dto.FilterValuesResponse, error) {
	if err := selectfields.Validate(fields); err != nil {
		return nil, err
	}
	for field := range fields {
		if !isFilterField(field) {
			return nil, apperrors.NewValidationError(field + " is not a valid dish filter")
		}
	}

	listFields := []string{}
	for _, field := range listFilterFields {
		if selectfields.Selected(fields, field) {
			listFields = append(listFields, field)
		}
	}
	priceRequested := false
	minMaxFields := []string{}
	for _, field := range minMaxFilterFields {
		if !selectfields.Selected(fields, field) {
			continue
		}
		if field == "unitPrice" {
			priceRequested = true
			minMaxFields = append(minMaxFields, "mainUnitPrice")
			continue
		}
		minMaxFields = append(minMaxFields, field)
	}

	if priceRequested && targetCurrency == "" {
		return nil, apperrors.NewValidationError("unitPrice filter requires a currency")
	}
	if !priceRequested && targetCurrency != "" {
		return nil, apperrors.NewValidationError("currency is redundant without the unitPrice filter")
	}

	response := dto.FilterValuesResponse{}
	err := runInTx(ctx, s.dishRepo, func(tx pgx.Tx) error {
		values, err := s.dishRepo.WithTx(tx).AggregateFilterValues(ctx, listFields, minMaxFields)
		if err != nil {
			return err
		}

		for field, list := range values.Lists {
			response[field] = list
		}
		for field, bounds := range values.Ranges {
			if field == "mainUnitPrice" {
				min, err := s.converter.FromMain(ctx, tx, bounds.Min, targetCurrency)
				if err != nil {
					return err
				}
				max, err := s.converter.FromMain(ctx, tx, bounds.Max, targetCurrency)
				if err != nil {
					return err
				}
				response["unitPrice"] = dto.MinMax{Min: min, Max: max}
				continue
			}
			response[field] = bounds
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate dish filter values")
		return nil, err
	}
	return response, nil
}

// CreateDish persists a new dish. The canonical main-currency price is
// derived from the unit price here and is never taken from the caller.
func (s *DishService) CreateDish(ctx context.Context, req dto.CreateDishRequest, creatorUserID string) (*domain.Dish, error) {
	if req.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("unit price must be positive")
	}
	coverIdx := 0
	if req.CoverIdx != nil {
		coverIdx = *req.CoverIdx
	}
	if coverIdx < 0 || coverIdx >= len(req.Images) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("cover index %d is out of bounds", coverIdx))
	}

	currency := strings.ToUpper(req.Currency)
	unitPrice := money.CeilAmount(req.UnitPrice)
	mainUnitPrice, err := s.converter.ToMain(ctx, nil, unitPrice, currency)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dish := domain.Dish{
		DishID:        uuid.NewString(),
		Name:          req.Name,
		Category:      req.Category,
		Cuisine:       req.Cuisine,
		Type:          req.Type,
		Description:   req.Description,
		Images:        req.Images,
		CoverImage:    req.Images[coverIdx],
		UnitPrice:     unitPrice,
		Currency:      currency,
		MainUnitPrice: mainUnitPrice,
		Stock:         req.Stock,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.dishRepo.SaveDish(ctx, dish); err != nil {
		s.LogError(ctx, err, "failed to create dish", "dish_id", dish.DishID)
		return nil, err
	}
	return &dish, nil
}

// UpdateDish applies a partial update. Whenever the unit price or the
// currency changes, the canonical price is recomputed in the same pass; no
// other path ever writes it.
func (s *DishService) UpdateDish(ctx context.Context, dishID string, req dto.UpdateDishRequest, updaterUserID string) (*domain.Dish, error) {
	dish, err := s.dishRepo.FindDishByID(ctx, dishID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		dish.Name = *req.Name
	}
	if req.Category != nil {
		dish.Category = *req.Category
	}
	if req.Cuisine != nil {
		dish.Cuisine = *req.Cuisine
	}
	if req.Type != nil {
		dish.Type = *req.Type
	}
	if req.Description != nil {
		dish.Description = *req.Description
	}
	if req.Images != nil {
		if len(req.Images) == 0 {
			return nil, apperrors.NewValidationError("a dish needs at least one image")
		}
		dish.Images = req.Images
		dish.CoverImage = req.Images[0]
	}
	if req.CoverIdx != nil {
		if *req.CoverIdx < 0 || *req.CoverIdx >= len(dish.Images) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("cover index %d is out of bounds", *req.CoverIdx))
		}
		dish.CoverImage = dish.Images[*req.CoverIdx]
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperrors.NewValidationError("stock cannot be negative")
		}
		dish.Stock = *req.Stock
	}

	repriced := false
	if req.UnitPrice != nil {
		if req.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationError("unit price must be positive")
		}
		dish.UnitPrice = money.CeilAmount(*req.UnitPrice)
		repriced = true
	}
	if req.Currency != nil {
		dish.Currency = strings.ToUpper(*req.Currency)
		repriced = true
	}
	if repriced {
		mainUnitPrice, err := s.converter.ToMain(ctx, nil, dish.UnitPrice, dish.Currency)
		if err != nil {
			return nil, err
		}
		dish.MainUnitPrice = mainUnitPrice
	}

	dish.LastUpdatedAt = time.Now()
	dish.LastUpdatedBy = updaterUserID

	if err := s.dishRepo.UpdateDish(ctx, *dish); err != nil {
		s.LogError(ctx, err, "failed to update dish", "dish_id", dishID)
		return nil, err
	}
	return dish, nil
}

// DeleteDish removes a dish from the catalog.
func (s *DishService) DeleteDish(ctx context.Context, dishID string) error {
	if err := s.dishRepo.DeleteDish(ctx, dishID); err != nil {
		s.LogError(ctx, err, "failed to delete dish", "dish_id", dishID)
		return err
	}
	return nil
}
