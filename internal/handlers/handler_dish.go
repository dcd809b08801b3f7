package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/apperrors"
	portssvc "github.com/feastly/feastly_backend/internal/core/ports/services"
	"github.com/feastly/feastly_backend/internal/dto"
	"github.com/feastly/feastly_backend/internal/middleware"
	"github.com/feastly/feastly_backend/internal/utils/selectfields"
)

// dishHandler handles HTTP requests related to the catalog.
type dishHandler struct {
	dishService portssvc.DishSvcFacade
}

// newDishHandler creates a new dishHandler.
func newDishHandler(ds portssvc.DishSvcFacade) *dishHandler {
	return &dishHandler{dishService: ds}
}

// registerDishRoutes registers routes related to dishes. Mutations require
// the manager gate applied by the caller.
func registerDishRoutes(rg *gin.RouterGroup, dishService portssvc.DishSvcFacade, manager gin.HandlerFunc) {
	h := newDishHandler(dishService)

	dishes := rg.Group("/dishes")
	{
		dishes.GET("", h.listDishes)
		dishes.GET("/filters", h.getFiltersValues)
		dishes.GET("/:dishID", h.getDish)
		dishes.POST("", manager, h.createDish)
		dishes.PATCH("/:dishID", manager, h.updateDish)
		dishes.DELETE("/:dishID", manager, h.deleteDish)
	}
}

// parseListParam splits a comma-separated query value into a slice.
func parseListParam(c *gin.Context, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// parseRangeParam reads min<Name>/max<Name> query values into a RangeFilter.
func parseRangeParam(c *gin.Context, name string) (*dto.RangeFilter, error) {
	r := &dto.RangeFilter{}
	if raw := c.Query("min" + name); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("min" + name + " is not a number")
		}
		r.Min = &min
	}
	if raw := c.Query("max" + name); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("max" + name + " is not a number")
		}
		r.Max = &max
	}
	if r.Min == nil && r.Max == nil {
		return nil, nil
	}
	return r, nil
}

func parseDishFilters(c *gin.Context) (dto.DishFilters, error) {
	filters := dto.DishFilters{
		Names:      parseListParam(c, "name"),
		Categories: parseListParam(c, "category"),
		Cuisines:   parseListParam(c, "cuisine"),
		Types:      parseListParam(c, "type"),
	}

	var err error
	if filters.UnitPrice, err = parseRangeParam(c, "UnitPrice"); err != nil {
		return filters, err
	}
	if filters.Stock, err = parseRangeParam(c, "Stock"); err != nil {
		return filters, err
	}
	if filters.RatingsAverage, err = parseRangeParam(c, "RatingsAverage"); err != nil {
		return filters, err
	}
	if filters.RatingsCount, err = parseRangeParam(c, "RatingsCount"); err != nil {
		return filters, err
	}
	return filters, nil
}

func parsePagination(c *gin.Context) (dto.Pagination, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return dto.Pagination{}, apperrors.NewValidationError("page must be a positive number")
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		return dto.Pagination{}, apperrors.NewValidationError("limit must be a positive number")
	}
	return dto.Pagination{Skip: (page - 1) * limit, Limit: limit}, nil
}

// listDishes godoc
// @Summary List dishes
// @Description Lists catalog items with filters, field selection, pagination and optional display-currency conversion.
// @Tags dishes
// @Produce json
// @Param name query string false "Comma-separated dish names"
// @Param category query string false "Comma-separated categories"
// @Param cuisine query string false "Comma-separated cuisines"
// @Param type query string false "Comma-separated types"
// @Param minUnitPrice query number false "Minimum price in the display currency (requires currency)"
// @Param maxUnitPrice query number false "Maximum price in the display currency (requires currency)"
// @Param fields query string false "Field selection, e.g. name,unitPrice or -description"
// @Param currency query string false "Display currency code (3 letters)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.DishListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dishes [get]
func (h *dishHandler) listDishes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filters, err := parseDishFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	fields, err := selectfields.Parse(c.Query("fields"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	pagination, err := parsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.dishService.GetDishes(c.Request.Context(), filters, fields, pagination, c.Query("currency"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list dishes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list dishes"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getFiltersValues godoc
// @Summary Get available filter values
// @Description Aggregates deduplicated list values and min/max bounds for the catalog filters.
// @Tags dishes
// @Produce json
// @Param fields query string false "Filter field selection, e.g. category,unitPrice or -name"
// @Param currency query string false "Display currency code (required with unitPrice)"
// @Success 200 {object} dto.FilterValuesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dishes/filters [get]
func (h *dishHandler) getFiltersValues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fields, err := selectfields.Parse(c.Query("fields"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.dishService.GetFiltersValues(c.Request.Context(), fields, c.Query("currency"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to aggregate filter values", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to aggregate filter values"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getDish godoc
// @Summary Get a dish
// @Description Retrieves one dish with field selection and optional display-currency conversion.
// @Tags dishes
// @Produce json
// @Param dishID path string true "Dish ID"
// @Param fields query string false "Field selection"
// @Param currency query string false "Display currency code (3 letters)"
// @Success 200 {object} domain.DishView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dishes/{dishID} [get]
func (h *dishHandler) getDish(c *gin.Context) {
	fields, err := selectfields.Parse(c.Query("fields"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.dishService.GetDish(c.Request.Context(), c.Param("dishID"), fields, c.Query("currency"))
	if err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// createDish godoc
// @Summary Create a dish
// @Description Adds a new dish to the catalog. The canonical main-currency price is derived server-side.
// @Tags dishes
// @Accept json
// @Produce json
// @Param dish body dto.CreateDishRequest true "Dish details"
// @Success 201 {object} domain.Dish
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dishes [post]
func (h *dishHandler) createDish(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	dish, err := h.dishService.CreateDish(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create dish", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create dish"})
		return
	}

	logger.Info("Dish created", slog.String("dish_id", dish.DishID))
	c.JSON(http.StatusCreated, dish)
}

// updateDish godoc
// @Summary Update a dish
// @Description Applies a partial update; the canonical price is recomputed when the price or currency changes.
// @Tags dishes
// @Accept json
// @Produce json
// @Param dishID path string true "Dish ID"
// @Param dish body dto.UpdateDishRequest true "Fields to update"
// @Success 200 {object} domain.Dish
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dishes/{dishID} [patch]
func (h *dishHandler) updateDish(c *gin.Context) {
	var req dto.UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	dish, err := h.dishService.UpdateDish(c.Request.Context(), c.Param("dishID"), req, updaterUserID)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dish)
}

// deleteDish godoc
// @Summary Delete a dish
// @Description Removes a dish from the catalog.
// @Tags dishes
// @Produce json
// @Param dishID path string true "Dish ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dishes/{dishID} [delete]
func (h *dishHandler) deleteDish(c *gin.Context) {
	if err := h.dishService.DeleteDish(c.Request.Context(), c.Param("dishID")); err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
