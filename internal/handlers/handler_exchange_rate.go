package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feastly/feastly_backend/internal/apperrors"
	portssvc "github.com/feastly/feastly_backend/internal/core/ports/services"
	"github.com/feastly/feastly_backend/internal/dto"
	"github.com/feastly/feastly_backend/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
// Mutations require the admin gate applied by the caller.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, admin gin.HandlerFunc) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.GET("/:from/:to", h.getExchangeRate)
		exchangeRates.POST("", admin, h.createExchangeRate)
		exchangeRates.PATCH("/:from/:to", admin, h.updateExchangeRate)
		exchangeRates.DELETE("/:from/:to", admin, h.deleteExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Create a new exchange rate pair
// @Description Adds a new exchange rate and its maintained inverse leg atomically
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.RatePairResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Pair already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pair, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create exchange rate pair", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create exchange rate"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToRatePairResponse(pair))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the stored rate leg for a given currency pair
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)"
// @Param   to   path string true "To Currency Code (3 letters)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), c.Param("from"), c.Param("to"))
	if err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Retrieves stored rate legs with optional from/to filtering
// @Tags exchange rates
// @Produce json
// @Param from query string false "Filter by from currency code"
// @Param to query string false "Filter by to currency code"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	var fromCode, toCode *string
	if v := c.Query("from"); v != "" {
		fromCode = &v
	}
	if v := c.Query("to"); v != "" {
		toCode = &v
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	rates, total, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), fromCode, toCode, page, pageSize)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: "Failed to list exchange rates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rates": dto.ToListExchangeRateResponse(rates),
		"total": total,
	})
}

// updateExchangeRate godoc
// @Summary Update an exchange rate pair
// @Description Updates both legs of an existing pair atomically
// @Tags exchange rates
// @Accept json
// @Produce json
// @Param   from path string true "From Currency Code (3 letters)"
// @Param   to   path string true "To Currency Code (3 letters)"
// @Param   rate body dto.UpdateExchangeRateRequest true "New rate"
// @Success 200 {object} dto.RatePairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [patch]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pair, err := h.exchangeRateService.UpdateExchangeRate(c.Request.Context(), c.Param("from"), c.Param("to"), req.Rate, updaterUserID)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToRatePairResponse(pair))
}

// deleteExchangeRate godoc
// @Summary Delete an exchange rate pair
// @Description Deletes both legs of a pair atomically
// @Tags exchange rates
// @Produce json
// @Param   from path string true "From Currency Code (3 letters)"
// @Param   to   path string true "To Currency Code (3 letters)"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Identical currency codes"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [delete]
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	if err := h.exchangeRateService.DeleteExchangeRate(c.Request.Context(), c.Param("from"), c.Param("to")); err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
