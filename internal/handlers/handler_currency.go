package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feastly/feastly_backend/internal/apperrors"
	portssvc "github.com/feastly/feastly_backend/internal/core/ports/services"
	"github.com/feastly/feastly_backend/internal/dto"
)

// currencyHandler serves the currency codes available for display and
// checkout, feeding the client's currency selector.
type currencyHandler struct {
	currencyService portssvc.CurrencyConverterSvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencyConverterSvc) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencyConverterSvc) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrency)
	}
}

// listCurrencies godoc
// @Summary List available currencies
// @Description Retrieves the currency codes prices can be quoted in
// @Tags currencies
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	codes, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: "Failed to list currencies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currencies": codes})
}

// getCurrency godoc
// @Summary Get one currency
// @Description Retrieves a currency code when it is available for quoting
// @Tags currencies
// @Produce json
// @Param   code path string true "Currency Code (3 letters)"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	code, err := h.currencyService.GetCurrency(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.CurrencyResponse{Code: code})
}
