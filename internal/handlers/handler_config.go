package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feastly/feastly_backend/internal/apperrors"
	portssvc "github.com/feastly/feastly_backend/internal/core/ports/services"
	"github.com/feastly/feastly_backend/internal/dto"
	"github.com/feastly/feastly_backend/internal/middleware"
)

// configHandler handles HTTP requests related to the platform config.
type configHandler struct {
	configService portssvc.ConfigSvcFacade
}

// newConfigHandler creates a new configHandler.
func newConfigHandler(cs portssvc.ConfigSvcFacade) *configHandler {
	return &configHandler{configService: cs}
}

// registerConfigRoutes registers routes related to the platform config.
// The update requires the admin gate applied by the caller.
func registerConfigRoutes(rg *gin.RouterGroup, configService portssvc.ConfigSvcFacade, admin gin.HandlerFunc) {
	h := newConfigHandler(configService)

	cfg := rg.Group("/config")
	{
		cfg.GET("", h.getConfig)
		cfg.PATCH("", admin, h.updateConfig)
	}
}

// getConfig godoc
// @Summary Get platform config
// @Description Retrieves the platform configuration singleton.
// @Tags config
// @Produce json
// @Success 200 {object} dto.ConfigResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /config [get]
func (h *configHandler) getConfig(c *gin.Context) {
	cfg, err := h.configService.GetConfig(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToConfigResponse(cfg))
}

// updateConfig godoc
// @Summary Update the main currency
// @Description Changes the main currency and rebuilds every dish's canonical price atomically.
// @Tags config
// @Accept json
// @Produce json
// @Param config body dto.UpdateConfigRequest true "New main currency"
// @Success 200 {object} dto.ConfigResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Missing rate for some dish currency"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /config [patch]
func (h *configHandler) updateConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cfg, err := h.configService.UpdateConfig(c.Request.Context(), req.MainCurrency, updaterUserID)
	if err != nil {
		logger.Error("Failed to update config", slog.String("error", err.Error()))
		c.JSON(apperrors.StatusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToConfigResponse(cfg))
}
