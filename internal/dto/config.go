package dto

import "github.com/feastly/feastly_backend/internal/core/domain"

// UpdateConfigRequest defines the admin payload for changing the main currency.
type UpdateConfigRequest struct {
	MainCurrency string `json:"mainCurrency" binding:"required,len=3,uppercase"`
}

// ConfigResponse defines the structure for API responses containing the config.
type ConfigResponse struct {
	MainCurrency string `json:"mainCurrency"`
}

// ToConfigResponse converts a domain.Config to ConfigResponse DTO
func ToConfigResponse(cfg *domain.Config) ConfigResponse {
	return ConfigResponse{MainCurrency: cfg.MainCurrency}
}
